package insight

import "lunara/internal/types"

// trendPolarity captures whether an increase in the raw series is an
// improvement for the user. Hot flashes worsen as counts rise; sleep
// quality improves as scores rise.
type trendPolarity int

const (
	higherIsWorse trendPolarity = iota
	higherIsBetter
)

// trackedSymptom binds a symptom category to its series extractor and
// polarity. The set is closed: adding a category means adding a row here
// and to the recommendation table, so an unrecognized key can never fall
// through to a default label.
type trackedSymptom struct {
	category types.SymptomCategory
	series   func([]types.SymptomRecord) []float64
	polarity trendPolarity
}

var trackedSymptoms = []trackedSymptom{
	{category: types.SymptomHotFlashes, series: hotFlashSeries, polarity: higherIsWorse},
	{category: types.SymptomSleep, series: sleepSeries, polarity: higherIsBetter},
}

// trendRecommendationKey keys the fixed recommendation table.
type trendRecommendationKey struct {
	category  types.SymptomCategory
	direction types.TrendDirection
}

var trendRecommendations = map[trendRecommendationKey][]string{
	{types.SymptomHotFlashes, types.DirectionWorsening}: {
		"Keep a trigger diary: note caffeine, alcohol, spicy food, and stress before each episode",
		"Practice paced breathing at the first sign of a flash",
		"Dress in removable layers and keep your bedroom cool",
	},
	{types.SymptomHotFlashes, types.DirectionImproving}: {
		"Your hot flashes are trending down - keep up whatever you changed recently",
		"Continue logging daily so the improvement can be confirmed over a full month",
	},
	{types.SymptomHotFlashes, types.DirectionStable}: {
		"Hot flash frequency is holding steady - continue your current routine and keep logging",
	},
	{types.SymptomSleep, types.DirectionWorsening}: {
		"Move screens out of the last hour before bed and keep a consistent bedtime",
		"Cut caffeine after midday and avoid alcohol close to bedtime",
		"Keep the bedroom below 19°C; night sweats and warm rooms compound each other",
	},
	{types.SymptomSleep, types.DirectionImproving}: {
		"Sleep quality is improving - protect the routine that got you here",
	},
	{types.SymptomSleep, types.DirectionStable}: {
		"Sleep quality is steady - keep your wind-down routine consistent",
	},
}

// AnalyzeTrends compares the most recent 7-record window against the prior
// 7-record window for each tracked symptom. Fewer than 14 records yields an
// empty list: partial trends are never reported.
func AnalyzeTrends(records []types.SymptomRecord) []types.SymptomTrend {
	if len(records) < MinTrendRecords {
		return []types.SymptomTrend{}
	}

	trends := make([]types.SymptomTrend, 0, len(trackedSymptoms))
	for _, sym := range trackedSymptoms {
		series := sym.series(records)
		recent := lastN(series, Week)
		previous := windowBefore(series, Week)

		currentAvg := mean(recent)
		previousAvg := mean(previous)
		direction := classifyDirection(currentAvg, previousAvg, sym.polarity)

		trends = append(trends, types.SymptomTrend{
			Symptom:             sym.category,
			CurrentWeekAverage:  currentAvg,
			PreviousWeekAverage: previousAvg,
			Direction:           direction,
			Shape:               classifyShape(recent),
			Recommendations:     trendRecommendations[trendRecommendationKey{sym.category, direction}],
		})
	}
	return trends
}

// classifyDirection maps the week-over-week mean delta onto a direction,
// respecting the symptom's polarity. Equal means yield stable.
func classifyDirection(current, previous float64, polarity trendPolarity) types.TrendDirection {
	if current == previous {
		return types.DirectionStable
	}
	rose := current > previous
	if (rose && polarity == higherIsBetter) || (!rose && polarity == higherIsWorse) {
		return types.DirectionImproving
	}
	return types.DirectionWorsening
}

// classifyShape labels the shape of the most recent week of daily values:
// monotonic runs first, then a variance split between volatile and stable.
func classifyShape(week []float64) types.ShapeLabel {
	if len(week) < 2 {
		return types.ShapeInsufficientData
	}

	nonDecreasing := true
	nonIncreasing := true
	for i := 1; i < len(week); i++ {
		if week[i] < week[i-1] {
			nonDecreasing = false
		}
		if week[i] > week[i-1] {
			nonIncreasing = false
		}
	}

	switch {
	case nonDecreasing:
		return types.ShapeMonotonicIncrease
	case nonIncreasing:
		return types.ShapeMonotonicDecrease
	case sampleVariance(week) > volatileVarianceThreshold:
		return types.ShapeVolatile
	default:
		return types.ShapeStable
	}
}
