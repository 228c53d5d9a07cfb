package insight

import (
	"math"

	"lunara/internal/types"
)

// Severity-keyed recommendation and outlook tables per factor. Closed maps:
// every severity the classifier can produce has an entry.

var pressureRecommendations = map[types.FactorSeverity][]string{
	types.SeverityHigh: {
		"Falling pressure strongly precedes your flare days - check tomorrow's forecast each evening",
		"Plan demanding activities for days with steady pressure",
		"Keep cooling aids within reach ahead of weather fronts",
	},
	types.SeverityMedium: {
		"Pressure swings appear linked to your symptoms - note the forecast when planning your week",
		"Log symptoms on days with weather fronts to sharpen the picture",
	},
	types.SeverityLow: {
		"A weak pressure link is emerging - keep logging to confirm or rule it out",
	},
}

var humidityRecommendations = map[types.FactorSeverity][]string{
	types.SeverityHigh: {
		"Humid nights are clearly hurting your sleep - run a dehumidifier or air conditioning in the bedroom",
		"Choose moisture-wicking bedding and sleepwear",
		"Ventilate the bedroom before bed on muggy evenings",
	},
	types.SeverityMedium: {
		"Your sleep tends to suffer on humid days - air out the bedroom before sleeping",
		"Keep a fan by the bed for muggy nights",
	},
	types.SeverityLow: {
		"Humidity may have a mild effect on your sleep - worth watching as more data accumulates",
	},
}

var airQualityRecommendations = map[types.FactorSeverity][]string{
	types.SeverityHigh: {
		"Air quality is poor and tracks with your low-mood days - keep windows closed on high PM2.5 days",
		"Use an indoor air purifier with a HEPA filter",
		"Shift outdoor exercise to days with a clean air forecast",
	},
	types.SeverityMedium: {
		"Particulate levels may be weighing on your mood - check the air quality index before long outdoor stays",
		"Ventilate the home during low-traffic hours",
	},
	types.SeverityLow: {
		"Air quality shows a weak link with your mood - no action needed yet, keep logging",
	},
}

var factorOutlookSuggestions = map[types.EnvFactor][]string{
	types.FactorPressure:   {"Have your cooling kit ready", "Keep tomorrow's schedule flexible"},
	types.FactorHumidity:   {"Prepare the bedroom early", "Hydrate through the day"},
	types.FactorAirQuality: {"Plan indoor alternatives for exercise", "Close windows overnight"},
}

// AnalyzeEnvironment pairs a symptom history with a time-aligned
// environmental observation history (same index, same day) and reports the
// factors showing meaningful association. Fewer than 5 paired points yields
// an empty list. Sequences of unequal length are truncated to the shorter.
func AnalyzeEnvironment(records []types.SymptomRecord, observations []types.EnvironmentalObservation) []types.EnvironmentalInsight {
	n := len(records)
	if len(observations) < n {
		n = len(observations)
	}
	if n < MinCorrelationPairs {
		return []types.EnvironmentalInsight{}
	}
	records = records[:n]
	observations = observations[:n]

	insights := make([]types.EnvironmentalInsight, 0, 3)
	if in, ok := analyzePressure(records, observations); ok {
		insights = append(insights, in)
	}
	if in, ok := analyzeHumidity(records, observations); ok {
		insights = append(insights, in)
	}
	if in, ok := analyzeAirQuality(records, observations); ok {
		insights = append(insights, in)
	}
	return insights
}

// analyzePressure correlates day-over-day pressure deltas against hot-flash
// counts on the same shifted index. Reported only when |r| clears the gate.
func analyzePressure(records []types.SymptomRecord, observations []types.EnvironmentalObservation) (types.EnvironmentalInsight, bool) {
	deltas := make([]float64, 0, len(observations)-1)
	for i := 1; i < len(observations); i++ {
		deltas = append(deltas, observations[i].PressureHPa-observations[i-1].PressureHPa)
	}
	flashes := hotFlashSeries(records)[1:]

	r := Correlate(deltas, flashes)
	if math.Abs(r) <= PressureCorrGate {
		return types.EnvironmentalInsight{}, false
	}

	severity := types.SeverityMedium
	if math.Abs(r) > PressureCorrHigh {
		severity = types.SeverityHigh
	}

	var direction types.OutlookDirection
	var reason string
	switch {
	case r < -PressureCorrGate:
		direction = types.OutlookWorse
		reason = "Falling pressure has preceded more hot flashes in your history"
	case r > PressureCorrGate:
		direction = types.OutlookBetter
		reason = "Rising pressure has coincided with fewer hot flashes in your history"
	default:
		direction = types.OutlookSame
		reason = "Pressure changes show no clear direction for tomorrow"
	}

	return types.EnvironmentalInsight{
		Factor:                 types.FactorPressure,
		Severity:               severity,
		CorrelationCoefficient: r,
		ConfidencePercent:      correlationConfidence(r),
		Recommendations:        pressureRecommendations[severity],
		Forecast: types.FactorForecast{
			Direction:   direction,
			Reason:      reason,
			Suggestions: factorOutlookSuggestions[types.FactorPressure],
		},
	}, true
}

// analyzeHumidity correlates absolute humidity against sleep quality.
// Severity escalates when a large share of days were above the high-
// humidity threshold and the negative correlation is strong.
func analyzeHumidity(records []types.SymptomRecord, observations []types.EnvironmentalObservation) (types.EnvironmentalInsight, bool) {
	humidity := make([]float64, len(observations))
	humidDays := 0
	for i, o := range observations {
		humidity[i] = o.HumidityPercent
		if o.HumidityPercent > HumidityHighPercent {
			humidDays++
		}
	}

	r := Correlate(humidity, sleepSeries(records))
	if math.Abs(r) <= HumidityCorrGate {
		return types.EnvironmentalInsight{}, false
	}

	humidFraction := float64(humidDays) / float64(len(observations))
	var severity types.FactorSeverity
	switch {
	case humidFraction > HumidityHighFraction && r < -HumidityCorrHigh:
		severity = types.SeverityHigh
	case r < -HumidityCorrGate:
		severity = types.SeverityMedium
	default:
		severity = types.SeverityLow
	}

	forecast := types.FactorForecast{
		Direction:   types.OutlookSame,
		Reason:      "Humidity shows only a mild link with your sleep",
		Suggestions: factorOutlookSuggestions[types.FactorHumidity],
	}
	if severity != types.SeverityLow {
		forecast.Direction = types.OutlookWorse
		forecast.Reason = "Humid days have meant worse sleep for you; expect the same if tomorrow is muggy"
	}

	return types.EnvironmentalInsight{
		Factor:                 types.FactorHumidity,
		Severity:               severity,
		CorrelationCoefficient: r,
		ConfidencePercent:      correlationConfidence(r),
		Recommendations:        humidityRecommendations[severity],
		Forecast:               forecast,
	}, true
}

// analyzeAirQuality correlates PM2.5 against mood. The impact gate is an OR
// of a correlation threshold and an absolute-level threshold, so both a
// statistically linked and an objectively poor average qualify.
func analyzeAirQuality(records []types.SymptomRecord, observations []types.EnvironmentalObservation) (types.EnvironmentalInsight, bool) {
	pm := make([]float64, len(observations))
	for i, o := range observations {
		pm[i] = o.PM25
	}
	meanPM := mean(pm)

	r := Correlate(pm, moodSeries(records))
	if math.Abs(r) <= AirQualityCorrGate && meanPM <= AirQualityLevelGate {
		return types.EnvironmentalInsight{}, false
	}

	var severity types.FactorSeverity
	switch {
	case r < -AirQualityCorrHigh && meanPM > AirQualityLevelHigh:
		severity = types.SeverityHigh
	case r < -AirQualityCorrMed || meanPM > AirQualityLevelGate:
		severity = types.SeverityMedium
	default:
		severity = types.SeverityLow
	}

	forecast := types.FactorForecast{
		Direction:   types.OutlookSame,
		Reason:      "Air quality shows only a weak link with your mood so far",
		Suggestions: factorOutlookSuggestions[types.FactorAirQuality],
	}
	if severity != types.SeverityLow {
		forecast.Direction = types.OutlookWorse
		forecast.Reason = "Particulate levels around you have tracked with lower mood; a poor air day tomorrow may do the same"
	}

	return types.EnvironmentalInsight{
		Factor:                 types.FactorAirQuality,
		Severity:               severity,
		CorrelationCoefficient: r,
		ConfidencePercent:      correlationConfidence(r),
		Recommendations:        airQualityRecommendations[severity],
		Forecast:               forecast,
	}, true
}

// correlationConfidence maps the correlation magnitude onto a 0-100
// confidence percentage.
func correlationConfidence(r float64) int {
	return clampPercent(roundToInt(math.Abs(r) * 100))
}
