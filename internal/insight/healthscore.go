package insight

import "lunara/internal/types"

// ComputeHealthScore reduces a window of symptom records into a composite
// 0-100 score with four sub-category scores and a week-over-week trend.
//
// An empty window returns a neutral default (all scores 70, stable trend)
// rather than failing: the dashboard must always render something.
func ComputeHealthScore(records []types.SymptomRecord) types.HealthScore {
	if len(records) == 0 {
		return types.HealthScore{
			Overall: NeutralScore,
			Categories: types.CategoryScores{
				Symptoms: NeutralScore,
				Sleep:    NeutralScore,
				Mood:     NeutralScore,
				Energy:   NeutralScore,
			},
			Trend:              types.TrendStable,
			WeeklyChangePoints: 0,
		}
	}

	symptoms := clampPercent(roundToInt(100 - 10*mean(hotFlashSeries(records))))
	sleep := clampPercent(roundToInt(mean(sleepSeries(records)) / 5 * 100))
	mood := clampPercent(roundToInt(mean(moodSeries(records)) / 5 * 100))
	energy := clampPercent(roundToInt(mean(energySeries(records)) / 5 * 100))

	overall := clampPercent(roundToInt(float64(symptoms+sleep+mood+energy) / 4))

	trend, change := weeklyMoodTrend(records)

	return types.HealthScore{
		Overall: overall,
		Categories: types.CategoryScores{
			Symptoms: symptoms,
			Sleep:    sleep,
			Mood:     mood,
			Energy:   energy,
		},
		Trend:              trend,
		WeeklyChangePoints: change,
	}
}

// weeklyMoodTrend compares mean mood over the most recent 7 records against
// the preceding 7. Each point of mood on the 1-5 scale is worth 20 change
// points; moves within the ±5 point band are reported as stable. If either
// window is empty the trend is stable with zero change.
func weeklyMoodTrend(records []types.SymptomRecord) (types.ScoreTrend, int) {
	moods := moodSeries(records)
	recent := lastN(moods, Week)
	previous := windowBefore(moods, Week)
	if len(recent) == 0 || len(previous) == 0 {
		return types.TrendStable, 0
	}

	change := roundToInt((mean(recent) - mean(previous)) * moodPointsPerScale)
	switch {
	case change > scoreTrendBandPoints:
		return types.TrendImproving, change
	case change < -scoreTrendBandPoints:
		return types.TrendDeclining, change
	default:
		return types.TrendStable, change
	}
}
