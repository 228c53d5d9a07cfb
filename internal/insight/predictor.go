package insight

import (
	"fmt"
	"strings"

	"lunara/internal/types"
)

// PredictTomorrow projects next-day likelihoods for each tracked symptom
// category from recent history, adjusted by tomorrow's forecast conditions.
// Fewer than 3 records yields a neutral prediction instead of a guess built
// on noise.
func PredictTomorrow(records []types.SymptomRecord, forecast types.ForecastSnapshot) types.PredictionResult {
	if len(records) < MinPredictionRecords {
		return neutralPrediction()
	}

	recent := records
	if len(recent) > Week {
		recent = recent[len(recent)-Week:]
	}

	meanHotFlash := mean(hotFlashSeries(recent))
	meanSleep := mean(sleepSeries(recent))
	meanMood := mean(moodSeries(recent))

	hotFlashRisk := meanHotFlash / 10 * 100
	sleepRisk := (5 - meanSleep) / 5 * 100
	moodRisk := (5 - meanMood) / 5 * 100
	headacheRisk := float64(HeadacheBaselinePercent)

	reasons := []string{"based on your recent symptom pattern"}
	if forecast.PressureHPa < LowPressureHPa {
		hotFlashRisk += LowPressureHotFlashPts
		headacheRisk += LowPressureHeadachePts
		reasons = append(reasons, "low atmospheric pressure tomorrow")
	}
	if forecast.HumidityPercent > HighHumidityPercent {
		sleepRisk += HighHumiditySleepPts
		reasons = append(reasons, "high humidity tomorrow")
	}
	if forecast.HumidityPercent < LowHumidityPercent {
		hotFlashRisk += LowHumidityHotFlashPts
		reasons = append(reasons, "low humidity tomorrow")
	}
	if forecast.TemperatureC > HighTemperatureC {
		hotFlashRisk += HighTempHotFlashPts
		reasons = append(reasons, "high temperature tomorrow")
	}

	hotFlash := clampPercent(roundToInt(hotFlashRisk))
	sleep := clampPercent(roundToInt(sleepRisk))
	mood := clampPercent(roundToInt(moodRisk))
	headache := clampPercent(roundToInt(headacheRisk))

	confidence := ConfidenceBasePercent + ConfidencePerRecord*len(records)
	if confidence > ConfidenceCapPercent {
		confidence = ConfidenceCapPercent
	}

	weeklyTrend, _ := weeklyMoodTrend(records)
	expectedFlashes := meanHotFlash

	return types.PredictionResult{
		HotFlash: types.CategoryPrediction{
			LikelihoodPercent: hotFlash,
			PredictedValue:    &expectedFlashes,
		},
		Sleep:             types.CategoryPrediction{LikelihoodPercent: sleep},
		Mood:              types.CategoryPrediction{LikelihoodPercent: mood},
		Headache:          types.CategoryPrediction{LikelihoodPercent: headache},
		ReasonText:        fmt.Sprintf("Tomorrow's outlook: %s.", strings.Join(reasons, "; ")),
		WeeklyTrend:       weeklyTrend,
		ConfidencePercent: confidence,
		PreparationTips:   preparationTips(hotFlash, sleep, mood),
	}
}

func neutralPrediction() types.PredictionResult {
	neutral := types.CategoryPrediction{LikelihoodPercent: NeutralLikelihoodPercent}
	return types.PredictionResult{
		HotFlash:          neutral,
		Sleep:             neutral,
		Mood:              neutral,
		Headache:          neutral,
		ReasonText:        "Not enough recent entries for a personalized forecast yet. Log a few more days to unlock predictions.",
		WeeklyTrend:       types.TrendStable,
		ConfidencePercent: NeutralConfidencePercent,
		PreparationTips:   []string{"Keep logging daily to build your personal forecast"},
	}
}

// preparationTips appends a fixed tip set for each category whose risk
// clears the gate; when nothing clears it, a single positive tip is emitted.
func preparationTips(hotFlashRisk, sleepRisk, moodRisk int) []string {
	tips := make([]string, 0, 6)
	if hotFlashRisk > PreparationTipRiskGate {
		tips = append(tips,
			"Dress in removable layers tomorrow",
			"Keep cooling aids (fan, cold water, cooling towel) within reach",
		)
	}
	if sleepRisk > PreparationTipRiskGate {
		tips = append(tips,
			"Ventilate the bedroom before bed",
			"Skip caffeine after midday",
		)
	}
	if moodRisk > PreparationTipRiskGate {
		tips = append(tips,
			"Plan a short relaxation break into tomorrow's schedule",
		)
	}
	if len(tips) == 0 {
		tips = append(tips, "Conditions look favorable tomorrow - enjoy your day")
	}
	return tips
}
