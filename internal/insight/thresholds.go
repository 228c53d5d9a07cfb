// Package insight implements the health insight and environmental
// correlation engine. Every function in the package is pure: it transforms
// an immutable snapshot of symptom records and environmental observations
// into derived analytical artifacts, never errors on insufficient data, and
// yields identical output for identical input.
package insight

// Minimum-sample-size gates. Below a gate the corresponding component
// returns a well-defined neutral or empty result rather than failing.
const (
	// MinTrendRecords is two full 7-day windows; partial trends are never
	// reported to avoid misleading users with noisy single-week data.
	MinTrendRecords = 14

	// MinCorrelationPairs is the smallest paired sample the environmental
	// correlation engine will analyze.
	MinCorrelationPairs = 5

	// MinPredictionRecords is the smallest history the predictor will use
	// before falling back to a neutral prediction.
	MinPredictionRecords = 3
)

// Week is the record window used for week-over-week comparisons.
const Week = 7

// Neutral defaults returned when a component is below its sample gate.
const (
	NeutralScore                = 70
	NeutralLikelihoodPercent    = 50
	NeutralConfidencePercent    = 30
	scoreTrendBandPoints        = 5
	moodPointsPerScale          = 20
	volatileVarianceThreshold   = 1.0
)

// Correlation gates per environmental factor. A factor is only reported
// when its gate is passed; severity tiers sit above the gate.
const (
	PressureCorrGate     = 0.3
	PressureCorrHigh     = 0.6
	HumidityCorrGate     = 0.25
	HumidityCorrHigh     = 0.4
	HumidityHighPercent  = 70.0
	HumidityHighFraction = 0.3

	// The air-quality impact gate is deliberately an OR of a correlation
	// threshold and an absolute-level threshold: a real-but-weak
	// statistical link and an objectively poor average both qualify.
	// Pending product confirmation; tune the two gates independently.
	AirQualityCorrGate  = 0.2
	AirQualityLevelGate = 25.0
	AirQualityCorrMed   = 0.25
	AirQualityCorrHigh  = 0.4
	AirQualityLevelHigh = 35.0
)

// Predictor baselines and forecast adjustments.
const (
	HeadacheBaselinePercent = 30

	LowPressureHPa        = 1000.0
	LowPressureHotFlashPts = 25
	LowPressureHeadachePts = 20

	HighHumidityPercent  = 70.0
	HighHumiditySleepPts = 30

	LowHumidityPercent     = 30.0
	LowHumidityHotFlashPts = 15

	HighTemperatureC       = 25.0
	HighTempHotFlashPts    = 20

	// Confidence grows with history length and is capped well below
	// certainty: this is guidance, not a clinical forecast.
	ConfidenceBasePercent   = 40
	ConfidencePerRecord     = 2
	ConfidenceCapPercent    = 90
	PreparationTipRiskGate  = 60
)

// Insight rule gates.
const (
	HotFlashDayFractionGate = 0.6
	PoorSleepQuality        = 2
	PoorSleepCountGate      = 3
	MoodCorrGate            = 0.6
	GoodMoodLevel           = 4
	GoodMoodDayGate         = 5
)

// Alert thresholds applied to a single forecast snapshot.
const (
	AlertPressureDropHPa  = 5.0
	AlertHumidityPercent  = 75.0
	AlertUVIndex          = 6.0
	AlertPM25             = 35.0
)
