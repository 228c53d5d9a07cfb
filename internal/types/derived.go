package types

import "time"

// ResponseMeta conveys non-blocking warnings alongside successful API
// responses, such as degraded environmental data coverage.
type ResponseMeta struct {
	Warnings []string `json:"warnings,omitempty"`
}

// HealthScore is the composite wellbeing score derived from a window of
// symptom records. It is recomputed fully on every invocation and never
// incrementally mutated.
type HealthScore struct {
	Overall            int            `json:"overall"`
	Categories         CategoryScores `json:"categories"`
	Trend              ScoreTrend     `json:"trend"`
	WeeklyChangePoints int            `json:"weekly_change_points"`
}

// CategoryScores holds the four sub-category scores, each 0-100.
type CategoryScores struct {
	Symptoms int `json:"symptoms"`
	Sleep    int `json:"sleep"`
	Mood     int `json:"mood"`
	Energy   int `json:"energy"`
}

// Insight is a single ranked, typed observation produced by the insight
// generator. IDs are deterministic per rule so that repeated invocations
// over the same snapshot yield identical output.
type Insight struct {
	ID                string         `json:"id"`
	Kind              InsightKind    `json:"kind"`
	Priority          InsightPriority `json:"priority"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	ConfidencePercent int            `json:"confidence_percent"`
	Actions           []string       `json:"actions,omitempty"`
	Trend             ScoreTrend     `json:"trend,omitempty"`
}

// SymptomTrend compares the most recent 7-record window against the prior
// 7-record window for a single tracked symptom.
type SymptomTrend struct {
	Symptom             SymptomCategory `json:"symptom"`
	CurrentWeekAverage  float64         `json:"current_week_average"`
	PreviousWeekAverage float64         `json:"previous_week_average"`
	Direction           TrendDirection  `json:"direction"`
	Shape               ShapeLabel      `json:"shape"`
	Recommendations     []string        `json:"recommendations"`
}

// EnvironmentalInsight reports a meaningful association between an
// environmental factor and a symptom series.
type EnvironmentalInsight struct {
	Factor                 EnvFactor      `json:"factor"`
	Severity               FactorSeverity `json:"severity"`
	CorrelationCoefficient float64        `json:"correlation_coefficient"`
	ConfidencePercent      int            `json:"confidence_percent"`
	Recommendations        []string       `json:"recommendations"`
	Forecast               FactorForecast `json:"forecast"`
}

// FactorForecast is the one-day-ahead directional outlook attached to an
// environmental insight.
type FactorForecast struct {
	Direction   OutlookDirection `json:"direction"`
	Reason      string           `json:"reason"`
	Suggestions []string         `json:"suggestions"`
}

// CategoryPrediction is the next-day likelihood for a single symptom
// category. PredictedValue is only populated for count-based symptoms.
type CategoryPrediction struct {
	LikelihoodPercent int      `json:"likelihood_percent"`
	PredictedValue    *float64 `json:"predicted_value,omitempty"`
}

// PredictionResult is the next-day symptom outlook. The category set is
// closed: every tracked category is always present in the result.
type PredictionResult struct {
	HotFlash CategoryPrediction `json:"hot_flash"`
	Sleep    CategoryPrediction `json:"sleep"`
	Mood     CategoryPrediction `json:"mood"`
	Headache CategoryPrediction `json:"headache"`

	ReasonText        string     `json:"reason_text"`
	WeeklyTrend       ScoreTrend `json:"weekly_trend"`
	ConfidencePercent int        `json:"confidence_percent"`
	PreparationTips   []string   `json:"preparation_tips"`
}

// WeatherAlert is a short-lived advisory derived from a forecast snapshot.
// ValidUntil is the timestamp after which it must no longer be shown; the
// presentation layer owns dismissal and deduplication.
type WeatherAlert struct {
	Kind       AlertKind     `json:"kind"`
	Severity   AlertSeverity `json:"severity"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Action     string        `json:"action"`
	ValidUntil time.Time     `json:"valid_until"`
}

// Expired reports whether the alert's validity window has passed.
func (a WeatherAlert) Expired(now time.Time) bool {
	return now.After(a.ValidUntil)
}
