package types

// ScoreTrend labels the week-over-week movement of a composite score.
type ScoreTrend string

const (
	TrendImproving ScoreTrend = "improving"
	TrendStable    ScoreTrend = "stable"
	TrendDeclining ScoreTrend = "declining"
)

// TrendDirection labels the movement of a single symptom. Direction is
// symptom-specific: a falling hot-flash count is improving, a falling sleep
// score is worsening.
type TrendDirection string

const (
	DirectionImproving TrendDirection = "improving"
	DirectionWorsening TrendDirection = "worsening"
	DirectionStable    TrendDirection = "stable"
)

// ShapeLabel classifies the shape of the most recent 7-day value series.
type ShapeLabel string

const (
	ShapeMonotonicIncrease ShapeLabel = "monotonic-increase"
	ShapeMonotonicDecrease ShapeLabel = "monotonic-decrease"
	ShapeStable            ShapeLabel = "stable"
	ShapeVolatile          ShapeLabel = "volatile"
	ShapeInsufficientData  ShapeLabel = "insufficient-data"
)

// SymptomCategory identifies a tracked symptom series.
type SymptomCategory string

const (
	SymptomHotFlashes SymptomCategory = "hot_flashes"
	SymptomSleep      SymptomCategory = "sleep"
	SymptomMood       SymptomCategory = "mood"
	SymptomEnergy     SymptomCategory = "energy"
	SymptomHeadache   SymptomCategory = "headache"
)

// InsightKind identifies the type of a generated insight.
type InsightKind string

const (
	InsightPattern        InsightKind = "pattern"
	InsightCorrelation    InsightKind = "correlation"
	InsightPrediction     InsightKind = "prediction"
	InsightRecommendation InsightKind = "recommendation"
	InsightAchievement    InsightKind = "achievement"
)

// InsightPriority orders insights for display.
type InsightPriority string

const (
	PriorityLow    InsightPriority = "low"
	PriorityMedium InsightPriority = "medium"
	PriorityHigh   InsightPriority = "high"
)

// EnvFactor identifies an environmental factor tracked for correlation.
type EnvFactor string

const (
	FactorPressure   EnvFactor = "pressure"
	FactorHumidity   EnvFactor = "humidity"
	FactorAirQuality EnvFactor = "air_quality"
)

// FactorSeverity is the qualitative strength bucket for a reported
// environmental association.
type FactorSeverity string

const (
	SeverityLow    FactorSeverity = "low"
	SeverityMedium FactorSeverity = "medium"
	SeverityHigh   FactorSeverity = "high"
)

// OutlookDirection is the one-day-ahead directional outlook for a factor.
type OutlookDirection string

const (
	OutlookBetter OutlookDirection = "better"
	OutlookSame   OutlookDirection = "same"
	OutlookWorse  OutlookDirection = "worse"
)

// AlertKind identifies the rule that produced a weather alert.
type AlertKind string

const (
	AlertPressureDrop   AlertKind = "pressure_drop"
	AlertHighHumidity   AlertKind = "high_humidity"
	AlertPoorAirQuality AlertKind = "poor_air_quality"
	AlertUVWarning      AlertKind = "uv_warning"
)

// AlertSeverity determines how prominently an advisory is displayed.
type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertWarning AlertSeverity = "warning"
	AlertDanger  AlertSeverity = "danger"
)

// MenopausePhase is the coarse onboarding profile flag consumed by the
// phase-specific insight rule.
type MenopausePhase string

const (
	PhasePre     MenopausePhase = "pre"
	PhasePeri    MenopausePhase = "peri"
	PhasePost    MenopausePhase = "post"
	PhaseUnknown MenopausePhase = "unknown"
)

// AnalysisWindow is the record window, in days, requested for score and
// insight computation.
type AnalysisWindow int

const (
	WindowWeek    AnalysisWindow = 7
	WindowMonth   AnalysisWindow = 30
	WindowQuarter AnalysisWindow = 90
)

// Valid reports whether the window is one of the supported sizes.
func (w AnalysisWindow) Valid() bool {
	switch w {
	case WindowWeek, WindowMonth, WindowQuarter:
		return true
	default:
		return false
	}
}

// CloudWatch metric names and dimensions for engine observability.
const (
	MetricNamespace        = "Lunara"
	MetricEngineInvocation = "EngineInvocation"
	MetricEngineLatency    = "EngineLatency"
	MetricAPIRequestCount  = "APIRequestCount"
	MetricAPILatency       = "APILatency"

	DimEntryPoint = "EntryPoint"
	DimResult     = "Result"
	DimEndpoint   = "Endpoint"
	DimMethod     = "Method"
	DimStatus     = "Status"
)
