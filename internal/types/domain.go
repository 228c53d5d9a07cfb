package types

import "time"

// SymptomRecord is one day's self-reported diary entry for a user.
// Records are owned and persisted by the record store; the analysis engine
// only ever holds a read-only, chronologically ascending snapshot and never
// writes back into it.
type SymptomRecord struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Date          time.Time `json:"date" db:"date"`
	HotFlashCount int       `json:"hot_flash_count" db:"hot_flash_count"`
	SleepQuality  int       `json:"sleep_quality" db:"sleep_quality"`
	MoodOverall   int       `json:"mood_overall" db:"mood_overall"`
	EnergyLevel   int       `json:"energy_level" db:"energy_level"`
	Notes         string    `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EnvironmentalObservation is one day's (or instant's) weather and
// air-quality reading for a location, supplied by the external provider.
// Read-only to the engine.
type EnvironmentalObservation struct {
	Timestamp       time.Time `json:"timestamp"`
	PressureHPa     float64   `json:"pressure_hpa"`
	HumidityPercent float64   `json:"humidity_percent"`
	TemperatureC    float64   `json:"temperature_c"`
	PM25            float64   `json:"pm25"`
	UVIndex         float64   `json:"uv_index"`
}

// ForecastSnapshot contains the forecast environmental values for a single
// day (typically tomorrow). It is the input to the predictor and the alert
// generator.
type ForecastSnapshot struct {
	PressureHPa     float64 `json:"pressure_hpa"`
	HumidityPercent float64 `json:"humidity_percent"`
	TemperatureC    float64 `json:"temperature_c"`
	PM25            float64 `json:"pm25"`
	UVIndex         float64 `json:"uv_index"`
}

// UserProfile is the coarse onboarding profile consumed by the insight
// rules. Only the menopause phase is read by the engine; everything else
// about the user lives with the external auth/profile service.
type UserProfile struct {
	UserID         string         `json:"user_id" db:"user_id"`
	MenopausePhase MenopausePhase `json:"menopause_phase" db:"menopause_phase"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Location is a geographic coordinate for environmental data lookups.
type Location struct {
	Lat float64 `json:"lat" validate:"required,latitude"`
	Lon float64 `json:"lon" validate:"required,longitude"`
}
