package insight

import (
	"time"

	"lunara/internal/types"
)

// GenerateAlerts evaluates fixed thresholds over today's conditions and
// tomorrow's forecast and emits short-lived advisories. Every alert is valid
// until the start (UTC) of the day after tomorrow; suppression of dismissed
// alerts is the presentation layer's job, not this one's.
func GenerateAlerts(current, forecast types.ForecastSnapshot, now time.Time) []types.WeatherAlert {
	validUntil := startOfDayAfterTomorrow(now)
	alerts := make([]types.WeatherAlert, 0, 4)

	if drop := current.PressureHPa - forecast.PressureHPa; drop > AlertPressureDropHPa {
		alerts = append(alerts, types.WeatherAlert{
			Kind:       types.AlertPressureDrop,
			Severity:   types.AlertWarning,
			Title:      "Pressure drop ahead",
			Message:    "Atmospheric pressure is forecast to fall noticeably by tomorrow. Pressure drops often precede hot flashes and headaches.",
			Action:     "Plan a lighter day and keep your cooling kit within reach",
			ValidUntil: validUntil,
		})
	}

	if forecast.HumidityPercent > AlertHumidityPercent {
		alerts = append(alerts, types.WeatherAlert{
			Kind:       types.AlertHighHumidity,
			Severity:   types.AlertInfo,
			Title:      "Muggy day tomorrow",
			Message:    "Humidity is forecast to be very high. Humid nights tend to disturb sleep.",
			Action:     "Ventilate or dehumidify the bedroom before going to bed",
			ValidUntil: validUntil,
		})
	}

	if forecast.UVIndex > AlertUVIndex {
		alerts = append(alerts, types.WeatherAlert{
			Kind:       types.AlertUVWarning,
			Severity:   types.AlertWarning,
			Title:      "High UV tomorrow",
			Message:    "The UV index is forecast above 6. Unprotected midday sun exposure is risky.",
			Action:     "Use sunscreen and prefer shade between 11:00 and 15:00",
			ValidUntil: validUntil,
		})
	}

	if forecast.PM25 > AlertPM25 {
		alerts = append(alerts, types.WeatherAlert{
			Kind:       types.AlertPoorAirQuality,
			Severity:   types.AlertWarning,
			Title:      "Poor air quality tomorrow",
			Message:    "Fine particulate (PM2.5) levels are forecast to be unhealthy.",
			Action:     "Keep windows closed and move exercise indoors",
			ValidUntil: validUntil,
		})
	}

	return alerts
}

// startOfDayAfterTomorrow returns 00:00 UTC two calendar days after now.
func startOfDayAfterTomorrow(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day()+2, 0, 0, 0, 0, time.UTC)
}
