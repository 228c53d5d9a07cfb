package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lunara/internal/core"
	"lunara/internal/insight"
	"lunara/internal/types"
	"lunara/internal/weather"
)

// BundleFetcher resolves the environmental inputs (current conditions,
// daily history, tomorrow's forecast) for a location.
type BundleFetcher interface {
	FetchBundle(ctx context.Context, loc types.Location, from, to time.Time) (weather.Bundle, error)
}

// EnvironmentHandler serves the environmental correlation, prediction, and
// alert endpoints. Every endpoint requires lat/lon query parameters because
// environmental data is location-bound.
type EnvironmentHandler struct {
	records     SymptomReader
	bundles     BundleFetcher
	engine      EngineRecorder
	historyDays int
	logger      *slog.Logger
}

// NewEnvironmentHandler creates an EnvironmentHandler. historyDays controls
// how far back the environmental correlation window reaches.
func NewEnvironmentHandler(records SymptomReader, bundles BundleFetcher, engine EngineRecorder, historyDays int, logger *slog.Logger) *EnvironmentHandler {
	if historyDays <= 0 {
		historyDays = int(types.WindowMonth)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EnvironmentHandler{
		records:     records,
		bundles:     bundles,
		engine:      engine,
		historyDays: historyDays,
		logger:      logger,
	}
}

// RegisterRoutes mounts the environment endpoints onto the v1 router.
func (h *EnvironmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/{userID}/environment/insights", h.HandleGetEnvironmentInsights)
	r.Get("/users/{userID}/environment/prediction", h.HandleGetPrediction)
	r.Get("/users/{userID}/environment/alerts", h.HandleGetAlerts)
}

// HandleGetEnvironmentInsights handles
// GET /v1/users/{userID}/environment/insights.
// Symptom records and environmental history are aligned by calendar day;
// when the overlap is too small for meaningful correlation the response
// carries an empty list and a warning rather than an error.
func (h *EnvironmentHandler) HandleGetEnvironmentInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	loc, err := parseLocation(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()
	from := now.AddDate(0, 0, -h.historyDays)

	records, err := h.records.ListRange(r.Context(), userID, from, now)
	if err != nil {
		recordEngine(h.engine, "environment", start, err)
		core.Error(w, r, err)
		return
	}

	bundle, err := h.bundles.FetchBundle(r.Context(), loc, from, now)
	if err != nil {
		recordEngine(h.engine, "environment", start, err)
		core.Error(w, r, err)
		return
	}

	alignedRecords, alignedObs := weather.AlignDaily(records, bundle.History)
	insights := insight.AnalyzeEnvironment(alignedRecords, alignedObs)
	recordEngine(h.engine, "environment", start, nil)

	var meta *types.ResponseMeta
	if len(alignedRecords) < insight.MinCorrelationPairs {
		meta = &types.ResponseMeta{
			Warnings: []string{"not enough overlapping symptom and environmental data for correlation"},
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: insights, Meta: meta})
}

// HandleGetPrediction handles GET /v1/users/{userID}/environment/prediction.
// The predictor reads the last week of records plus tomorrow's forecast.
func (h *EnvironmentHandler) HandleGetPrediction(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	loc, err := parseLocation(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()

	records, err := h.records.ListRange(r.Context(), userID, now.AddDate(0, 0, -insight.Week), now)
	if err != nil {
		recordEngine(h.engine, "prediction", start, err)
		core.Error(w, r, err)
		return
	}

	bundle, err := h.bundles.FetchBundle(r.Context(), loc, now.AddDate(0, 0, -1), now)
	if err != nil {
		recordEngine(h.engine, "prediction", start, err)
		core.Error(w, r, err)
		return
	}

	prediction := insight.PredictTomorrow(records, bundle.Forecast)
	recordEngine(h.engine, "prediction", start, nil)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: prediction})
}

// HandleGetAlerts handles GET /v1/users/{userID}/environment/alerts.
// Alerts compare current conditions against tomorrow's forecast; no symptom
// history is involved.
func (h *EnvironmentHandler) HandleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if _, err := userIDFromRequest(r); err != nil {
		core.Error(w, r, err)
		return
	}
	loc, err := parseLocation(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()

	bundle, err := h.bundles.FetchBundle(r.Context(), loc, now.AddDate(0, 0, -1), now)
	if err != nil {
		recordEngine(h.engine, "alerts", start, err)
		core.Error(w, r, err)
		return
	}

	alerts := insight.GenerateAlerts(snapshotFromObservation(bundle.Current), bundle.Forecast, now)
	recordEngine(h.engine, "alerts", start, nil)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: alerts})
}

// snapshotFromObservation projects a point-in-time observation onto the
// snapshot shape the alert generator compares against the forecast.
func snapshotFromObservation(obs types.EnvironmentalObservation) types.ForecastSnapshot {
	return types.ForecastSnapshot{
		PressureHPa:     obs.PressureHPa,
		HumidityPercent: obs.HumidityPercent,
		TemperatureC:    obs.TemperatureC,
		PM25:            obs.PM25,
		UVIndex:         obs.UVIndex,
	}
}

// parseLocation parses and range-checks the required lat/lon query
// parameters.
func parseLocation(r *http.Request) (types.Location, error) {
	q := r.URL.Query()

	latStr := q.Get("lat")
	if latStr == "" {
		return types.Location{}, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"lat query parameter is required",
			nil,
		)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return types.Location{}, types.NewAppError(
			types.ErrCodeValidationInvalidLat,
			"lat must be a number between -90 and 90",
			err,
		)
	}

	lonStr := q.Get("lon")
	if lonStr == "" {
		return types.Location{}, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"lon query parameter is required",
			nil,
		)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return types.Location{}, types.NewAppError(
			types.ErrCodeValidationInvalidLon,
			"lon must be a number between -180 and 180",
			err,
		)
	}

	return types.Location{Lat: lat, Lon: lon}, nil
}
