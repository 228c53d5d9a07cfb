// Package handlers contains the HTTP handler implementations for the Lunara
// API. Handlers parse and validate requests, delegate to repositories and the
// analysis engine, and shape responses; they hold no domain logic themselves.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"lunara/internal/core"
	"lunara/internal/insight"
	"lunara/internal/types"
)

// SymptomReader is the read surface of the symptom record store the analysis
// handlers depend on. Defined locally to avoid tight coupling to the db
// package.
type SymptomReader interface {
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]types.SymptomRecord, error)
}

// ProfileReader resolves the coarse onboarding profile for phase-specific
// insight rules.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (types.UserProfile, error)
}

// EngineRecorder receives engine invocation telemetry. A nil recorder
// disables recording.
type EngineRecorder interface {
	RecordEngineInvocation(entryPoint, result string, duration time.Duration)
}

// InsightHandler serves the symptom-analysis read endpoints: health score,
// trends, and generated insights.
type InsightHandler struct {
	records  SymptomReader
	profiles ProfileReader
	engine   EngineRecorder
	logger   *slog.Logger
}

// NewInsightHandler creates an InsightHandler with the provided dependencies.
func NewInsightHandler(records SymptomReader, profiles ProfileReader, engine EngineRecorder, logger *slog.Logger) *InsightHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightHandler{
		records:  records,
		profiles: profiles,
		engine:   engine,
		logger:   logger,
	}
}

// RegisterRoutes mounts the analysis endpoints onto the v1 router.
func (h *InsightHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users/{userID}/health-score", h.HandleGetHealthScore)
	r.Get("/users/{userID}/trends", h.HandleGetTrends)
	r.Get("/users/{userID}/insights", h.HandleGetInsights)
}

// HandleGetHealthScore handles GET /v1/users/{userID}/health-score.
// The optional window query parameter selects the record window in days;
// only 7, 30, and 90 are accepted, defaulting to 30.
func (h *InsightHandler) HandleGetHealthScore(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	window, err := parseWindow(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()

	records, err := h.records.ListRange(r.Context(), userID, now.AddDate(0, 0, -int(window)), now)
	if err != nil {
		recordEngine(h.engine, "health_score", start, err)
		core.Error(w, r, err)
		return
	}

	score := insight.ComputeHealthScore(records)
	recordEngine(h.engine, "health_score", start, nil)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: score})
}

// HandleGetTrends handles GET /v1/users/{userID}/trends. Trends compare the
// most recent seven records against the seven before them, so the handler
// always loads a month of history.
func (h *InsightHandler) HandleGetTrends(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()

	records, err := h.records.ListRange(r.Context(), userID, now.AddDate(0, 0, -int(types.WindowMonth)), now)
	if err != nil {
		recordEngine(h.engine, "trends", start, err)
		core.Error(w, r, err)
		return
	}

	trends := insight.AnalyzeTrends(records)
	recordEngine(h.engine, "trends", start, nil)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: trends})
}

// HandleGetInsights handles GET /v1/users/{userID}/insights. A missing
// profile degrades gracefully: phase-specific rules are skipped and a
// warning is attached to the response metadata.
func (h *InsightHandler) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	start := time.Now()
	now := start.UTC()

	records, err := h.records.ListRange(r.Context(), userID, now.AddDate(0, 0, -int(types.WindowMonth)), now)
	if err != nil {
		recordEngine(h.engine, "insights", start, err)
		core.Error(w, r, err)
		return
	}

	var meta *types.ResponseMeta
	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		var appErr *types.AppError
		if !errors.As(err, &appErr) || appErr.Code != types.ErrCodeNotFoundProfile {
			recordEngine(h.engine, "insights", start, err)
			core.Error(w, r, err)
			return
		}
		profile = types.UserProfile{UserID: userID, MenopausePhase: types.PhaseUnknown}
		meta = &types.ResponseMeta{
			Warnings: []string{"user profile not found; phase-specific insights unavailable"},
		}
	}

	insights := insight.GenerateInsights(records, profile)
	recordEngine(h.engine, "insights", start, nil)

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: insights, Meta: meta})
}

// userIDFromRequest extracts the userID path parameter.
func userIDFromRequest(r *http.Request) (string, error) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		return "", types.NewAppError(
			types.ErrCodeValidationMissingField,
			"userID path parameter is required",
			nil,
		)
	}
	return userID, nil
}

// parseWindow parses the optional window query parameter, defaulting to a
// month. Only the closed set 7, 30, 90 is accepted.
func parseWindow(r *http.Request) (types.AnalysisWindow, error) {
	raw := r.URL.Query().Get("window")
	if raw == "" {
		return types.WindowMonth, nil
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidWindow,
			"window must be one of 7, 30, 90",
			err,
		)
	}

	window := types.AnalysisWindow(days)
	if !window.Valid() {
		return 0, types.NewAppError(
			types.ErrCodeValidationInvalidWindow,
			"window must be one of 7, 30, 90",
			nil,
		)
	}
	return window, nil
}

// recordEngine reports one engine invocation outcome to the recorder, if any.
func recordEngine(engine EngineRecorder, entryPoint string, start time.Time, err error) {
	if engine == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	engine.RecordEngineInvocation(entryPoint, result, time.Since(start))
}
