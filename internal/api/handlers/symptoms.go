package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lunara/internal/core"
	"lunara/internal/types"
)

// SymptomWriter is the write surface of the symptom record store.
type SymptomWriter interface {
	Insert(ctx context.Context, record types.SymptomRecord) error
}

// symptomEntryRequest is the POST body for a daily diary entry. One entry
// per user per day; a second submission for the same date is a conflict.
type symptomEntryRequest struct {
	Date          string `json:"date" validate:"required"`
	HotFlashCount int    `json:"hot_flash_count" validate:"min=0,max=50"`
	SleepQuality  int    `json:"sleep_quality" validate:"min=1,max=5"`
	MoodOverall   int    `json:"mood_overall" validate:"min=1,max=5"`
	EnergyLevel   int    `json:"energy_level" validate:"min=1,max=5"`
	Notes         string `json:"notes" validate:"max=2000"`
}

// SymptomHandler serves the symptom diary write endpoint.
type SymptomHandler struct {
	store     SymptomWriter
	validator *core.Validator
	logger    *slog.Logger
}

// NewSymptomHandler creates a SymptomHandler with the provided dependencies.
func NewSymptomHandler(store SymptomWriter, validator *core.Validator, logger *slog.Logger) *SymptomHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SymptomHandler{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// RegisterRoutes mounts the diary endpoint onto the v1 router.
func (h *SymptomHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users/{userID}/symptoms", h.HandlePostSymptom)
}

// HandlePostSymptom handles POST /v1/users/{userID}/symptoms. The entry date
// is a calendar day in YYYY-MM-DD form; it is stored normalized to UTC
// midnight.
func (h *SymptomHandler) HandlePostSymptom(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	var req symptomEntryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		core.Error(w, r, err)
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationInvalidDate,
			"date must be a calendar day in YYYY-MM-DD form",
			err,
		))
		return
	}

	record := types.SymptomRecord{
		UserID:        userID,
		Date:          date,
		HotFlashCount: req.HotFlashCount,
		SleepQuality:  req.SleepQuality,
		MoodOverall:   req.MoodOverall,
		EnergyLevel:   req.EnergyLevel,
		Notes:         req.Notes,
		CreatedAt:     time.Now().UTC(),
	}

	if err := h.store.Insert(r.Context(), record); err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusCreated, core.APIResponse{Data: record})
}
