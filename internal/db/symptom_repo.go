package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"lunara/internal/types"
)

// SymptomRepository provides data access for the symptom_records table.
// Records are immutable once written; the engine reads them as an ordered
// snapshot and never writes back.
type SymptomRepository struct {
	db DBTX
}

// NewSymptomRepository creates a SymptomRepository backed by the given
// database connection (pool or transaction).
func NewSymptomRepository(db DBTX) *SymptomRepository {
	return &SymptomRepository{db: db}
}

// symptomColumns is the standard column set for symptom record queries.
// Used consistently across query methods to avoid column drift.
const symptomColumns = `user_id, date, hot_flash_count, sleep_quality, mood_overall, energy_level, notes, created_at`

func scanSymptomRecord(row pgx.Row) (types.SymptomRecord, error) {
	var r types.SymptomRecord
	var notes *string
	err := row.Scan(
		&r.UserID,
		&r.Date,
		&r.HotFlashCount,
		&r.SleepQuality,
		&r.MoodOverall,
		&r.EnergyLevel,
		&notes,
		&r.CreatedAt,
	)
	if err != nil {
		return types.SymptomRecord{}, err
	}
	if notes != nil {
		r.Notes = *notes
	}
	return r, nil
}

// ListRange returns all of a user's records with dates in [from, to],
// chronologically ascending. An empty result is not an error: the engine
// has well-defined behavior for sparse histories.
func (r *SymptomRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]types.SymptomRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+symptomColumns+`
		 FROM symptom_records
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC`,
		userID, from, to,
	)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to query symptom records", err)
	}
	defer rows.Close()

	records := make([]types.SymptomRecord, 0, 32)
	for rows.Next() {
		record, err := scanSymptomRecord(rows)
		if err != nil {
			return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to scan symptom record", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB, "failed to read symptom records", err)
	}
	return records, nil
}

// Insert persists one diary entry. A second entry for the same user and day
// is rejected as a duplicate.
func (r *SymptomRepository) Insert(ctx context.Context, record types.SymptomRecord) error {
	var notes *string
	if record.Notes != "" {
		notes = &record.Notes
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO symptom_records (user_id, date, hot_flash_count, sleep_quality, mood_overall, energy_level, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		record.UserID,
		record.Date,
		record.HotFlashCount,
		record.SleepQuality,
		record.MoodOverall,
		record.EnergyLevel,
		notes,
		record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return types.NewAppError(types.ErrCodeConflictDuplicateEntry, "a diary entry already exists for this day", err)
		}
		return types.NewAppError(types.ErrCodeInternalDB, "failed to insert symptom record", err)
	}
	return nil
}
