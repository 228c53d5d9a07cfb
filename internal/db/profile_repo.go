package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lunara/internal/types"
)

// ProfileRepository provides data access for the user_profiles table, which
// holds the coarse onboarding flags the insight rules consume.
type ProfileRepository struct {
	db DBTX
}

// NewProfileRepository creates a ProfileRepository backed by the given
// database connection (pool or transaction).
func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves a user's profile. Returns ErrCodeNotFoundProfile when the
// user has not completed onboarding.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (types.UserProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, menopause_phase, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p types.UserProfile
	if err := row.Scan(&p.UserID, &p.MenopausePhase, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.UserProfile{}, types.NewAppError(types.ErrCodeNotFoundProfile, "profile not found", nil)
		}
		return types.UserProfile{}, types.NewAppError(types.ErrCodeInternalDB, "failed to retrieve profile", err)
	}
	return p, nil
}
