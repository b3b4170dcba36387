package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
)

type UserPreferenceRepository interface {
	// GetOrCreate returns the single preferences row for the user, creating
	// it with defaults on first access.
	GetOrCreate(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error)
	Update(ctx context.Context, pref *entity.UserPreference) error
}
