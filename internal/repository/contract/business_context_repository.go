package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

type BusinessContextRepository interface {
	// Upsert writes by (user_id, context_type, context_key), replacing the
	// payload and refreshing the expiry when the row already exists.
	Upsert(ctx context.Context, fact *entity.BusinessContext) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessContext, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessContext, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// DeleteExpired permanently removes rows whose expiry has passed.
	DeleteExpired(ctx context.Context) (int64, error)

	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
}
