package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

type BusinessProfileRepository interface {
	Create(ctx context.Context, profile *entity.BusinessProfile) error
	Update(ctx context.Context, profile *entity.BusinessProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessProfile, error)
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BusinessProfile, error)
}
