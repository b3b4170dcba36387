package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

type GstFilingRepository interface {
	Create(ctx context.Context, filing *entity.GstFiling) error
	Update(ctx context.Context, filing *entity.GstFiling) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GstFiling, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GstFiling, error)

	// Upsert by (user, filing_type, period).
	UpsertForPeriod(ctx context.Context, filing *entity.GstFiling) error
}
