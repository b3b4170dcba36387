package contract

import (
	"context"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindByNameLike does a case-insensitive partial match scoped to the user.
	FindByNameLike(ctx context.Context, userId uuid.UUID, name string) (*entity.Customer, error)
}
