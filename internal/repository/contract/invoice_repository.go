package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
)

// InvoiceAggregates is the result of summing a user's invoices.
type InvoiceAggregates struct {
	Count         int64
	TotalRevenue  float64
	TotalGst      float64
	CountByStatus map[string]int64
	CustomerCount int64
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MaxSequenceForYear returns the highest numeric suffix used in the
	// user's invoice numbers for the given year, 0 when none exist.
	MaxSequenceForYear(ctx context.Context, userId uuid.UUID, year int) (int, error)

	Aggregate(ctx context.Context, userId uuid.UUID, monthStart, monthEnd *time.Time) (*InvoiceAggregates, error)
}
