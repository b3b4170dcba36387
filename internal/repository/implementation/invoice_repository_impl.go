package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/mapper"
	"smartbiz-be/internal/model"
	"smartbiz-be/internal/repository/contract"
	"smartbiz-be/internal/repository/specification"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InvoiceMapper
}

func NewInvoiceRepository(db *gorm.DB) contract.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     db,
		mapper: mapper.NewInvoiceMapper(),
	}
}

func (r *InvoiceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.ToModel(invoice)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*invoice = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *entity.Invoice) error {
	m := r.mapper.ToModel(invoice)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*invoice = *r.mapper.ToEntity(m)
	return nil
}

func (r *InvoiceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Invoice{}, id).Error
}

func (r *InvoiceRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Invoice{})
	return result.RowsAffected, result.Error
}

func (r *InvoiceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Invoice, error) {
	var m model.Invoice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InvoiceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Invoice, error) {
	var models []*model.Invoice
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InvoiceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Invoice{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxSequenceForYear parses the numeric tail of INV-<year>-NNNN numbers.
// Runs inside the caller's transaction when invoked through the unit of work.
func (r *InvoiceRepositoryImpl) MaxSequenceForYear(ctx context.Context, userId uuid.UUID, year int) (int, error) {
	var max int
	prefix := fmt.Sprintf("INV-%d-%%", year)
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COALESCE(MAX(CAST(SPLIT_PART(invoice_number, '-', 3) AS INTEGER)), 0)").
		Where("user_id = ? AND invoice_number LIKE ?", userId, prefix).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r *InvoiceRepositoryImpl) Aggregate(ctx context.Context, userId uuid.UUID, monthStart, monthEnd *time.Time) (*contract.InvoiceAggregates, error) {
	base := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("user_id = ?", userId)
	if monthStart != nil && monthEnd != nil {
		base = base.Where("created_at >= ? AND created_at < ?", *monthStart, *monthEnd)
	}

	var totals struct {
		Count         int64
		TotalRevenue  float64
		TotalGst      float64
		CustomerCount int64
	}
	err := base.Session(&gorm.Session{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total_revenue, COALESCE(SUM(gst_amount), 0) AS total_gst, COUNT(DISTINCT customer_name) AS customer_count").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	err = base.Session(&gorm.Session{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		return nil, err
	}

	statusCounts := make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	return &contract.InvoiceAggregates{
		Count:         totals.Count,
		TotalRevenue:  totals.TotalRevenue,
		TotalGst:      totals.TotalGst,
		CountByStatus: statusCounts,
		CustomerCount: totals.CustomerCount,
	}, nil
}
