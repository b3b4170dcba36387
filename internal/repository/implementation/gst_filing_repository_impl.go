package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/mapper"
	"smartbiz-be/internal/model"
	"smartbiz-be/internal/repository/contract"
	"smartbiz-be/internal/repository/specification"
)

type GstFilingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GstFilingMapper
}

func NewGstFilingRepository(db *gorm.DB) contract.GstFilingRepository {
	return &GstFilingRepositoryImpl{
		db:     db,
		mapper: mapper.NewGstFilingMapper(),
	}
}

func (r *GstFilingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GstFilingRepositoryImpl) Create(ctx context.Context, filing *entity.GstFiling) error {
	m := r.mapper.ToModel(filing)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*filing = *r.mapper.ToEntity(m)
	return nil
}

func (r *GstFilingRepositoryImpl) Update(ctx context.Context, filing *entity.GstFiling) error {
	m := r.mapper.ToModel(filing)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*filing = *r.mapper.ToEntity(m)
	return nil
}

func (r *GstFilingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.GstFiling{}, id).Error
}

func (r *GstFilingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GstFiling, error) {
	var m model.GstFiling
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GstFilingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GstFiling, error) {
	var models []*model.GstFiling
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GstFilingRepositoryImpl) UpsertForPeriod(ctx context.Context, filing *entity.GstFiling) error {
	m := r.mapper.ToModel(filing)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "filing_type"}, {Name: "period"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_sales", "total_tax", "status", "due_date", "filed_at", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*filing = *r.mapper.ToEntity(m)
	return nil
}
