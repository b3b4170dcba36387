package implementation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/mapper"
	"smartbiz-be/internal/model"
	"smartbiz-be/internal/repository/contract"
	"smartbiz-be/internal/repository/specification"
)

type BusinessContextRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewBusinessContextRepository(db *gorm.DB) contract.BusinessContextRepository {
	return &BusinessContextRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *BusinessContextRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BusinessContextRepositoryImpl) Upsert(ctx context.Context, fact *entity.BusinessContext) error {
	m := r.mapper.ContextToModel(fact)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "context_type"}, {Name: "context_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"context_value", "summary", "confidence_score", "expires_at", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*fact = *r.mapper.ContextToEntity(m)
	return nil
}

func (r *BusinessContextRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessContext, error) {
	var m model.BusinessContext
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ContextToEntity(&m), nil
}

func (r *BusinessContextRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.BusinessContext, error) {
	var models []*model.BusinessContext
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ContextsToEntities(models), nil
}

func (r *BusinessContextRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.BusinessContext{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BusinessContextRepositoryImpl) DeleteExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&model.BusinessContext{})
	return result.RowsAffected, result.Error
}

func (r *BusinessContextRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&model.BusinessContext{})
	return result.RowsAffected, result.Error
}
