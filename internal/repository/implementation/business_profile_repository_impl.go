package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/mapper"
	"smartbiz-be/internal/model"
	"smartbiz-be/internal/repository/contract"
	"smartbiz-be/internal/repository/specification"
)

type BusinessProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BusinessProfileMapper
}

func NewBusinessProfileRepository(db *gorm.DB) contract.BusinessProfileRepository {
	return &BusinessProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewBusinessProfileMapper(),
	}
}

func (r *BusinessProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BusinessProfileRepositoryImpl) Create(ctx context.Context, profile *entity.BusinessProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *BusinessProfileRepositoryImpl) Update(ctx context.Context, profile *entity.BusinessProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *BusinessProfileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BusinessProfile{}, id).Error
}

func (r *BusinessProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.BusinessProfile, error) {
	var m model.BusinessProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *BusinessProfileRepositoryImpl) FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.BusinessProfile, error) {
	return r.FindOne(ctx, specification.UserOwnedBy{UserID: userId})
}
