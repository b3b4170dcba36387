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
)

type UserPreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MemoryMapper
}

func NewUserPreferenceRepository(db *gorm.DB) contract.UserPreferenceRepository {
	return &UserPreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewMemoryMapper(),
	}
}

func (r *UserPreferenceRepositoryImpl) GetOrCreate(ctx context.Context, userId uuid.UUID) (*entity.UserPreference, error) {
	var m model.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error
	if err == nil {
		return r.mapper.PreferenceToEntity(&m), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m = model.UserPreference{
		UserId:             userId,
		Language:           "english",
		CommunicationStyle: "simple",
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return r.mapper.PreferenceToEntity(&m), nil
}

func (r *UserPreferenceRepositoryImpl) Update(ctx context.Context, pref *entity.UserPreference) error {
	m := r.mapper.PreferenceToModel(pref)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*pref = *r.mapper.PreferenceToEntity(m)
	return nil
}
