package mapper

import (
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/model"
)

type GstFilingMapper struct{}

func NewGstFilingMapper() *GstFilingMapper {
	return &GstFilingMapper{}
}

func (m *GstFilingMapper) ToEntity(f *model.GstFiling) *entity.GstFiling {
	if f == nil {
		return nil
	}
	return &entity.GstFiling{
		Id:              f.Id,
		UserId:          f.UserId,
		FilingType:      f.FilingType,
		Period:          f.Period,
		TotalSales:      f.TotalSales,
		TotalTax:        f.TotalTax,
		Status:          entity.FilingStatus(f.Status),
		DueDate:         f.DueDate,
		FiledAt:         f.FiledAt,
		ReferenceNumber: f.ReferenceNumber,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (m *GstFilingMapper) ToModel(f *entity.GstFiling) *model.GstFiling {
	if f == nil {
		return nil
	}
	return &model.GstFiling{
		Id:              f.Id,
		UserId:          f.UserId,
		FilingType:      f.FilingType,
		Period:          f.Period,
		TotalSales:      f.TotalSales,
		TotalTax:        f.TotalTax,
		Status:          string(f.Status),
		DueDate:         f.DueDate,
		FiledAt:         f.FiledAt,
		ReferenceNumber: f.ReferenceNumber,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

func (m *GstFilingMapper) ToEntities(filings []*model.GstFiling) []*entity.GstFiling {
	entities := make([]*entity.GstFiling, len(filings))
	for i, f := range filings {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
