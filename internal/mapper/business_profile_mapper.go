package mapper

import (
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/model"
)

type BusinessProfileMapper struct{}

func NewBusinessProfileMapper() *BusinessProfileMapper {
	return &BusinessProfileMapper{}
}

func (m *BusinessProfileMapper) ToEntity(p *model.BusinessProfile) *entity.BusinessProfile {
	if p == nil {
		return nil
	}
	return &entity.BusinessProfile{
		Id:           p.Id,
		UserId:       p.UserId,
		BusinessName: p.BusinessName,
		BusinessType: p.BusinessType,
		GstNumber:    p.GstNumber,
		UdyamNumber:  p.UdyamNumber,
		Address:      p.Address,
		State:        p.State,
		Pincode:      p.Pincode,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *BusinessProfileMapper) ToModel(p *entity.BusinessProfile) *model.BusinessProfile {
	if p == nil {
		return nil
	}
	return &model.BusinessProfile{
		Id:           p.Id,
		UserId:       p.UserId,
		BusinessName: p.BusinessName,
		BusinessType: p.BusinessType,
		GstNumber:    p.GstNumber,
		UdyamNumber:  p.UdyamNumber,
		Address:      p.Address,
		State:        p.State,
		Pincode:      p.Pincode,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
