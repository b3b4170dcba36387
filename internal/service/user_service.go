package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/gstn"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserProfileRequest) (*dto.UserProfileResponse, error)

	GetBusinessProfile(ctx context.Context, userId uuid.UUID) (*dto.BusinessProfileResponse, error)
	UpsertBusinessProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertBusinessProfileRequest) (*dto.BusinessProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	return &dto.UserProfileResponse{
		Id:          user.Id,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	user.FullName = req.FullName
	user.Phone = req.Phone
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		Id:          user.Id,
		Email:       user.Email,
		FullName:    user.FullName,
		Phone:       user.Phone,
		Status:      string(user.Status),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) GetBusinessProfile(ctx context.Context, userId uuid.UUID) (*dto.BusinessProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.BusinessProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return toBusinessProfileResponse(profile), nil
}

func (s *userService) UpsertBusinessProfile(ctx context.Context, userId uuid.UUID, req *dto.UpsertBusinessProfileRequest) (*dto.BusinessProfileResponse, error) {
	if req.GstNumber != nil && *req.GstNumber != "" && !gstn.ValidGstinFormat(*req.GstNumber) {
		return nil, errors.New("gst_number has an invalid format")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	profile, err := uow.BusinessProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &entity.BusinessProfile{
			Id:        uuid.New(),
			UserId:    userId,
			CreatedAt: now,
		}
		applyBusinessProfile(profile, req, now)
		if err := uow.BusinessProfileRepository().Create(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		applyBusinessProfile(profile, req, now)
		if err := uow.BusinessProfileRepository().Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	return toBusinessProfileResponse(profile), nil
}

func applyBusinessProfile(profile *entity.BusinessProfile, req *dto.UpsertBusinessProfileRequest, now time.Time) {
	profile.BusinessName = req.BusinessName
	profile.BusinessType = req.BusinessType
	profile.GstNumber = req.GstNumber
	profile.UdyamNumber = req.UdyamNumber
	profile.Address = req.Address
	profile.State = req.State
	profile.Pincode = req.Pincode
	profile.UpdatedAt = now
}

func toBusinessProfileResponse(profile *entity.BusinessProfile) *dto.BusinessProfileResponse {
	return &dto.BusinessProfileResponse{
		Id:           profile.Id,
		BusinessName: profile.BusinessName,
		BusinessType: profile.BusinessType,
		GstNumber:    profile.GstNumber,
		UdyamNumber:  profile.UdyamNumber,
		Address:      profile.Address,
		State:        profile.State,
		Pincode:      profile.Pincode,
		CreatedAt:    profile.CreatedAt,
		UpdatedAt:    profile.UpdatedAt,
	}
}
