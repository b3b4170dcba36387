package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/gstn"
)

type IGstService interface {
	VerifyGstin(ctx context.Context, gstin string) (*dto.VerifyGstinResponse, error)
	PrepareFiling(ctx context.Context, userId uuid.UUID, req *dto.PrepareFilingRequest) (*dto.FilingResponse, error)
	ListFilings(ctx context.Context, userId uuid.UUID) ([]*dto.FilingResponse, error)
	MarkFiled(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.FilingResponse, error)
	ComplianceStatus(ctx context.Context, userId uuid.UUID) (*dto.ComplianceStatusResponse, error)
}

type gstService struct {
	uowFactory unitofwork.RepositoryFactory
	gstnClient gstn.Client
}

func NewGstService(uowFactory unitofwork.RepositoryFactory, gstnClient gstn.Client) IGstService {
	return &gstService{
		uowFactory: uowFactory,
		gstnClient: gstnClient,
	}
}

func (s *gstService) VerifyGstin(ctx context.Context, gstin string) (*dto.VerifyGstinResponse, error) {
	if !gstn.ValidGstinFormat(gstin) {
		return &dto.VerifyGstinResponse{Gstin: gstin, Valid: false}, nil
	}

	info, err := s.gstnClient.VerifyGstin(ctx, gstin)
	if err != nil {
		// Format already checked; a registry outage degrades to pending
		// instead of failing the request.
		return &dto.VerifyGstinResponse{Gstin: gstin, Valid: true, Pending: true}, nil
	}

	return &dto.VerifyGstinResponse{
		Gstin:            info.Gstin,
		Valid:            true,
		LegalName:        info.LegalName,
		TradeName:        info.TradeName,
		State:            info.State,
		Status:           info.Status,
		TaxpayerType:     info.TaxpayerType,
		RegistrationDate: info.RegistrationDate,
	}, nil
}

// PrepareFiling aggregates the period's invoices into a draft return and
// upserts it by (user, filing_type, period).
func (s *gstService) PrepareFiling(ctx context.Context, userId uuid.UUID, req *dto.PrepareFilingRequest) (*dto.FilingResponse, error) {
	periodStart, err := time.Parse("2006-01", req.Period)
	if err != nil {
		return nil, errors.New("period must be in YYYY-MM format")
	}
	periodEnd := periodStart.AddDate(0, 1, 0)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	agg, err := uow.InvoiceRepository().Aggregate(ctx, userId, &periodStart, &periodEnd)
	if err != nil {
		return nil, err
	}

	// GSTR-1 is due the 11th, GSTR-3B the 20th of the following month.
	dueDay := 11
	if req.FilingType == "GSTR3B" {
		dueDay = 20
	}
	dueDate := time.Date(periodEnd.Year(), periodEnd.Month(), dueDay, 23, 59, 59, 0, time.UTC)

	status := entity.FilingStatusPending
	if time.Now().After(dueDate) {
		status = entity.FilingStatusLate
	}

	now := time.Now()
	filing := &entity.GstFiling{
		Id:         uuid.New(),
		UserId:     userId,
		FilingType: req.FilingType,
		Period:     req.Period,
		TotalSales: agg.TotalRevenue,
		TotalTax:   agg.TotalGst,
		Status:     status,
		DueDate:    &dueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uow.GstFilingRepository().UpsertForPeriod(ctx, filing); err != nil {
		return nil, err
	}
	return toFilingResponse(filing), nil
}

func (s *gstService) ListFilings(ctx context.Context, userId uuid.UUID) ([]*dto.FilingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filings, err := uow.GstFilingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "period", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.FilingResponse, 0, len(filings))
	for _, filing := range filings {
		res = append(res, toFilingResponse(filing))
	}
	return res, nil
}

func (s *gstService) MarkFiled(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.FilingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filing, err := uow.GstFilingRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if filing == nil {
		return nil, errors.New("filing not found")
	}

	now := time.Now()
	ref := "ARN" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
	filing.Status = entity.FilingStatusFiled
	filing.FiledAt = &now
	filing.ReferenceNumber = &ref
	filing.UpdatedAt = now
	if err := uow.GstFilingRepository().Update(ctx, filing); err != nil {
		return nil, err
	}
	return toFilingResponse(filing), nil
}

// ComplianceStatus summarizes the user's filing position: registration,
// per-status filing counts and the nearest unfiled due date.
func (s *gstService) ComplianceStatus(ctx context.Context, userId uuid.UUID) (*dto.ComplianceStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	res := &dto.ComplianceStatusResponse{}

	profile, err := uow.BusinessProfileRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, err
	}
	if profile != nil && profile.GstNumber != nil && *profile.GstNumber != "" {
		res.GstRegistered = true
		res.Gstin = *profile.GstNumber
	}

	filings, err := uow.GstFilingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	for _, filing := range filings {
		switch filing.Status {
		case entity.FilingStatusFiled:
			res.FiledFilings++
		case entity.FilingStatusLate:
			res.LateFilings++
		default:
			res.PendingFilings++
		}
		if filing.Status != entity.FilingStatusFiled && filing.DueDate != nil {
			if res.NextDueDate == nil || filing.DueDate.Before(*res.NextDueDate) {
				res.NextDueDate = filing.DueDate
			}
		}
	}

	return res, nil
}

func toFilingResponse(filing *entity.GstFiling) *dto.FilingResponse {
	return &dto.FilingResponse{
		Id:              filing.Id,
		FilingType:      filing.FilingType,
		Period:          filing.Period,
		TotalSales:      filing.TotalSales,
		TotalTax:        filing.TotalTax,
		Status:          string(filing.Status),
		DueDate:         filing.DueDate,
		FiledAt:         filing.FiledAt,
		ReferenceNumber: filing.ReferenceNumber,
	}
}
