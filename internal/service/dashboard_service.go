package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
)

type IDashboardService interface {
	// Summary aggregates the current calendar month.
	Summary(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error)
	// SummaryForMonth aggregates a specific "YYYY-MM" month.
	SummaryForMonth(ctx context.Context, userId uuid.UUID, month string) (*dto.DashboardResponse, error)
	// RevenueChart buckets a month's invoices into a per-day revenue series.
	RevenueChart(ctx context.Context, userId uuid.UUID, month string) (*dto.RevenueChartResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
	}
}

func (s *dashboardService) Summary(ctx context.Context, userId uuid.UUID) (*dto.DashboardResponse, error) {
	now := time.Now()
	return s.SummaryForMonth(ctx, userId, now.Format("2006-01"))
}

func (s *dashboardService) SummaryForMonth(ctx context.Context, userId uuid.UUID, month string) (*dto.DashboardResponse, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		start = time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
		month = start.Format("2006-01")
	}
	end := start.AddDate(0, 1, 0)

	uow := s.uowFactory.NewUnitOfWork(ctx)

	agg, err := uow.InvoiceRepository().Aggregate(ctx, userId, &start, &end)
	if err != nil {
		return nil, err
	}

	pendingFilings := int64(0)
	filings, err := uow.GstFilingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	for _, filing := range filings {
		if filing.Status != entity.FilingStatusFiled {
			pendingFilings++
		}
	}

	unread, err := uow.NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}

	paymentRate := 0.0
	if agg.Count > 0 {
		paymentRate = float64(agg.CountByStatus[string(entity.InvoiceStatusPaid)]) / float64(agg.Count) * 100
	}

	return &dto.DashboardResponse{
		Month:               month,
		TotalInvoices:       agg.Count,
		TotalRevenue:        agg.TotalRevenue,
		TotalGstCollected:   agg.TotalGst,
		InvoicesByStatus:    agg.CountByStatus,
		CustomerCount:       agg.CustomerCount,
		PaymentRate:         paymentRate,
		PendingFilings:      pendingFilings,
		UnreadNotifications: unread,
	}, nil
}

func (s *dashboardService) RevenueChart(ctx context.Context, userId uuid.UUID, month string) (*dto.RevenueChartResponse, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		now := time.Now()
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		month = start.Format("2006-01")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoices, err := uow.InvoiceRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.CreatedInMonth{Year: start.Year(), Month: start.Month()},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*dto.RevenuePointDTO)
	for _, inv := range invoices {
		day := inv.CreatedAt.Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &dto.RevenuePointDTO{Date: day}
			byDay[day] = point
		}
		point.Revenue += inv.TotalAmount
		point.InvoiceCount++
	}

	daysInMonth := start.AddDate(0, 1, -1).Day()
	points := make([]dto.RevenuePointDTO, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		day := time.Date(start.Year(), start.Month(), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if point, ok := byDay[day]; ok {
			points = append(points, *point)
		} else {
			points = append(points, dto.RevenuePointDTO{Date: day})
		}
	}

	return &dto.RevenueChartResponse{Month: month, Points: points}, nil
}
