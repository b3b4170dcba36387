package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/events"
	pktNats "smartbiz-be/pkg/nats"
)

const (
	defaultGstRate = 18.0
	// numberingRetries bounds how often a create retries after losing a
	// race on the (user_id, invoice_number) unique index.
	numberingRetries = 3
)

type IInvoiceService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListInvoicesRequest) (*dto.ListInvoicesResponse, error)
	UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	DeleteByNumberSuffix(ctx context.Context, userId uuid.UUID, digits string) (*entity.Invoice, error)
	DeleteAll(ctx context.Context, userId uuid.UUID) (int64, error)
	SetPdfPath(ctx context.Context, userId uuid.UUID, id uuid.UUID, path string) error
}

type invoiceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher

	// userLocks serializes invoice creation per user so sequence numbers
	// stay gap-free within one process; the unique index covers races
	// across processes.
	userLocks sync.Map
}

func NewInvoiceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IInvoiceService {
	return &invoiceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *invoiceService) lockFor(userId uuid.UUID) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userId, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *invoiceService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	mu := s.lockFor(userId)
	mu.Lock()
	defer mu.Unlock()

	var invoice *entity.Invoice
	var err error
	for attempt := 0; attempt < numberingRetries; attempt++ {
		invoice, err = s.createOnce(ctx, userId, req)
		if err == nil {
			break
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, userId, invoice)

	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) createOnce(ctx context.Context, userId uuid.UUID, req *dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	year := now.Year()

	seq, err := uow.InvoiceRepository().MaxSequenceForYear(ctx, userId, year)
	if err != nil {
		return nil, err
	}

	subtotal, items := resolveItems(req)
	gstRate := defaultGstRate
	if req.GstRate != nil {
		gstRate = *req.GstRate
	}
	gstAmount := round2(subtotal * gstRate / 100)
	total := round2(subtotal + gstAmount)

	// Link the customer record when one matches, creating it on first use.
	var customerId *uuid.UUID
	customer, err := uow.CustomerRepository().FindByNameLike(ctx, userId, req.CustomerName)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		customer = &entity.Customer{
			Id:        uuid.New(),
			UserId:    userId,
			Name:      req.CustomerName,
			GstNumber: req.CustomerGst,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
			return nil, err
		}
	}
	customerId = &customer.Id

	invoice := &entity.Invoice{
		Id:            uuid.New(),
		UserId:        userId,
		CustomerId:    customerId,
		InvoiceNumber: fmt.Sprintf("INV-%d-%04d", year, seq+1),
		CustomerName:  req.CustomerName,
		CustomerGst:   req.CustomerGst,
		Items:         items,
		Subtotal:      subtotal,
		GstRate:       gstRate,
		GstAmount:     gstAmount,
		TotalAmount:   total,
		Status:        entity.InvoiceStatusDraft,
		DueDate:       req.DueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uow.InvoiceRepository().Create(ctx, invoice); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) publishCreated(ctx context.Context, userId uuid.UUID, invoice *entity.Invoice) {
	// Queue async PDF rendering.
	msgPayload := dto.PublishInvoicePdfMessage{
		InvoiceId: invoice.Id,
		UserId:    userId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			fmt.Printf("[WARN] Failed to queue invoice pdf rendering: %v\n", err)
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewInvoiceCreatedEvent(userId.String(), invoice.Id.String(), invoice.InvoiceNumber, invoice.TotalAmount)
		// Notification fan-out is auxiliary, the invoice is already committed.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish INVOICE_CREATED event: %v\n", err)
		}
	}
}

func (s *invoiceService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) List(ctx context.Context, userId uuid.UUID, req *dto.ListInvoicesRequest) (*dto.ListInvoicesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if req.Status != "" {
		specs = append(specs, specification.ByStatus{Status: req.Status})
	}
	if req.Customer != "" {
		specs = append(specs, specification.InvoiceCustomerLike{Name: req.Customer})
	}
	if req.Month != "" {
		if t, err := time.Parse("2006-01", req.Month); err == nil {
			specs = append(specs, specification.CreatedInMonth{Year: t.Year(), Month: t.Month()})
		}
	}

	total, err := uow.InvoiceRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	invoices, err := uow.InvoiceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.InvoiceResponse, 0, len(invoices))
	var totalValue float64
	for _, invoice := range invoices {
		res = append(res, toInvoiceResponse(invoice))
		totalValue += invoice.TotalAmount
	}

	return &dto.ListInvoicesResponse{
		Invoices:   res,
		TotalCount: total,
		TotalValue: round2(totalValue),
	}, nil
}

func (s *invoiceService) UpdateStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}

	invoice.Status = entity.InvoiceStatus(req.Status)
	invoice.UpdatedAt = time.Now()
	if err := uow.InvoiceRepository().Update(ctx, invoice); err != nil {
		return nil, err
	}
	return toInvoiceResponse(invoice), nil
}

func (s *invoiceService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if invoice == nil {
		return errors.New("invoice not found")
	}
	return uow.InvoiceRepository().Delete(ctx, id)
}

// DeleteByNumberSuffix removes the single invoice whose number ends with the
// digits the user typed, returning the deleted invoice.
func (s *invoiceService) DeleteByNumberSuffix(ctx context.Context, userId uuid.UUID, digits string) (*entity.Invoice, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByInvoiceNumberSuffix{Digits: digits},
	)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	if err := uow.InvoiceRepository().Delete(ctx, invoice.Id); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) DeleteAll(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.InvoiceRepository().DeleteAllByUserId(ctx, userId)
}

func (s *invoiceService) SetPdfPath(ctx context.Context, userId uuid.UUID, id uuid.UUID, path string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	invoice, err := uow.InvoiceRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if invoice == nil {
		return errors.New("invoice not found")
	}
	invoice.PdfPath = &path
	invoice.UpdatedAt = time.Now()
	return uow.InvoiceRepository().Update(ctx, invoice)
}

func resolveItems(req *dto.CreateInvoiceRequest) (float64, []entity.InvoiceItem) {
	if len(req.Items) == 0 {
		item := entity.InvoiceItem{
			Description: "Goods/Services",
			Quantity:    1,
			UnitPrice:   req.Amount,
			Amount:      req.Amount,
		}
		return req.Amount, []entity.InvoiceItem{item}
	}

	var subtotal float64
	items := make([]entity.InvoiceItem, 0, len(req.Items))
	for _, it := range req.Items {
		amount := round2(it.Quantity * it.UnitPrice)
		items = append(items, entity.InvoiceItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Amount:      amount,
		})
		subtotal += amount
	}
	return round2(subtotal), items
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func toInvoiceResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		Id:            invoice.Id,
		InvoiceNumber: invoice.InvoiceNumber,
		CustomerName:  invoice.CustomerName,
		CustomerGst:   invoice.CustomerGst,
		Subtotal:      invoice.Subtotal,
		GstRate:       invoice.GstRate,
		GstAmount:     invoice.GstAmount,
		TotalAmount:   invoice.TotalAmount,
		Status:        string(invoice.Status),
		DueDate:       invoice.DueDate,
		PdfPath:       invoice.PdfPath,
		CreatedAt:     invoice.CreatedAt,
	}
}
