package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartbiz-be/internal/dto"
	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/pkg/logger"
	"smartbiz-be/internal/repository/specification"
	"smartbiz-be/internal/repository/unitofwork"
	"smartbiz-be/pkg/events"
	pktNats "smartbiz-be/pkg/nats"
)

// NotificationDelivery pushes real-time updates, typically the WebSocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification *dto.NotificationResponse)
}

// notificationTemplates maps an event type to its rendered title/message.
// Payload keys appear as {key} placeholders.
var notificationTemplates = map[string][2]string{
	entity.NotificationTypeInvoiceCreated: {"Invoice created", "Invoice {invoice_number} for ₹{total_amount} is ready."},
	entity.NotificationTypePdfReady:       {"Invoice PDF ready", "The PDF for invoice {invoice_number} is ready to download."},
	entity.NotificationTypeFilingDue:      {"GST filing due", "Your {filing_type} return for {period} is due on {due_date}."},
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userId uuid.UUID, limit int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userId, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	subscriber *pktNats.Subscriber,
	delivery NotificationDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber configured, notifications disabled", nil)
		return
	}
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	typeCode := strings.TrimPrefix(event.EventType(), "events.")

	template, ok := notificationTemplates[typeCode]
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("No template for event code: '%s'", typeCode), nil)
		return nil
	}

	payload := event.Payload()
	uidStr, ok := payload["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s carries no user_id", typeCode), nil)
		return nil
	}
	userId, err := uuid.Parse(uidStr)
	if err != nil {
		return nil
	}

	notif := &entity.Notification{
		Id:        uuid.New(),
		UserId:    userId,
		TypeCode:  typeCode,
		Title:     template[0],
		Message:   renderTemplate(template[1], payload),
		Metadata:  payload,
		CreatedAt: time.Now(),
	}
	if entityStr, ok := payload["invoice_id"].(string); ok {
		if eid, err := uuid.Parse(entityStr); err == nil {
			notif.EntityType = "invoice"
			notif.EntityId = &eid
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		s.logger.Error("NotificationService", "Failed to save notification", map[string]interface{}{"error": err})
		return err // the broker retries
	}

	if s.delivery != nil {
		s.delivery.Send(userId, toNotificationResponse(notif))
	}
	return nil
}

func renderTemplate(template string, payload map[string]interface{}) string {
	msg := template
	for k, v := range payload {
		msg = strings.ReplaceAll(msg, "{"+k+"}", fmt.Sprintf("%v", v))
	}
	return msg
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifs, err := uow.NotificationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	)
	if err != nil {
		return nil, err
	}

	unread, err := uow.NotificationRepository().CountUnread(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.NotificationResponse, 0, len(notifs))
	for _, n := range notifs {
		res = append(res, toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{Notifications: res, UnreadCount: unread}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, userId, id)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllRead(ctx, userId)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		Id:        n.Id,
		TypeCode:  n.TypeCode,
		Title:     n.Title,
		Message:   n.Message,
		Metadata:  n.Metadata,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
