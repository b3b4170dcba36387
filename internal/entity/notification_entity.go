package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeInvoiceCreated = "INVOICE_CREATED"
	NotificationTypePdfReady       = "INVOICE_PDF_READY"
	NotificationTypeFilingDue      = "GST_FILING_DUE"
)

type Notification struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	TypeCode   string
	EntityType string
	EntityId   *uuid.UUID
	Title      string
	Message    string
	Metadata   map[string]interface{}
	IsRead     bool
	ReadAt     *time.Time
	CreatedAt  time.Time
}
