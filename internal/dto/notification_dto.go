package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id        uuid.UUID              `json:"id"`
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	UnreadCount   int64                   `json:"unread_count"`
}

// PublishInvoicePdfMessage is the internal queue payload for async PDF
// rendering after an invoice is created.
type PublishInvoicePdfMessage struct {
	InvoiceId uuid.UUID `json:"invoice_id"`
	UserId    uuid.UUID `json:"user_id"`
}
