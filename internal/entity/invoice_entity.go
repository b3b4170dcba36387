package entity

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	CustomerId    *uuid.UUID
	InvoiceNumber string
	CustomerName  string
	CustomerGst   *string
	Items         []InvoiceItem
	Subtotal      float64
	GstRate       float64
	GstAmount     float64
	TotalAmount   float64
	Status        InvoiceStatus
	DueDate       *time.Time
	PdfPath       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
