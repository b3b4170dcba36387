package dto

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceItemDTO struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	CustomerName string           `json:"customer_name" validate:"required"`
	CustomerGst  *string          `json:"customer_gst,omitempty"`
	Items        []InvoiceItemDTO `json:"items,omitempty"`
	// Amount is the subtotal shortcut used when no item lines are given.
	Amount  float64    `json:"amount" validate:"gte=0"`
	GstRate *float64   `json:"gst_rate,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type InvoiceResponse struct {
	Id            uuid.UUID  `json:"id"`
	InvoiceNumber string     `json:"invoice_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerGst   *string    `json:"customer_gst,omitempty"`
	Subtotal      float64    `json:"subtotal"`
	GstRate       float64    `json:"gst_rate"`
	GstAmount     float64    `json:"gst_amount"`
	TotalAmount   float64    `json:"total_amount"`
	Status        string     `json:"status"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	PdfPath       *string    `json:"pdf_path,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type ListInvoicesRequest struct {
	Status   string `query:"status"`
	Customer string `query:"customer"`
	// Month filters invoices issued in "YYYY-MM".
	Month string `query:"month"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

type ListInvoicesResponse struct {
	Invoices   []*InvoiceResponse `json:"invoices"`
	TotalCount int64              `json:"total_count"`
	TotalValue float64            `json:"total_value"`
}

type UpdateInvoiceStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=draft sent paid cancelled"`
}

type DeleteAllInvoicesResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}
