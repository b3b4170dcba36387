package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Invoice struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_invoices_user_number,priority:1"`
	CustomerId    *uuid.UUID     `gorm:"type:uuid;index"`
	InvoiceNumber string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_user_number,priority:2"`
	CustomerName  string         `gorm:"type:varchar(255);not null"`
	CustomerGst   *string        `gorm:"type:varchar(15)"`
	Items         datatypes.JSON `gorm:"type:jsonb"`
	Subtotal      float64        `gorm:"type:numeric(12,2);not null"`
	GstRate       float64        `gorm:"type:numeric(5,2);not null;default:18"`
	GstAmount     float64        `gorm:"type:numeric(12,2);not null"`
	TotalAmount   float64        `gorm:"type:numeric(12,2);not null"`
	Status        string         `gorm:"type:invoice_status;not null;default:'draft'"`
	DueDate       *time.Time
	PdfPath       *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Invoice) TableName() string {
	return "invoices"
}
