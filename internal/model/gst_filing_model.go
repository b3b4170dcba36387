package model

import (
	"time"

	"github.com/google/uuid"
)

type GstFiling struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_gst_filings_user_period,priority:1"`
	FilingType      string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_gst_filings_user_period,priority:2"`
	Period          string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_gst_filings_user_period,priority:3"`
	TotalSales      float64   `gorm:"type:numeric(14,2);not null;default:0"`
	TotalTax        float64   `gorm:"type:numeric(14,2);not null;default:0"`
	Status          string    `gorm:"type:filing_status;not null;default:'pending'"`
	DueDate         *time.Time
	FiledAt         *time.Time
	ReferenceNumber *string   `gorm:"type:varchar(30)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (GstFiling) TableName() string {
	return "gst_filings"
}
