package entity

import (
	"time"

	"github.com/google/uuid"
)

type FilingStatus string

const (
	FilingStatusPending FilingStatus = "pending"
	FilingStatusFiled   FilingStatus = "filed"
	FilingStatusLate    FilingStatus = "late"
)

type GstFiling struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	FilingType string // GSTR1, GSTR3B
	Period     string // e.g. "2024-01"
	TotalSales float64
	TotalTax   float64
	Status     FilingStatus
	DueDate    *time.Time
	FiledAt    *time.Time
	// ReferenceNumber is the acknowledgment number assigned when the
	// return is marked filed.
	ReferenceNumber *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
