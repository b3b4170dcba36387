package entity

import (
	"time"

	"github.com/google/uuid"
)

type BusinessProfile struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	BusinessName string
	BusinessType string
	GstNumber    *string
	UdyamNumber  *string
	Address      string
	State        string
	Pincode      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
