package model

import (
	"time"

	"github.com/google/uuid"
)

type BusinessProfile struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	BusinessName string    `gorm:"type:varchar(255);not null"`
	BusinessType string    `gorm:"type:varchar(100)"`
	GstNumber    *string   `gorm:"type:varchar(15)"`
	UdyamNumber  *string   `gorm:"type:varchar(20)"`
	Address      string    `gorm:"type:text"`
	State        string    `gorm:"type:varchar(100)"`
	Pincode      string    `gorm:"type:varchar(10)"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (BusinessProfile) TableName() string {
	return "business_profiles"
}
