package entity

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	GstNumber *string
	Email     *string
	Phone     *string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
