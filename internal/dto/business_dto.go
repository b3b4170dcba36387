package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertBusinessProfileRequest struct {
	BusinessName string  `json:"business_name" validate:"required"`
	BusinessType string  `json:"business_type"`
	GstNumber    *string `json:"gst_number,omitempty"`
	UdyamNumber  *string `json:"udyam_number,omitempty"`
	Address      string  `json:"address"`
	State        string  `json:"state"`
	Pincode      string  `json:"pincode"`
}

type BusinessProfileResponse struct {
	Id           uuid.UUID `json:"id"`
	BusinessName string    `json:"business_name"`
	BusinessType string    `json:"business_type"`
	GstNumber    *string   `json:"gst_number,omitempty"`
	UdyamNumber  *string   `json:"udyam_number,omitempty"`
	Address      string    `json:"address"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
