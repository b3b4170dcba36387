package dto

import (
	"time"

	"github.com/google/uuid"
)

type VerifyGstinResponse struct {
	Gstin            string `json:"gstin"`
	Valid            bool   `json:"valid"`
	LegalName        string `json:"legal_name,omitempty"`
	TradeName        string `json:"trade_name,omitempty"`
	State            string `json:"state,omitempty"`
	Status           string `json:"status,omitempty"`
	TaxpayerType     string `json:"taxpayer_type,omitempty"`
	RegistrationDate string `json:"registration_date,omitempty"`
	// Pending is set when the registry could not be reached and the
	// verification should be retried later.
	Pending bool `json:"pending,omitempty"`
}

type PrepareFilingRequest struct {
	FilingType string `json:"filing_type" validate:"required,oneof=GSTR1 GSTR3B"`
	// Period is the tax period in "YYYY-MM".
	Period string `json:"period" validate:"required,len=7"`
}

type FilingResponse struct {
	Id              uuid.UUID  `json:"id"`
	FilingType      string     `json:"filing_type"`
	Period          string     `json:"period"`
	TotalSales      float64    `json:"total_sales"`
	TotalTax        float64    `json:"total_tax"`
	Status          string     `json:"status"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	FiledAt         *time.Time `json:"filed_at,omitempty"`
	ReferenceNumber *string    `json:"reference_number,omitempty"`
}

type MarkFiledRequest struct {
	Id uuid.UUID
}

type ComplianceStatusResponse struct {
	GstRegistered  bool       `json:"gst_registered"`
	Gstin          string     `json:"gstin,omitempty"`
	PendingFilings int        `json:"pending_filings"`
	LateFilings    int        `json:"late_filings"`
	FiledFilings   int        `json:"filed_filings"`
	NextDueDate    *time.Time `json:"next_due_date,omitempty"`
}
