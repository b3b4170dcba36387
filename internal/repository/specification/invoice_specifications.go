package specification

import (
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type ByInvoiceNumber struct {
	Number string
}

func (s ByInvoiceNumber) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invoice_number = ?", s.Number)
}

// ByInvoiceNumberSuffix matches the digits a user typed ("INV-42", "#42")
// against the tail of the stored number. Plain digits are zero-padded to
// the stored sequence width so "42" matches only "-0042", not "-0142".
type ByInvoiceNumberSuffix struct {
	Digits string
}

func (s ByInvoiceNumberSuffix) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invoice_number LIKE ?", s.pattern())
}

func (s ByInvoiceNumberSuffix) pattern() string {
	if n, err := strconv.Atoi(s.Digits); err == nil {
		return fmt.Sprintf("%%-%04d", n)
	}
	return "%" + s.Digits
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// CreatedInMonth filters rows created within the given calendar month.
type CreatedInMonth struct {
	Year  int
	Month time.Month
}

func (s CreatedInMonth) Apply(db *gorm.DB) *gorm.DB {
	start := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return db.Where("created_at >= ? AND created_at < ?", start, end)
}

// InvoiceCustomerLike is a case-insensitive partial match on the name
// denormalized onto the invoice row.
type InvoiceCustomerLike struct {
	Name string
}

func (s InvoiceCustomerLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_name ILIKE ?", "%"+s.Name+"%")
}

// CustomerNameLike is a case-insensitive partial match on customer name.
type CustomerNameLike struct {
	Name string
}

func (s CustomerNameLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name ILIKE ?", "%"+s.Name+"%")
}
