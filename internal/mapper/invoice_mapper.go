package mapper

import (
	"encoding/json"

	"smartbiz-be/internal/entity"
	"smartbiz-be/internal/model"
)

type InvoiceMapper struct{}

func NewInvoiceMapper() *InvoiceMapper {
	return &InvoiceMapper{}
}

func (m *InvoiceMapper) ToEntity(inv *model.Invoice) *entity.Invoice {
	if inv == nil {
		return nil
	}

	var items []entity.InvoiceItem
	if len(inv.Items) > 0 {
		_ = json.Unmarshal(inv.Items, &items)
	}

	return &entity.Invoice{
		Id:            inv.Id,
		UserId:        inv.UserId,
		CustomerId:    inv.CustomerId,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		CustomerGst:   inv.CustomerGst,
		Items:         items,
		Subtotal:      inv.Subtotal,
		GstRate:       inv.GstRate,
		GstAmount:     inv.GstAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        entity.InvoiceStatus(inv.Status),
		DueDate:       inv.DueDate,
		PdfPath:       inv.PdfPath,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (m *InvoiceMapper) ToModel(inv *entity.Invoice) *model.Invoice {
	if inv == nil {
		return nil
	}

	items, _ := json.Marshal(inv.Items)

	return &model.Invoice{
		Id:            inv.Id,
		UserId:        inv.UserId,
		CustomerId:    inv.CustomerId,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		CustomerGst:   inv.CustomerGst,
		Items:         items,
		Subtotal:      inv.Subtotal,
		GstRate:       inv.GstRate,
		GstAmount:     inv.GstAmount,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		DueDate:       inv.DueDate,
		PdfPath:       inv.PdfPath,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func (m *InvoiceMapper) ToEntities(invoices []*model.Invoice) []*entity.Invoice {
	entities := make([]*entity.Invoice, len(invoices))
	for i, inv := range invoices {
		entities[i] = m.ToEntity(inv)
	}
	return entities
}
