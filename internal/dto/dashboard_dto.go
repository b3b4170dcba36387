package dto

type DashboardResponse struct {
	Month               string           `json:"month"`
	TotalInvoices       int64            `json:"total_invoices"`
	TotalRevenue        float64          `json:"total_revenue"`
	TotalGstCollected   float64          `json:"total_gst_collected"`
	InvoicesByStatus    map[string]int64 `json:"invoices_by_status"`
	CustomerCount       int64            `json:"customer_count"`
	PaymentRate         float64          `json:"payment_rate"`
	PendingFilings      int64            `json:"pending_filings"`
	UnreadNotifications int64            `json:"unread_notifications"`
}

type RevenuePointDTO struct {
	Date         string  `json:"date"` // YYYY-MM-DD
	Revenue      float64 `json:"revenue"`
	InvoiceCount int     `json:"invoice_count"`
}

type RevenueChartResponse struct {
	Month  string            `json:"month"`
	Points []RevenuePointDTO `json:"points"`
}
