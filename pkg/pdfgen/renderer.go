package pdfgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// InvoiceDocument is the payload handed to the external renderer service.
type InvoiceDocument struct {
	InvoiceNumber string  `json:"invoice_number"`
	BusinessName  string  `json:"business_name"`
	CustomerName  string  `json:"customer_name"`
	Subtotal      float64 `json:"subtotal"`
	GstRate       float64 `json:"gst_rate"`
	GstAmount     float64 `json:"gst_amount"`
	TotalAmount   float64 `json:"total_amount"`
	IssuedOn      string  `json:"issued_on"`
}

type Renderer interface {
	// RenderInvoice submits the document and returns the stored PDF path.
	RenderInvoice(ctx context.Context, doc *InvoiceDocument) (string, error)
}

type renderer struct {
	baseURL string
	http    *http.Client
}

func NewRenderer(baseURL string) Renderer {
	return &renderer{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *renderer) RenderInvoice(ctx context.Context, doc *InvoiceDocument) (string, error) {
	if r.baseURL == "" {
		return "", fmt.Errorf("pdf renderer not configured")
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/render/invoice", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var out struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(bodyBytes, &out); err != nil {
		return "", fmt.Errorf("failed to decode renderer response: %w", err)
	}
	return out.Path, nil
}
