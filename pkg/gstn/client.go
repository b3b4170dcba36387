package gstn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// gstinPattern: state code, PAN, entity digit, literal Z, checksum.
var gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]$`)

// ValidGstinFormat reports whether the value is a well-formed 15-character
// GSTIN. It does not check the registry.
func ValidGstinFormat(gstin string) bool {
	return gstinPattern.MatchString(strings.ToUpper(gstin))
}

// TaxpayerInfo is the registrant detail returned by the tax authority.
type TaxpayerInfo struct {
	Gstin            string `json:"gstin"`
	LegalName        string `json:"legal_name"`
	TradeName        string `json:"trade_name"`
	State            string `json:"state"`
	RegistrationDate string `json:"registration_date"`
	Status           string `json:"status"`
	TaxpayerType     string `json:"taxpayer_type"`
}

type Client interface {
	VerifyGstin(ctx context.Context, gstin string) (*TaxpayerInfo, error)
}

type client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) Client {
	return &client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) VerifyGstin(ctx context.Context, gstin string) (*TaxpayerInfo, error) {
	url := fmt.Sprintf("%s/taxpayers/%s", c.baseURL, gstin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gstn request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gstn api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var info TaxpayerInfo
	if err := json.Unmarshal(bodyBytes, &info); err != nil {
		return nil, fmt.Errorf("failed to decode gstn response: %w", err)
	}
	return &info, nil
}
