package udyam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Registration is the enterprise detail returned by the registration portal.
type Registration struct {
	UdyamNumber    string `json:"udyam_number"`
	EnterpriseName string `json:"enterprise_name"`
	MajorActivity  string `json:"major_activity"`
	EnterpriseType string `json:"enterprise_type"` // micro, small, medium
	State          string `json:"state"`
}

type Client interface {
	Lookup(ctx context.Context, udyamNumber string) (*Registration, error)
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

func (c *client) Lookup(ctx context.Context, udyamNumber string) (*Registration, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("udyam portal integration not configured")
	}

	url := fmt.Sprintf("%s/registrations/%s", c.baseURL, udyamNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("udyam request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("udyam api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var reg Registration
	if err := json.Unmarshal(bodyBytes, &reg); err != nil {
		return nil, fmt.Errorf("failed to decode udyam response: %w", err)
	}
	return &reg, nil
}
