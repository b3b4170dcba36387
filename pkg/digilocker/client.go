package digilocker

import (
	"context"
	"fmt"
)

// Document is a reference to a fetched government document.
type Document struct {
	DocType string `json:"doc_type"` // pan, aadhaar, gst_certificate, udyam_certificate, msme_certificate
	Name    string `json:"name"`
	URI     string `json:"uri"`
}

type Client interface {
	FetchDocument(ctx context.Context, userToken, docType string) (*Document, error)
}

type client struct{}

// NewClient returns the DigiLocker client. The upstream consent flow is not
// integrated yet, so every fetch reports that the link is pending.
func NewClient() Client {
	return &client{}
}

func (c *client) FetchDocument(ctx context.Context, userToken, docType string) (*Document, error) {
	return nil, fmt.Errorf("digilocker account not linked for document type %s", docType)
}
