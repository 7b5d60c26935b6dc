package scanning

import (
	"context"

	"github.com/zombor/invoice-extractor/internal/invoice"
)

// Scanner defines the interface for document extraction
type Scanner interface {
	// ScanInvoice sends a PDF or image to the AI service and returns the
	// normalized tables extracted from it
	ScanInvoice(ctx context.Context, data []byte, contentType string) (*invoice.Extraction, error)
	// Close closes the scanner and releases resources
	Close() error
}
