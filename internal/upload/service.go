package upload

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/invoice-extractor/internal/invoice"
	"github.com/zombor/invoice-extractor/internal/scanning"
)

// SheetReader reads spreadsheet rows from a staged file
type SheetReader interface {
	ReadRows(path string) ([]invoice.Row, error)
}

// IDGenerator generates request IDs for log correlation
type IDGenerator interface {
	Generate() string
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

// Service stages uploads and routes them to the spreadsheet or document path
type Service struct {
	storage     Storage
	scanner     scanning.Scanner
	sheets      SheetReader
	idGenerator IDGenerator
}

// NewService creates a new Service with a UUID request ID generator
func NewService(storage Storage, scanner scanning.Scanner, sheets SheetReader) *Service {
	return NewServiceWithDeps(storage, scanner, sheets, uuidGenerator{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(storage Storage, scanner scanning.Scanner, sheets SheetReader, idGen IDGenerator) *Service {
	return &Service{
		storage:     storage,
		scanner:     scanner,
		sheets:      sheets,
		idGenerator: idGen,
	}
}

// IsSpreadsheet reports whether filename has an .xlsx or .xls extension
func IsSpreadsheet(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// Extract stages the upload and extracts its tables. Spreadsheets are parsed
// locally; every other file goes to the scanner with contentType as the
// MIME hint.
func (s *Service) Extract(ctx context.Context, filename string, data []byte, contentType string) (*invoice.Extraction, error) {
	start := time.Now()
	logger := slog.With("request_id", s.idGenerator.Generate(), "filename", filename)

	staged, err := s.storage.Save(filename, data)
	if err != nil {
		return nil, &invoice.UpstreamError{Source: "storage", Err: fmt.Errorf("saving file: %w", err)}
	}

	var (
		ext   *invoice.Extraction
		route string
	)
	if IsSpreadsheet(filename) {
		route = "spreadsheet"
		ext, err = s.extractSpreadsheet(staged)
	} else {
		route = "document"
		ext, err = s.extractDocument(ctx, staged, contentType)
	}
	if err != nil {
		logger.Error("Extraction failed", "route", route, "content_type", contentType, "file_size", len(data), "error", err)
		return nil, err
	}

	logger.Info("Extraction complete",
		"route", route,
		"invoices", len(ext.Invoices),
		"products", len(ext.Products),
		"customers", len(ext.Customers),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return ext, nil
}

func (s *Service) extractSpreadsheet(staged string) (*invoice.Extraction, error) {
	rows, err := s.sheets.ReadRows(s.storage.Path(staged))
	if err != nil {
		return nil, fmt.Errorf("reading spreadsheet: %w", err)
	}
	return invoice.MapRows(rows), nil
}

func (s *Service) extractDocument(ctx context.Context, staged, contentType string) (*invoice.Extraction, error) {
	data, err := s.storage.Get(staged)
	if err != nil {
		return nil, &invoice.UpstreamError{Source: "storage", Err: err}
	}

	ext, err := s.scanner.ScanInvoice(ctx, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return ext.Clean(), nil
}
