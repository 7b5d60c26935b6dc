package scanning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zombor/invoice-extractor/internal/invoice"
)

// OllamaConfig configures the Ollama scanner
type OllamaConfig struct {
	BaseURL     string
	Model       string
	// Temperature is sent as given, so zero is honoured
	Temperature float32
	// Timeout bounds a single call; zero means no timeout
	Timeout time.Duration
}

// Ollama implements the Scanner interface using a local Ollama vision model.
// Vision models only read images, so documents are converted to PNG first.
type Ollama struct {
	baseURL     string
	model       string
	temperature float32
	client      *http.Client
}

// NewOllama creates a new Ollama Scanner instance
func NewOllama(cfg OllamaConfig) (*Ollama, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llava"
	}

	return &Ollama{
		baseURL:     cfg.BaseURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		client:      &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  ollamaOptions   `json:"options"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// ScanInvoice converts the document to PNG, sends it to the chat endpoint
// and parses the tables out of the reply
func (o *Ollama) ScanInvoice(ctx context.Context, data []byte, contentType string) (*invoice.Extraction, error) {
	pngData, err := toPNG(data, contentType)
	if err != nil {
		return nil, fmt.Errorf("preparing image: %w", err)
	}

	reqBody := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{
				Role:    "system",
				Content: "You are an expert at reading invoices and extracting line items, products and customers from them.",
			},
			{
				Role:    "user",
				Content: invoicePrompt,
				Images:  []string{base64.StdEncoding.EncodeToString(pngData)},
			},
		},
		Options: ollamaOptions{Temperature: o.temperature},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, &invoice.UpstreamError{Source: "ollama", Err: fmt.Errorf("calling ollama API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, &invoice.UpstreamError{Source: "ollama", Err: fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(msg))}
	}

	var chatResp ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, &invoice.UpstreamError{Source: "ollama", Err: fmt.Errorf("decoding response: %w", err)}
	}

	ext, err := parseInvoiceResponse(chatResp.Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing invoice data: %w", err)
	}
	return ext, nil
}

// Close is a no-op for the HTTP client
func (o *Ollama) Close() error {
	return nil
}
