package scanning

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/zombor/invoice-extractor/internal/invoice"
)

// ErrNoJSON is returned when a response holds no {...} span at all
var ErrNoJSON = errors.New("no JSON found")

// ParseError is returned when the located JSON span is malformed
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	// greedy: first "{" through the last "}"
	jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)
	// 10-digit mobile number starting with 6-9, not inside a longer run
	mobileNumber = regexp.MustCompile(`\b[6-9]\d{9}\b`)
)

// ExtractJSON parses text as a JSON object. When the text is not pure JSON
// it parses the span from the first "{" to the last "}" instead. Bare NaN
// and Infinity tokens are read as 0, and numbers are kept as json.Number so
// out-of-range literals reach the cleaner instead of failing the parse.
func ExtractJSON(text string) (map[string]any, error) {
	if data, err := decodeObject(text); err == nil && data != nil {
		return data, nil
	}

	span := jsonSpan.FindString(text)
	if span == "" {
		return nil, ErrNoJSON
	}
	data, err := decodeObject(span)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if data == nil {
		return nil, ErrNoJSON
	}
	return data, nil
}

func decodeObject(s string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(relaxNonFinite(s)))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return data, nil
}

var nonFiniteTokens = []string{"-Infinity", "Infinity", "NaN"}

// relaxNonFinite rewrites NaN, Infinity and -Infinity outside string
// literals to 0.
func relaxNonFinite(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false
	for i := 0; i < len(s); {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			i++
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			i++
			continue
		}
		if tok := nonFiniteAt(s, i); tok != "" {
			b.WriteByte('0')
			i += len(tok)
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func nonFiniteAt(s string, i int) string {
	if i > 0 && isWordByte(s[i-1]) {
		return ""
	}
	for _, tok := range nonFiniteTokens {
		if !strings.HasPrefix(s[i:], tok) {
			continue
		}
		if end := i + len(tok); end < len(s) && isWordByte(s[end]) {
			continue
		}
		return tok
	}
	return ""
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// ExtractPhone returns the first mobile number found in text
func ExtractPhone(text string) (string, bool) {
	phone := mobileNumber.FindString(text)
	return phone, phone != ""
}

// BackfillPhone assigns phone to every customer that has none. It is not
// matched per customer: with several customers in one document they all
// receive the same number.
func BackfillPhone(e *invoice.Extraction, phone string) {
	for i := range e.Customers {
		c := &e.Customers[i]
		if c.Phone == nil || *c.Phone == "" {
			p := phone
			c.Phone = &p
		}
	}
}

// parseInvoiceResponse turns raw model text into normalized tables
func parseInvoiceResponse(text string) (*invoice.Extraction, error) {
	data, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	if err := validateExtraction(data); err != nil {
		slog.Warn("Model output does not match the extraction schema", "error", err)
	}

	ext, err := invoice.Decode(data)
	if err != nil {
		return nil, err
	}

	if phone, ok := ExtractPhone(text); ok {
		BackfillPhone(ext, phone)
	}

	return invoice.Normalize(ext), nil
}
