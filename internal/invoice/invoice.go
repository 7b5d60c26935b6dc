package invoice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultProductName is used when a line item carries no product name
	DefaultProductName = "Invoice Item"
	// DefaultCustomerName is used when deriving customers from lines without a customer name
	DefaultCustomerName = "Customer"
	// SpreadsheetProductName labels lines produced from spreadsheet rows
	SpreadsheetProductName = "Invoice Total"
)

// InvoiceLine is one extracted row of purchase detail
type InvoiceLine struct {
	SerialNumber *string `json:"serialNumber"`
	Date         *string `json:"date"`
	CustomerName *string `json:"customerName"`
	ProductName  string  `json:"productName"`
	Quantity     float64 `json:"quantity"`
	Tax          float64 `json:"tax"`
	TotalAmount  float64 `json:"totalAmount"`
}

// Product is an entry of the products table, keyed by Name
type Product struct {
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	Tax          float64 `json:"tax"`
	PriceWithTax float64 `json:"priceWithTax"`
}

// Customer is an entry of the customers table, keyed by Name
type Customer struct {
	Name                string  `json:"name"`
	Phone               *string `json:"phone"`
	TotalPurchaseAmount float64 `json:"totalPurchaseAmount"`
}

// Extraction is the response payload: the three output tables
type Extraction struct {
	Invoices  []InvoiceLine `json:"invoices"`
	Products  []Product     `json:"products"`
	Customers []Customer    `json:"customers"`
}

// Row is a single spreadsheet row keyed by header name
type Row map[string]any

// UnmarshalJSON decodes a line item from model output, applying the
// productName and quantity defaults.
func (l *InvoiceLine) UnmarshalJSON(data []byte) error {
	var raw struct {
		SerialNumber any `json:"serialNumber"`
		Date         any `json:"date"`
		CustomerName any `json:"customerName"`
		ProductName  any `json:"productName"`
		Quantity     any `json:"quantity"`
		Tax          any `json:"tax"`
		TotalAmount  any `json:"totalAmount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding invoice line: %w", err)
	}

	*l = InvoiceLine{
		SerialNumber: optionalString(raw.SerialNumber),
		Date:         optionalString(raw.Date),
		CustomerName: optionalString(raw.CustomerName),
		ProductName:  DefaultProductName,
		Quantity:     1,
		Tax:          SanitizeNumber(raw.Tax),
		TotalAmount:  SanitizeNumber(raw.TotalAmount),
	}
	if name := optionalString(raw.ProductName); name != nil {
		l.ProductName = *name
	}
	if raw.Quantity != nil {
		l.Quantity = SanitizeNumber(raw.Quantity)
	}
	return nil
}

// UnmarshalJSON decodes a product, coercing numeric fields
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         any `json:"name"`
		Quantity     any `json:"quantity"`
		UnitPrice    any `json:"unitPrice"`
		Tax          any `json:"tax"`
		PriceWithTax any `json:"priceWithTax"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding product: %w", err)
	}

	*p = Product{
		Quantity:     SanitizeNumber(raw.Quantity),
		UnitPrice:    SanitizeNumber(raw.UnitPrice),
		Tax:          SanitizeNumber(raw.Tax),
		PriceWithTax: SanitizeNumber(raw.PriceWithTax),
	}
	if name := optionalString(raw.Name); name != nil {
		p.Name = *name
	}
	return nil
}

// phoneKeys lists the keys a model may use for a customer's phone number
var phoneKeys = []string{"phone", "mobile", "contact", "phoneNumber", "mobileNumber"}

// UnmarshalJSON decodes a customer. The phone is taken from the first
// non-empty of the keys in phoneKeys.
func (c *Customer) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding customer: %w", err)
	}

	*c = Customer{
		TotalPurchaseAmount: SanitizeNumber(raw["totalPurchaseAmount"]),
	}
	if name := optionalString(raw["name"]); name != nil {
		c.Name = *name
	}
	for _, key := range phoneKeys {
		if phone := optionalString(raw[key]); phone != nil {
			c.Phone = phone
			break
		}
	}
	return nil
}

// Decode converts a parsed JSON object into a typed Extraction. Non-finite
// floats are cleaned first so the object always re-encodes.
func Decode(m map[string]any) (*Extraction, error) {
	data, err := json.Marshal(CleanValue(m))
	if err != nil {
		return nil, fmt.Errorf("encoding extraction: %w", err)
	}
	var ext Extraction
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("decoding extraction: %w", err)
	}
	return &ext, nil
}

// optionalString returns nil for absent, null or blank values. Numbers are
// rendered without a trailing fraction when they are integral.
func optionalString(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = strings.TrimSpace(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		s = t.String()
	case bool:
		s = strconv.FormatBool(t)
	default:
		s = strings.TrimSpace(fmt.Sprint(t))
	}
	if s == "" {
		return nil
	}
	return &s
}
