package invoice

import (
	"encoding/json"
	"math"
)

// CleanValue walks maps and slices and replaces every NaN or infinite float
// leaf with 0. json.Number leaves become float64, with out-of-range values
// also yielding 0. Other leaves are returned unchanged.
func CleanValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = CleanValue(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = CleanValue(val)
		}
		return out
	case float64:
		return finite(t)
	case json.Number:
		return SanitizeNumber(t)
	case float32:
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return float32(0)
		}
		return t
	default:
		return v
	}
}

// Clean zeroes every non-finite number in the extraction and replaces nil
// tables with empty ones so the payload always encodes as three arrays.
func (e *Extraction) Clean() *Extraction {
	if e.Invoices == nil {
		e.Invoices = []InvoiceLine{}
	}
	if e.Products == nil {
		e.Products = []Product{}
	}
	if e.Customers == nil {
		e.Customers = []Customer{}
	}

	for i := range e.Invoices {
		line := &e.Invoices[i]
		line.Quantity = finite(line.Quantity)
		line.Tax = finite(line.Tax)
		line.TotalAmount = finite(line.TotalAmount)
	}
	for i := range e.Products {
		p := &e.Products[i]
		p.Quantity = finite(p.Quantity)
		p.UnitPrice = finite(p.UnitPrice)
		p.Tax = finite(p.Tax)
		p.PriceWithTax = finite(p.PriceWithTax)
	}
	for i := range e.Customers {
		c := &e.Customers[i]
		c.TotalPurchaseAmount = finite(c.TotalPurchaseAmount)
	}
	return e
}
