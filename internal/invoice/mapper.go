package invoice

import (
	"strconv"
	"strings"
)

// Spreadsheet column names, checked in order
var (
	customerColumns = []string{"Party Name", "Customer Name"}
	totalColumns    = []string{"Total Amount", "Net Amount"}
)

const (
	serialColumn = "Serial Number"
	dateColumn   = "Date"
	taxColumn    = "Tax Amount"
)

// MapRows maps spreadsheet rows onto the output schema. Every row is one
// invoice total, so each produces a single line with quantity 1. Customers
// are accumulated by name; rows without a customer still produce a line.
// The products table is always empty.
func MapRows(rows []Row) *Extraction {
	e := &Extraction{
		Invoices:  make([]InvoiceLine, 0, len(rows)),
		Products:  []Product{},
		Customers: []Customer{},
	}
	index := make(map[string]int)

	for _, row := range rows {
		customer := optionalString(firstPresent(row, customerColumns...))
		total := SanitizeNumber(firstPresent(row, totalColumns...))

		e.Invoices = append(e.Invoices, InvoiceLine{
			SerialNumber: optionalString(row[serialColumn]),
			Date:         optionalString(row[dateColumn]),
			CustomerName: customer,
			ProductName:  SpreadsheetProductName,
			Quantity:     1,
			Tax:          SanitizeNumber(row[taxColumn]),
			TotalAmount:  total,
		})

		if customer == nil {
			continue
		}
		i, ok := index[*customer]
		if !ok {
			i = len(e.Customers)
			index[*customer] = i
			e.Customers = append(e.Customers, Customer{Name: *customer})
		}
		e.Customers[i].TotalPurchaseAmount += total
	}

	return e.Clean()
}

// firstPresent returns the value of the first column holding a value that
// is not blank, false or numerically zero, or nil. A zero "Total Amount"
// therefore falls back to "Net Amount".
func firstPresent(row Row, columns ...string) any {
	for _, col := range columns {
		if v := row[col]; !empty(v) {
			return v
		}
	}
	return nil
}

func empty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return true
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		return err == nil && n == 0
	default:
		return SanitizeNumber(v) == 0
	}
}
