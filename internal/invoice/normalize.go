package invoice

// Normalize fills in the products and customers tables when the source did
// not supply them, deriving both from the invoice lines. A table that is
// present, even partially, is passed through untouched. The result is
// always cleaned.
func Normalize(e *Extraction) *Extraction {
	if e == nil {
		e = &Extraction{}
	}

	if len(e.Invoices) > 0 && len(e.Products) == 0 {
		e.Products = deriveProducts(e.Invoices)
	}
	if len(e.Invoices) > 0 && len(e.Customers) == 0 {
		e.Customers = deriveCustomers(e.Invoices)
	}

	return e.Clean()
}

// deriveProducts groups lines by product name in first-seen order. The tax
// of the first line in each group wins; unitPrice is left at 0.
func deriveProducts(lines []InvoiceLine) []Product {
	products := make([]Product, 0)
	index := make(map[string]int)

	for _, line := range lines {
		name := line.ProductName
		if name == "" {
			name = DefaultProductName
		}

		i, ok := index[name]
		if !ok {
			i = len(products)
			index[name] = i
			products = append(products, Product{Name: name, Tax: line.Tax})
		}
		products[i].Quantity += line.Quantity
		products[i].PriceWithTax += line.TotalAmount
	}
	return products
}

// deriveCustomers groups lines by customer name in first-seen order
func deriveCustomers(lines []InvoiceLine) []Customer {
	customers := make([]Customer, 0)
	index := make(map[string]int)

	for _, line := range lines {
		name := DefaultCustomerName
		if line.CustomerName != nil && *line.CustomerName != "" {
			name = *line.CustomerName
		}

		i, ok := index[name]
		if !ok {
			i = len(customers)
			index[name] = i
			customers = append(customers, Customer{Name: name})
		}
		customers[i].TotalPurchaseAmount += line.TotalAmount
	}
	return customers
}
