package invoice

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("MapRows", func() {
	var (
		rows   []Row
		result *Extraction
	)

	JustBeforeEach(func() {
		result = MapRows(rows)
	})

	When("mapping a single row", func() {
		BeforeEach(func() {
			rows = []Row{{"Party Name": "Bob", "Total Amount": "1,200.50", "Tax Amount": 60}}
		})

		It("produces one invoice total line", func() {
			Expect(result.Invoices).To(HaveLen(1))
			line := result.Invoices[0]
			Expect(line.TotalAmount).To(Equal(1200.5))
			Expect(line.Tax).To(Equal(60.0))
			Expect(line.Quantity).To(Equal(1.0))
			Expect(line.ProductName).To(Equal(SpreadsheetProductName))
			Expect(*line.CustomerName).To(Equal("Bob"))
		})

		It("produces one customer", func() {
			Expect(result.Customers).To(Equal([]Customer{{Name: "Bob", TotalPurchaseAmount: 1200.5}}))
		})

		It("leaves products empty", func() {
			Expect(result.Products).To(BeEmpty())
			Expect(result.Products).NotTo(BeNil())
		})
	})

	When("columns use the alternative names", func() {
		BeforeEach(func() {
			rows = []Row{
				{"Customer Name": "Ann", "Net Amount": "300"},
				{"Customer Name": "Ann", "Net Amount": "200", "Serial Number": "INV-2", "Date": "2024-01-02"},
			}
		})

		It("falls back to them", func() {
			Expect(result.Invoices[0].TotalAmount).To(Equal(300.0))
			Expect(*result.Invoices[1].SerialNumber).To(Equal("INV-2"))
			Expect(*result.Invoices[1].Date).To(Equal("2024-01-02"))
		})

		It("accumulates totals per customer", func() {
			Expect(result.Customers).To(Equal([]Customer{{Name: "Ann", TotalPurchaseAmount: 500}}))
		})
	})

	When("a row has a blank preferred column", func() {
		BeforeEach(func() {
			rows = []Row{{"Party Name": "  ", "Customer Name": "Zed", "Total Amount": "", "Net Amount": "12"}}
		})

		It("uses the next column", func() {
			Expect(*result.Invoices[0].CustomerName).To(Equal("Zed"))
			Expect(result.Invoices[0].TotalAmount).To(Equal(12.0))
		})
	})

	When("the preferred total is zero", func() {
		BeforeEach(func() {
			rows = []Row{
				{"Party Name": "Bob", "Total Amount": "0.00", "Net Amount": "42"},
				{"Party Name": "Bob", "Total Amount": 0, "Net Amount": 8},
				{"Party Name": "Bob", "Total Amount": "0"},
			}
		})

		It("falls back to the net amount", func() {
			Expect(result.Invoices[0].TotalAmount).To(Equal(42.0))
			Expect(result.Invoices[1].TotalAmount).To(Equal(8.0))
		})

		It("keeps zero when no fallback exists", func() {
			Expect(result.Invoices[2].TotalAmount).To(Equal(0.0))
			Expect(result.Customers).To(Equal([]Customer{{Name: "Bob", TotalPurchaseAmount: 50}}))
		})
	})

	When("a row has no customer name", func() {
		BeforeEach(func() {
			rows = []Row{
				{"Total Amount": "10"},
				{"Party Name": "Bob", "Total Amount": "5"},
			}
		})

		It("still produces an invoice line", func() {
			Expect(result.Invoices).To(HaveLen(2))
			Expect(result.Invoices[0].CustomerName).To(BeNil())
			Expect(result.Invoices[0].SerialNumber).To(BeNil())
		})

		It("does not contribute a customer", func() {
			Expect(result.Customers).To(Equal([]Customer{{Name: "Bob", TotalPurchaseAmount: 5}}))
		})
	})

	When("amounts are not numeric", func() {
		BeforeEach(func() {
			rows = []Row{{"Party Name": "Bob", "Total Amount": "n/a", "Tax Amount": "NaN"}}
		})

		It("treats them as zero", func() {
			Expect(result.Invoices[0].TotalAmount).To(Equal(0.0))
			Expect(result.Invoices[0].Tax).To(Equal(0.0))
		})
	})

	When("there are no rows", func() {
		BeforeEach(func() {
			rows = nil
		})

		It("returns empty tables", func() {
			Expect(result.Invoices).To(BeEmpty())
			Expect(result.Customers).To(BeEmpty())
		})
	})
})
