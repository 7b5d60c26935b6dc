package invoice

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CleanValue", func() {
	var (
		input  any
		output any
	)

	JustBeforeEach(func() {
		output = CleanValue(input)
	})

	When("non-finite floats are nested at several depths", func() {
		BeforeEach(func() {
			input = map[string]any{
				"a": math.NaN(),
				"b": []any{1.5, math.Inf(1), map[string]any{"c": math.Inf(-1), "d": "text"}},
				"e": nil,
				"f": true,
				"g": 7,
			}
		})

		It("replaces them with zero", func() {
			m := output.(map[string]any)
			Expect(m["a"]).To(Equal(0.0))
			list := m["b"].([]any)
			Expect(list[0]).To(Equal(1.5))
			Expect(list[1]).To(Equal(0.0))
			Expect(list[2].(map[string]any)["c"]).To(Equal(0.0))
		})

		It("leaves other leaves unchanged", func() {
			m := output.(map[string]any)
			Expect(m["b"].([]any)[2].(map[string]any)["d"]).To(Equal("text"))
			Expect(m).To(HaveKeyWithValue("e", BeNil()))
			Expect(m["f"]).To(Equal(true))
			Expect(m["g"]).To(Equal(7))
		})

		It("serializes without error", func() {
			data, err := json.Marshal(output)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).NotTo(ContainSubstring("NaN"))
			Expect(string(data)).NotTo(ContainSubstring("Inf"))
		})
	})

	When("a float32 leaf is infinite", func() {
		BeforeEach(func() {
			input = []any{float32(math.Inf(1)), float32(2)}
		})

		It("zeroes it and keeps the type", func() {
			Expect(output).To(Equal([]any{float32(0), float32(2)}))
		})
	})

	When("numbers were decoded as json.Number", func() {
		BeforeEach(func() {
			input = map[string]any{"a": json.Number("12.5"), "b": []any{json.Number("1e400"), json.Number("-1e400")}}
		})

		It("converts them to finite floats", func() {
			Expect(output).To(Equal(map[string]any{"a": 12.5, "b": []any{0.0, 0.0}}))
		})
	})

	When("the input is a scalar", func() {
		BeforeEach(func() {
			input = "plain"
		})

		It("returns it unchanged", func() {
			Expect(output).To(Equal("plain"))
		})
	})
})

var _ = Describe("Extraction.Clean", func() {
	It("zeroes non-finite numbers in every table", func() {
		e := (&Extraction{
			Invoices:  []InvoiceLine{{ProductName: "A", Quantity: math.NaN(), Tax: math.Inf(1), TotalAmount: 10}},
			Products:  []Product{{Name: "A", PriceWithTax: math.Inf(-1)}},
			Customers: []Customer{{Name: "C", TotalPurchaseAmount: math.NaN()}},
		}).Clean()

		Expect(e.Invoices[0].Quantity).To(Equal(0.0))
		Expect(e.Invoices[0].Tax).To(Equal(0.0))
		Expect(e.Invoices[0].TotalAmount).To(Equal(10.0))
		Expect(e.Products[0].PriceWithTax).To(Equal(0.0))
		Expect(e.Customers[0].TotalPurchaseAmount).To(Equal(0.0))

		_, err := json.Marshal(e)
		Expect(err).NotTo(HaveOccurred())
	})

	It("encodes missing tables as empty arrays", func() {
		data, err := json.Marshal((&Extraction{}).Clean())
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(MatchJSON(`{"invoices":[],"products":[],"customers":[]}`))
	})
})
