package invoice

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SanitizeNumber", func() {
	DescribeTable("coercing values",
		func(input any, expected float64) {
			Expect(SanitizeNumber(input)).To(Equal(expected))
		},
		Entry("an int", 42, 42.0),
		Entry("an int64", int64(-7), -7.0),
		Entry("a float", 12.5, 12.5),
		Entry("a float32", float32(0.5), 0.5),
		Entry("a plain numeric string", "99.95", 99.95),
		Entry("a comma-formatted string", "1,200.50", 1200.5),
		Entry("a string with surrounding whitespace", "  3,000 ", 3000.0),
		Entry("a json.Number", json.Number("17.25"), 17.25),
		Entry("true", true, 1.0),
		Entry("nil", nil, 0.0),
		Entry("a non-numeric string", "abc", 0.0),
		Entry("an empty string", "", 0.0),
		Entry("NaN", math.NaN(), 0.0),
		Entry("+Inf", math.Inf(1), 0.0),
		Entry("-Inf", math.Inf(-1), 0.0),
		Entry("the string NaN", "NaN", 0.0),
		Entry("the string Infinity", "Infinity", 0.0),
		Entry("the string -inf", "-inf", 0.0),
		Entry("an unsupported type", []int{1}, 0.0),
	)

	It("always returns a finite value", func() {
		inputs := []any{1, 2.5, "1,000", nil, "x", math.NaN(), math.Inf(1), math.Inf(-1), struct{}{}}
		for _, in := range inputs {
			n := SanitizeNumber(in)
			Expect(math.IsNaN(n) || math.IsInf(n, 0)).To(BeFalse())
		}
	})
})
