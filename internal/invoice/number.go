package invoice

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// SanitizeNumber coerces v into a finite float64. Strings may carry comma
// thousands separators. Anything that cannot be coerced, including NaN and
// the infinities, yields 0.
func SanitizeNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int8:
		n = float64(t)
	case int16:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint:
		n = float64(t)
	case uint8:
		n = float64(t)
	case uint16:
		n = float64(t)
	case uint32:
		n = float64(t)
	case uint64:
		n = float64(t)
	case bool:
		if t {
			n = 1
		}
	case json.Number:
		n = parseNumber(t.String())
	case string:
		n = parseNumber(t)
	default:
		return 0
	}
	return finite(n)
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

// finite maps NaN and ±Inf to 0
func finite(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}
