// internal/validate/coerce.go
package validate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// toInt coerces a raw cell to an integer, truncating toward zero
// (-17.0 → -17, "-17.9" → -17). NaN, Inf, empty and non-numeric values fail.
func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return truncate(x)
	case json.Number:
		return parseIntText(x.String())
	case string:
		return parseIntText(strings.TrimSpace(x))
	}
	return 0, false
}

func parseIntText(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(n), true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return truncate(f)
}

func truncate(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t > math.MaxInt64 || t < math.MinInt64 {
		return 0, false
	}
	return int(t), true
}

// toFloat reports whether a raw cell parses as a real number. NaN and Inf
// literals are accepted; empty text and nil are not.
func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// onlyATGC reports whether v is a string made only of A, T, G and C.
func onlyATGC(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'T', 'G', 'C':
		default:
			return false
		}
	}
	return true
}
