package dataset

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Missing-value tokens, matched case-insensitively after trimming.
var missingTokens = map[string]struct{}{
	"na":        {},
	"n/a":       {},
	"null":      {},
	"undefined": {},
}

// numericStrip removes every character that is not a digit, sign, decimal
// point, or exponent marker before parsing. The rule is deliberately lossy
// ("$1,200" becomes 1200) and is part of the engine's compatibility surface:
// downstream statistics depend on cells coercing exactly this way.
var numericStrip = regexp.MustCompile(`[^0-9+\-.eE]`)

// IsMissing reports whether a cell holds no usable value: nil, an empty or
// whitespace-only string, or one of the conventional missing tokens.
func IsMissing(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	_, found := missingTokens[strings.ToLower(trimmed)]
	return found
}

// ToNumber coerces a cell to a float64. Strings pass through the lossy strip
// described on numericStrip; anything that does not parse to a finite number
// yields NaN, the engine's not-a-number sentinel.
func ToNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return math.NaN()
	case float64:
		if math.IsInf(v, 0) {
			return math.NaN()
		}
		return v
	case float32:
		return ToNumber(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		stripped := numericStrip.ReplaceAllString(v, "")
		if stripped == "" {
			return math.NaN()
		}
		parsed, err := strconv.ParseFloat(stripped, 64)
		if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
			return math.NaN()
		}
		return parsed
	default:
		return ToNumber(fmt.Sprintf("%v", v))
	}
}

// IsNumber reports whether a cell is present and coerces to a finite number.
func IsNumber(value any) bool {
	return !IsMissing(value) && !math.IsNaN(ToNumber(value))
}

// Stringify renders a cell for use as a categorical key. Floats that are
// whole numbers print without a fractional part so that 3 and 3.0 count as
// the same category.
func Stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}
