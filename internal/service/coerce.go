package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Stored configuration values are loose scalars, usually strings like "1", "0", "" or "75.00".

var numericPrefix = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

func toBool(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0"
	case *string:
		return t != nil && toBool(*t)
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case decimal.Decimal:
		return !t.IsZero()
	default:
		return true
	}
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return parseNumericPrefix(t)
	case *string:
		if t == nil {
			return 0
		}
		return parseNumericPrefix(*t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64:
		return t
	case decimal.Decimal:
		return t.InexactFloat64()
	default:
		return 0
	}
}

func parseNumericPrefix(s string) float64 {
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0
	}
	// out-of-range input still yields ±Inf from ParseFloat
	f, _ := strconv.ParseFloat(strings.TrimLeft(m, " \t\n\r\v\f"), 64)
	return f
}
