package utils

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float64:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(string(v))
		return i
	default:
		return int(ToInt64(v))
	}
}

// ToInt64 converts a warehouse value to int64. NULL and unparsable values
// become 0; fractional values are rounded half away from zero.
func ToInt64(val any) int64 {
	switch v := val.(type) {
	case nil:
		return 0
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return decimal.NewFromFloat(v).Round(0).IntPart()
	case float32:
		return decimal.NewFromFloat32(v).Round(0).IntPart()
	case *big.Rat:
		if v == nil {
			return 0
		}
		return ToInt64(v.FloatString(8))
	case decimal.Decimal:
		return v.Round(0).IntPart()
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return d.Round(0).IntPart()
	case []byte:
		return ToInt64(string(v))
	default:
		return ToInt64(fmt.Sprintf("%v", v))
	}
}

// ToString converts various types to string. NULL becomes the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32:
		return ToInt(v) == 1
	case string:
		return v == "1" || strings.ToLower(v) == "true"
	case []byte:
		s := string(v)
		return s == "1" || strings.ToLower(s) == "true"
	default:
		return false
	}
}
