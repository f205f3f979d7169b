package store

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lenient parsers used when loading persisted rows. Anything that does not
// parse becomes the zero value.

func parseIntLenient(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && fitsInt(f) {
		return int(f)
	}
	return 0
}

func parseFloatLenient(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(f) {
		return 0
	}
	return f
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// fitsInt reports whether f truncates to an int without overflow.
func fitsInt(f float64) bool {
	return isFinite(f) && f > -(1<<63) && f < 1<<63
}

func parseBoolLenient(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Strict converters used on the write path. Values come from decoded JSON
// (float64, bool, string, nil) or from form fields (string).

func toInt(v interface{}) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		if !fitsInt(x) {
			return 0, fmt.Errorf("%v is out of range", x)
		}
		return int(x), nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, nil
		}
		if n, err := strconv.Atoi(x); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x)
		}
		if !fitsInt(f) {
			return 0, fmt.Errorf("%q is out of range", x)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		if !isFinite(x) {
			return 0, fmt.Errorf("%v is not a finite number", x)
		}
		return x, nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", x)
		}
		if !isFinite(f) {
			return 0, fmt.Errorf("%q is not a finite number", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

func toBool(v interface{}) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case float64:
		return x != 0, nil
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean", x)
		}
		return b, nil
	default:
		return false, fmt.Errorf("unsupported value %v", v)
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case bool:
		return formatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
