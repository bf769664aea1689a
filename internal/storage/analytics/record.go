package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is one dynamically typed result row.
type Record []any

// String renders the record as a parenthesised tuple, e.g. ('A', 1, 10.5).
func (r Record) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = formatValue(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return "'" + val + "'"
	case []byte:
		return "'" + string(val) + "'"
	case float64:
		return formatFloat(val, 64)
	case float32:
		return formatFloat(float64(val), 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return "'" + val.Format(time.RFC3339Nano) + "'"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func formatFloat(f float64, bits int) string {
	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
