package conv

import (
	"encoding/json"
	"strconv"
)

// AsInt coerces numeric values (including json.Number and numeric strings) to int, returns 0 otherwise
func AsInt(v interface{}) int {
	switch actual := v.(type) {
	case int:
		return actual
	case int8:
		return int(actual)
	case int16:
		return int(actual)
	case int32:
		return int(actual)
	case int64:
		return int(actual)
	case uint:
		return int(actual)
	case uint8:
		return int(actual)
	case uint16:
		return int(actual)
	case uint32:
		return int(actual)
	case uint64:
		return int(actual)
	case float32:
		return int(actual)
	case float64:
		return int(actual)
	case json.Number:
		if i, err := actual.Int64(); err == nil {
			return int(i)
		}
		if f, err := actual.Float64(); err == nil {
			return int(f)
		}
	case string:
		if i, err := strconv.Atoi(actual); err == nil {
			return i
		}
	case *int:
		if actual != nil {
			return *actual
		}
	}
	return 0
}
