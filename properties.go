package journy

import (
	"fmt"
	"strconv"
	"time"
)

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Properties are user or account attributes.
//
// Values may be strings, booleans, integers, floats, time.Time or []string.
// Everything except []string is sent as a string; a nil value drops the key.
type Properties map[string]any

// Metadata is extra information attached to an event. It accepts the same
// values as Properties.
type Metadata map[string]any

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// stringify converts values into their wire form. field names the argument
// in validation errors.
func stringify(field string, values map[string]any) (map[string]any, error) {
	if len(values) == 0 {
		return nil, nil
	}

	out := make(map[string]any, len(values))
	for key, value := range values {
		if key == "" {
			return nil, invalid(field, "keys cannot be empty")
		}
		if value == nil {
			continue
		}
		s, err := stringifyValue(value)
		if err != nil {
			return nil, invalid(field+"."+key, err.Error())
		}
		out[key] = s
	}
	return out, nil
}

func stringifyValue(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return formatTimestamp(v), nil
	case *time.Time:
		if v == nil {
			return nil, fmt.Errorf("nil time")
		}
		return formatTimestamp(*v), nil
	case []string:
		list := make([]string, len(v))
		copy(list, v)
		return list, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}
}
