package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ToString converts various types to string.
// Nil becomes the empty string; whole floats are rendered without a fraction
// so a numeric postal code like 30342 stays "30342".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToOptionalString is ToString for nullable fields: nil stays nil.
func ToOptionalString(val any) *string {
	if val == nil {
		return nil
	}
	s := ToString(val)
	return &s
}
