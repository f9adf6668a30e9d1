package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

// Truthy reports whether a raw JSON value counts as set for flag-like fields.
// false, null, numeric zero, "", [] and {} are falsy. Invalid JSON is falsy.
// Numbers beyond the float64 range are truthy, underflow to zero is falsy.
func Truthy(raw json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return false
	}

	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case json.Number:
		return !isZeroNumber(val)
	case string:
		return val != ""
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}

func isZeroNumber(n json.Number) bool {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f == 0
		}
		return false
	}
	return f == 0
}
