// Package inputs defines the financing simulation inputs and the helpers that
// normalize loosely-typed records into the shapes the schedule builder expects.
package inputs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iwvelando/financing-simulator/pkg/mathutil"
)

// Value is an optional decimal: either a finite number or "not provided".
// The zero Value is empty.
type Value struct {
	number   float64
	provided bool
}

// Empty returns the "not provided" Value.
func Empty() Value {
	return Value{}
}

// Of wraps a number. Non-finite numbers are stored as empty.
func Of(n float64) Value {
	if !mathutil.IsFinite(n) {
		return Value{}
	}
	return Value{number: n, provided: true}
}

// IsProvided reports whether the field holds a number. Required-field
// preconditions must use this rather than comparing against zero.
func (v Value) IsProvided() bool {
	return v.provided
}

// OrZero returns the number, or 0 when the field is empty. This is the
// accessor used when amounts are summed.
func (v Value) OrZero() float64 {
	if !v.provided {
		return 0
	}
	return v.number
}

// String renders the number without trailing zeros, or "" when empty.
func (v Value) String() string {
	if !v.provided {
		return ""
	}
	return strconv.FormatFloat(v.number, 'f', -1, 64)
}

// MarshalJSON encodes an empty Value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.provided {
		return []byte("null"), nil
	}
	return json.Marshal(v.number)
}

// UnmarshalJSON accepts null, numbers and numeric strings. Empty or
// unparseable strings decode to an empty Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Empty()
		return nil
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*v = ParseNumber(text)
		return nil
	}

	n, err := strconv.ParseFloat(string(trimmed), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %s: %w", trimmed, err)
	}
	*v = Of(n)
	return nil
}

// ValueFromInterface converts a decoded JSON/YAML scalar into a Value. The
// boolean result is false when raw is nil, an empty string, or cannot be
// read as a number.
func ValueFromInterface(raw interface{}) (Value, bool) {
	switch n := raw.(type) {
	case Value:
		return n, n.IsProvided()
	case float64:
		return Of(n), mathutil.IsFinite(n)
	case float32:
		return Of(float64(n)), mathutil.IsFinite(float64(n))
	case int:
		return Of(float64(n)), true
	case int32:
		return Of(float64(n)), true
	case int64:
		return Of(float64(n)), true
	case uint:
		return Of(float64(n)), true
	case uint64:
		return Of(float64(n)), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return Empty(), false
		}
		return Of(f), mathutil.IsFinite(f)
	case string:
		parsed := ParseNumber(n)
		return parsed, parsed.IsProvided()
	}
	return Empty(), false
}
