package value

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FromAny converts a native Go value into a Value. Integer types map to the
// integer kind, floating-point types to decimal, time.Time to date-time, and
// uuid.UUID to identifier. A nil input yields null. Types outside the closed
// set are rejected rather than coerced.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return val, nil
	case string:
		return NewString(val), nil
	case []byte:
		return NewString(string(val)), nil
	case int:
		return NewInteger(int64(val)), nil
	case int8:
		return NewInteger(int64(val)), nil
	case int16:
		return NewInteger(int64(val)), nil
	case int32:
		return NewInteger(int64(val)), nil
	case int64:
		return NewInteger(val), nil
	case float32:
		return NewDecimal(decimal.NewFromFloat32(val)), nil
	case float64:
		return NewDecimal(decimal.NewFromFloat(val)), nil
	case decimal.Decimal:
		return NewDecimal(val), nil
	case bool:
		return NewBoolean(val), nil
	case time.Time:
		return NewDateTime(val), nil
	case uuid.UUID:
		return NewIdentifier(val), nil
	case []any:
		elements := make([]Value, len(val))
		for i, e := range val {
			element, err := FromAny(e)
			if err != nil {
				return Null(), err
			}
			elements[i] = element
		}
		return NewList(elements...), nil
	default:
		return Null(), fmt.Errorf("cannot represent %T as a query value", v)
	}
}

// MustFromAny is like FromAny but panics on unrepresentable input. It is
// intended for literals in tests and examples.
func MustFromAny(v any) Value {
	out, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return out
}
