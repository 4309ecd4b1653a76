// Package value defines the closed set of value kinds the query engine can
// compare, and the comparison, containment, and numeric-conversion rules
// between them. Operations are only defined between operands of the same
// kind (or against null); there is no implicit coercion.
package value

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the variant held by a Value.
type Kind string

// Supported value kinds.
const (
	KindNull       Kind = "null"
	KindString     Kind = "string"
	KindInteger    Kind = "integer"
	KindDecimal    Kind = "decimal"
	KindBoolean    Kind = "boolean"
	KindDate       Kind = "date"
	KindDateTime   Kind = "datetime"
	KindTime       Kind = "time"
	KindIdentifier Kind = "identifier"
	KindList       Kind = "list"
)

// Value is a tagged union over the supported kinds. The zero Value is null.
// Values are immutable; all mutation happens through constructors.
type Value struct {
	kind Kind
	str  string
	num  int64
	dec  decimal.Decimal
	b    bool
	t    time.Time
	id   uuid.UUID
	list []Value
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// NewString creates a string value.
func NewString(s string) Value {
	return Value{kind: KindString, str: s}
}

// NewInteger creates an integer value.
func NewInteger(i int64) Value {
	return Value{kind: KindInteger, num: i}
}

// NewDecimal creates a decimal value.
func NewDecimal(d decimal.Decimal) Value {
	return Value{kind: KindDecimal, dec: d}
}

// NewBoolean creates a boolean value.
func NewBoolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// NewDate creates a date value. The time-of-day and location of t are
// discarded; only the calendar day survives.
func NewDate(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// NewDateTime creates a date-time value. The instant is normalized to UTC so
// that equal instants in different locations compare equal.
func NewDateTime(t time.Time) Value {
	return Value{kind: KindDateTime, t: t.UTC()}
}

// NewTime creates a time-of-day value. The calendar date of t is discarded.
func NewTime(t time.Time) Value {
	return Value{kind: KindTime, t: time.Date(1, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// NewIdentifier creates an identifier value from a UUID.
func NewIdentifier(id uuid.UUID) Value {
	return Value{kind: KindIdentifier, id: id}
}

// NewList creates a list value from the given elements.
func NewList(elements ...Value) Value {
	list := make([]Value, len(elements))
	copy(list, elements)
	return Value{kind: KindList, list: list}
}

// Kind returns the variant tag of the value. The zero Value reports KindNull.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Interface returns the native Go representation of the value: string, int64,
// decimal.Decimal, bool, time.Time, uuid.UUID, []any, or nil for null.
func (v Value) Interface() any {
	switch v.Kind() {
	case KindString:
		return v.str
	case KindInteger:
		return v.num
	case KindDecimal:
		return v.dec
	case KindBoolean:
		return v.b
	case KindDate, KindDateTime, KindTime:
		return v.t
	case KindIdentifier:
		return v.id
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// Elements returns the list elements, or nil when the value is not a list.
func (v Value) Elements() []Value {
	if v.Kind() != KindList {
		return nil
	}
	return v.list
}

// Equal reports structural equality between two values. Values of different
// kinds are never equal; null equals only null. Unlike Compare, Equal is
// total and never fails.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindInteger:
		return a.num == b.num
	case KindDecimal:
		return a.dec.Equal(b.dec)
	case KindBoolean:
		return a.b == b.b
	case KindDate, KindDateTime, KindTime:
		return a.t.Equal(b.t)
	case KindIdentifier:
		return a.id == b.id
	case KindList:
		if len(a.list) != len(b.list) {
			return false
		}
		for i := range a.list {
			if !Equal(a.list[i], b.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Key returns a canonical encoding of the value, stable across structurally
// equal values. It is used for set membership and map bucketing where the
// native representation is not a valid map key.
func (v Value) Key() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindString:
		return "string:" + v.str
	case KindInteger:
		return fmt.Sprintf("integer:%d", v.num)
	case KindDecimal:
		// Trailing zeros are trimmed so structurally equal decimals share a key.
		s := v.dec.String()
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
		}
		return "decimal:" + s
	case KindBoolean:
		return fmt.Sprintf("boolean:%t", v.b)
	case KindDate:
		return "date:" + v.t.Format("2006-01-02")
	case KindDateTime:
		return "datetime:" + v.t.Format(time.RFC3339Nano)
	case KindTime:
		return "time:" + v.t.Format("15:04:05.999999999")
	case KindIdentifier:
		return "identifier:" + v.id.String()
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Key()
		}
		return "list:[" + strings.Join(parts, ",") + "]"
	default:
		return string(v.Kind())
	}
}

// String returns a human-readable rendering of the value, used in error
// messages and logs.
func (v Value) String() string {
	switch v.Kind() {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindDecimal:
		return v.dec.String()
	case KindDate:
		return v.t.Format("2006-01-02")
	case KindDateTime:
		return v.t.Format(time.RFC3339Nano)
	case KindTime:
		return v.t.Format("15:04:05")
	case KindIdentifier:
		return v.id.String()
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
