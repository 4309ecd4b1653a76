package value

import "github.com/shopspring/decimal"

// ToNumeric converts a value to an exact decimal for aggregation. Integers
// and decimals convert directly; strings are parsed, failing with
// InvalidNumericFormatError when not numeric. Every other kind fails with
// UnsupportedValueTypeError.
func ToNumeric(v Value) (decimal.Decimal, error) {
	switch v.Kind() {
	case KindInteger:
		return decimal.NewFromInt(v.num), nil
	case KindDecimal:
		return v.dec, nil
	case KindString:
		d, err := decimal.NewFromString(v.str)
		if err != nil {
			return decimal.Zero, &InvalidNumericFormatError{Value: v.str}
		}
		return d, nil
	default:
		return decimal.Zero, &UnsupportedValueTypeError{Kind: v.Kind()}
	}
}
