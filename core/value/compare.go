package value

import "strings"

// Compare orders two values, returning a negative number, zero, or a positive
// number as a sorts before, equal to, or after b.
//
// The ordering is total only over same-kind non-null pairs. Null compares
// equal to null and sorts after any concrete value; this asymmetry is relied
// on by equality predicates against null, so eq(null) needs no special case.
// Comparing two different non-null kinds, or two lists, fails with
// UnsupportedComparisonError.
func Compare(a, b Value) (int, error) {
	if a.IsNull() && b.IsNull() {
		return 0, nil
	}
	if a.IsNull() {
		return 1, nil
	}
	if b.IsNull() {
		return -1, nil
	}
	if a.Kind() != b.Kind() {
		return 0, &UnsupportedComparisonError{Left: a.Kind(), Right: b.Kind()}
	}

	switch a.Kind() {
	case KindString:
		return strings.Compare(a.str, b.str), nil
	case KindInteger:
		switch {
		case a.num < b.num:
			return -1, nil
		case a.num > b.num:
			return 1, nil
		default:
			return 0, nil
		}
	case KindDecimal:
		return a.dec.Cmp(b.dec), nil
	case KindBoolean:
		// false sorts before true
		switch {
		case a.b == b.b:
			return 0, nil
		case !a.b:
			return -1, nil
		default:
			return 1, nil
		}
	case KindDate, KindDateTime, KindTime:
		return a.t.Compare(b.t), nil
	case KindIdentifier:
		return strings.Compare(a.id.String(), b.id.String()), nil
	default:
		return 0, &UnsupportedComparisonError{Left: a.Kind(), Right: b.Kind()}
	}
}

// ContainedIn reports whether v structurally equals one of the elements of
// operand. The operand must be a list; any other kind fails with
// UnsupportedContainmentError.
func ContainedIn(v, operand Value) (bool, error) {
	if operand.Kind() != KindList {
		return false, &UnsupportedContainmentError{Operand: operand.Kind()}
	}
	for _, element := range operand.Elements() {
		if Equal(v, element) {
			return true, nil
		}
	}
	return false, nil
}
