package value

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompare_SameKind(t *testing.T) {
	t.Run("strings order lexically", func(t *testing.T) {
		cmp, err := Compare(NewString("apple"), NewString("banana"))
		assert.NoError(t, err)
		assert.Negative(t, cmp)

		cmp, err = Compare(NewString("pear"), NewString("pear"))
		assert.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("integers order numerically", func(t *testing.T) {
		cmp, err := Compare(NewInteger(10), NewInteger(3))
		assert.NoError(t, err)
		assert.Positive(t, cmp)
	})

	t.Run("decimals compare exactly", func(t *testing.T) {
		a := NewDecimal(decimal.RequireFromString("0.1"))
		b := NewDecimal(decimal.RequireFromString("0.10"))
		cmp, err := Compare(a, b)
		assert.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("false sorts before true", func(t *testing.T) {
		cmp, err := Compare(NewBoolean(false), NewBoolean(true))
		assert.NoError(t, err)
		assert.Negative(t, cmp)
	})

	t.Run("dates ignore time of day", func(t *testing.T) {
		morning := time.Date(2024, time.March, 5, 8, 0, 0, 0, time.UTC)
		evening := time.Date(2024, time.March, 5, 22, 30, 0, 0, time.UTC)
		cmp, err := Compare(NewDate(morning), NewDate(evening))
		assert.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("datetimes compare as instants across zones", func(t *testing.T) {
		berlin := time.FixedZone("CET", 3600)
		a := NewDateTime(time.Date(2024, time.March, 5, 13, 0, 0, 0, berlin))
		b := NewDateTime(time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC))
		cmp, err := Compare(a, b)
		assert.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("times ignore calendar date", func(t *testing.T) {
		a := NewTime(time.Date(2020, time.January, 1, 9, 30, 0, 0, time.UTC))
		b := NewTime(time.Date(1999, time.June, 12, 10, 0, 0, 0, time.UTC))
		cmp, err := Compare(a, b)
		assert.NoError(t, err)
		assert.Negative(t, cmp)
	})
}

func TestCompare_NullRules(t *testing.T) {
	t.Run("null equals null", func(t *testing.T) {
		cmp, err := Compare(Null(), Null())
		assert.NoError(t, err)
		assert.Zero(t, cmp)
	})

	t.Run("null sorts after any concrete value", func(t *testing.T) {
		cmp, err := Compare(Null(), NewInteger(42))
		assert.NoError(t, err)
		assert.Positive(t, cmp)

		cmp, err = Compare(NewString("anything"), Null())
		assert.NoError(t, err)
		assert.Negative(t, cmp)
	})
}

func TestCompare_MixedKinds(t *testing.T) {
	_, err := Compare(NewString("10"), NewDecimal(decimal.NewFromInt(10)))
	assert.Error(t, err)
	var unsupported *UnsupportedComparisonError
	assert.ErrorAs(t, err, &unsupported)
	assert.Equal(t, KindString, unsupported.Left)
	assert.Equal(t, KindDecimal, unsupported.Right)
}

func TestCompare_ListsHaveNoOrdering(t *testing.T) {
	_, err := Compare(NewList(NewInteger(1)), NewList(NewInteger(1)))
	var unsupported *UnsupportedComparisonError
	assert.ErrorAs(t, err, &unsupported)
}

func TestEqual(t *testing.T) {
	id := uuid.New()
	assert.True(t, Equal(NewIdentifier(id), NewIdentifier(id)))
	assert.True(t, Equal(Null(), Null()))
	assert.False(t, Equal(Null(), NewInteger(0)))
	assert.False(t, Equal(NewInteger(1), NewString("1")))
	assert.True(t, Equal(
		NewList(NewString("a"), NewInteger(2)),
		NewList(NewString("a"), NewInteger(2)),
	))
	assert.False(t, Equal(
		NewList(NewString("a")),
		NewList(NewString("a"), NewString("a")),
	))
}

func TestContainedIn(t *testing.T) {
	list := NewList(NewString("red"), NewString("green"), NewString("blue"))

	t.Run("member is contained", func(t *testing.T) {
		ok, err := ContainedIn(NewString("green"), list)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member is not contained", func(t *testing.T) {
		ok, err := ContainedIn(NewString("yellow"), list)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-list operand is rejected", func(t *testing.T) {
		_, err := ContainedIn(NewString("red"), NewString("red"))
		var unsupported *UnsupportedContainmentError
		assert.ErrorAs(t, err, &unsupported)
		assert.Equal(t, KindString, unsupported.Operand)
	})
}

func TestToNumeric(t *testing.T) {
	t.Run("integer", func(t *testing.T) {
		d, err := ToNumeric(NewInteger(7))
		assert.NoError(t, err)
		assert.True(t, d.Equal(decimal.NewFromInt(7)))
	})

	t.Run("decimal passes through", func(t *testing.T) {
		in := decimal.RequireFromString("3.25")
		d, err := ToNumeric(NewDecimal(in))
		assert.NoError(t, err)
		assert.True(t, d.Equal(in))
	})

	t.Run("numeric string parses", func(t *testing.T) {
		d, err := ToNumeric(NewString("12.5"))
		assert.NoError(t, err)
		assert.True(t, d.Equal(decimal.RequireFromString("12.5")))
	})

	t.Run("bad string fails with format error", func(t *testing.T) {
		_, err := ToNumeric(NewString("twelve"))
		var format *InvalidNumericFormatError
		assert.ErrorAs(t, err, &format)
		assert.Equal(t, "twelve", format.Value)
	})

	t.Run("non-numeric kind fails with type error", func(t *testing.T) {
		_, err := ToNumeric(NewBoolean(true))
		var unsupported *UnsupportedValueTypeError
		assert.ErrorAs(t, err, &unsupported)
		assert.Equal(t, KindBoolean, unsupported.Kind)
	})

	t.Run("null fails with type error", func(t *testing.T) {
		_, err := ToNumeric(Null())
		var unsupported *UnsupportedValueTypeError
		assert.ErrorAs(t, err, &unsupported)
	})
}

func TestFromAny(t *testing.T) {
	cases := []struct {
		name string
		in   any
		kind Kind
	}{
		{"nil", nil, KindNull},
		{"string", "hello", KindString},
		{"bytes", []byte("hello"), KindString},
		{"int", 42, KindInteger},
		{"int64", int64(42), KindInteger},
		{"float64", 1.5, KindDecimal},
		{"decimal", decimal.NewFromInt(3), KindDecimal},
		{"bool", true, KindBoolean},
		{"time", time.Now(), KindDateTime},
		{"uuid", uuid.New(), KindIdentifier},
		{"slice", []any{1, "a"}, KindList},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := FromAny(tc.in)
			assert.NoError(t, err)
			assert.Equal(t, tc.kind, v.Kind())
		})
	}

	t.Run("unrepresentable type is rejected", func(t *testing.T) {
		_, err := FromAny(struct{}{})
		assert.Error(t, err)
	})

	t.Run("value passes through unchanged", func(t *testing.T) {
		v, err := FromAny(NewInteger(5))
		assert.NoError(t, err)
		assert.True(t, Equal(v, NewInteger(5)))
	})
}

func TestKey_StructuralEquality(t *testing.T) {
	a := NewDecimal(decimal.RequireFromString("2.50"))
	b := NewDecimal(decimal.RequireFromString("2.5"))
	// Structurally equal decimals share a bucket key.
	assert.True(t, Equal(a, b))
	assert.Equal(t, a.Key(), b.Key())

	assert.NotEqual(t, NewString("1").Key(), NewInteger(1).Key())
}

func TestZeroValueIsNull(t *testing.T) {
	var v Value
	assert.True(t, v.IsNull())
	assert.Equal(t, KindNull, v.Kind())
	assert.Nil(t, v.Interface())
}
