package schema

import (
	"context"
	"testing"

	"github.com/asaidimu/go-sift/core/query"
	"github.com/asaidimu/go-sift/core/value"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRecord_Field(t *testing.T) {
	rec := NewRecord(Document{
		"name":   "alice",
		"age":    30,
		"score":  1.5,
		"active": true,
		"note":   nil,
	})

	t.Run("native values convert to query values", func(t *testing.T) {
		name, err := rec.Field(Field("name"))
		require.NoError(t, err)
		assert.True(t, value.Equal(name, value.NewString("alice")))

		age, err := rec.Field(Field("age"))
		require.NoError(t, err)
		assert.Equal(t, value.KindInteger, age.Kind())

		score, err := rec.Field(Field("score"))
		require.NoError(t, err)
		assert.Equal(t, value.KindDecimal, score.Kind())
	})

	t.Run("nil value is null but present", func(t *testing.T) {
		note, err := rec.Field(Field("note"))
		require.NoError(t, err)
		assert.True(t, note.IsNull())
	})

	t.Run("missing key fails with FieldNotFoundError", func(t *testing.T) {
		_, err := rec.Field(Field("height"))
		var notFound *query.FieldNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "height", notFound.Field)
	})
}

func TestDocumentRecord_PopulatedFields(t *testing.T) {
	rec := NewRecord(Document{"name": "alice", "note": nil})
	populated := rec.PopulatedFields()
	assert.Contains(t, populated, "name")
	assert.NotContains(t, populated, "note")
}

func TestRecordFromStruct(t *testing.T) {
	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	rec, err := RecordFromStruct(user{Name: "bob", Age: 25})
	require.NoError(t, err)

	name, err := rec.Field(Field("name"))
	require.NoError(t, err)
	assert.True(t, value.Equal(name, value.NewString("bob")))
}

func TestDocumentSource_ReIterable(t *testing.T) {
	source := NewSource([]Document{
		{"city": "berlin", "amount": 10},
		{"city": "paris", "amount": 20},
		{"city": "berlin", "amount": 30},
	})
	d := query.New(source)
	ctx := context.Background()

	// Three terminal calls over one dataset, each draining the source.
	matched, err := d.Filter().ByField(Field("city")).Eq(value.NewString("berlin")).Get(ctx)
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	sum, err := d.Reduce().ByField(Field("amount")).Sum(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(60)))

	groups, err := d.Group().ByField(Field("city")).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, groups.Len())
}

func TestDocumentSource_ChainedFilterGroupReduce(t *testing.T) {
	source := NewSource([]Document{
		{"dept": "eng", "salary": 100},
		{"dept": "ops", "salary": 80},
		{"dept": "eng", "salary": 120},
		{"dept": "ops", "salary": 90},
	})
	d := query.New(source)
	ctx := context.Background()

	avg, err := d.Filter().
		ByField(Field("dept")).Eq(value.NewString("eng")).
		Then().Reduce().ByField(Field("salary")).
		Average(ctx)
	require.NoError(t, err)
	assert.True(t, avg.Equal(decimal.NewFromInt(110)), "got %s", avg)

	groups, err := d.Filter().
		ByField(Field("salary")).Gte(value.NewInteger(90)).
		Then().Group().ByField(Field("dept")).
		Get(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, groups.Len())
	eng, ok := groups.Bucket(value.NewString("eng"))
	require.True(t, ok)
	assert.Len(t, eng, 2)
}

func TestDocumentSource_CancelledContext(t *testing.T) {
	source := NewSource([]Document{{"n": 1}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := query.New(source).Filter().Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
