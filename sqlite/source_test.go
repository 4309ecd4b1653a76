package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/asaidimu/go-sift/core/query"
	"github.com/asaidimu/go-sift/core/schema"
	"github.com/asaidimu/go-sift/core/value"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openOrdersDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE orders (id INTEGER PRIMARY KEY, customer TEXT, status TEXT, total INTEGER)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO orders (customer, status, total) VALUES
		('alice', 'paid', 100),
		('bob', 'open', 40),
		('alice', 'paid', 60),
		('carol', 'open', 90)`)
	require.NoError(t, err)
	return db
}

func TestSource_StreamsRows(t *testing.T) {
	db := openOrdersDB(t)
	source := NewSource(db, "orders", nil)

	it, err := source.Open(context.Background())
	require.NoError(t, err)
	defer it.Close()

	var customers []string
	for it.Next() {
		customer, err := it.Record().Field(schema.Field("customer"))
		require.NoError(t, err)
		customers = append(customers, customer.String())
	}
	require.NoError(t, it.Err())
	assert.Equal(t, []string{"alice", "bob", "alice", "carol"}, customers)
}

func TestSource_QueryChains(t *testing.T) {
	db := openOrdersDB(t)
	d := query.New(NewSource(db, "orders", nil))
	ctx := context.Background()

	t.Run("filter", func(t *testing.T) {
		matched, err := d.Filter().
			ByField(schema.Field("status")).Eq(value.NewString("paid")).
			Get(ctx)
		require.NoError(t, err)
		assert.Len(t, matched, 2)
	})

	t.Run("filter then reduce", func(t *testing.T) {
		sum, err := d.Filter().
			ByField(schema.Field("status")).Eq(value.NewString("paid")).
			Then().Reduce().ByField(schema.Field("total")).
			Sum(ctx)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.NewFromInt(160)), "got %s", sum)
	})

	t.Run("group", func(t *testing.T) {
		groups, err := d.Group().ByField(schema.Field("customer")).Get(ctx)
		require.NoError(t, err)
		require.Equal(t, 3, groups.Len())

		alice, ok := groups.Bucket(value.NewString("alice"))
		require.True(t, ok)
		assert.Len(t, alice, 2)
	})

	t.Run("re-iterable across terminal calls", func(t *testing.T) {
		first, err := d.Filter().Get(ctx)
		require.NoError(t, err)
		second, err := d.Filter().Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(first), len(second))
	})
}

func TestSource_MissingTable(t *testing.T) {
	db := openOrdersDB(t)
	_, err := NewSource(db, "missing", nil).Open(context.Background())
	assert.Error(t, err)
}
