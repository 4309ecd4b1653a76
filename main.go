package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-sift/core/query"
	"github.com/asaidimu/go-sift/core/schema"
	"github.com/asaidimu/go-sift/core/value"
	"github.com/asaidimu/go-sift/sqlite"
	"github.com/asaidimu/go-sift/utils"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const dbFileName = "orders.db"

// Order mirrors the demo table; matched documents convert back into it.
type Order struct {
	ID       int64  `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
	Total    int64  `json:"total"`
}

func main() {
	// Start fresh: remove the database file if it already exists.
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}

	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer func() {
		if cErr := db.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
	}()

	if _, err := db.Exec(`CREATE TABLE orders (id INTEGER PRIMARY KEY, customer TEXT, status TEXT, total INTEGER)`); err != nil {
		log.Fatalf("Failed to create orders table: %v", err)
	}
	seed := [][]any{
		{"alice", "paid", 120},
		{"bob", "open", 40},
		{"alice", "paid", 80},
		{"carol", "open", 95},
		{"bob", "paid", 60},
	}
	for _, row := range seed {
		if _, err := db.Exec(`INSERT INTO orders (customer, status, total) VALUES (?, ?, ?)`, row...); err != nil {
			log.Fatalf("Failed to insert sample order: %v", err)
		}
	}
	fmt.Println("Inserted sample orders.")

	bus, err := events.NewTypedEventBus[query.QueryEvent](events.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to create event bus: %v", err)
	}

	dataset := query.New(sqlite.NewSource(db, "orders", nil), query.WithEventBus(bus))
	dataset.RegisterSubscription(query.RegisterSubscriptionOptions{
		Event: query.FilterSuccess,
		Callback: func(ctx context.Context, event query.QueryEvent) error {
			fmt.Printf("filter pass %s matched %d record(s)\n", event.ID, *event.Matched)
			return nil
		},
	})

	ctx := context.Background()

	// Paid orders above 50, materialized back into structs.
	matched, err := dataset.Filter().
		ByField(schema.Field("status")).Eq(value.NewString("paid")).
		AndAlso().
		ByField(schema.Field("total")).Gt(value.NewInteger(50)).
		Get(ctx)
	if err != nil {
		log.Fatalf("Filter failed: %v", err)
	}
	fmt.Println("\nPaid orders above 50:")
	for _, rec := range matched {
		doc := rec.(*schema.DocumentRecord).Document()
		order, err := utils.MapToStruct[Order](doc)
		if err != nil {
			log.Fatalf("Failed to convert document: %v", err)
		}
		fmt.Printf("  #%d %-8s %-6s %d\n", order.ID, order.Customer, order.Status, order.Total)
	}

	// Revenue per customer over the paid subset.
	groups, err := dataset.Filter().
		ByField(schema.Field("status")).Eq(value.NewString("paid")).
		Then().Group().ByField(schema.Field("customer")).
		Get(ctx)
	if err != nil {
		log.Fatalf("Group failed: %v", err)
	}
	fmt.Println("\nPaid orders per customer:")
	for _, key := range groups.Keys() {
		bucket, _ := groups.Bucket(key)
		fmt.Printf("  %-8s %d order(s)\n", key, len(bucket))
	}

	// Exact totals over the same chain shape.
	sum, err := dataset.Filter().
		ByField(schema.Field("status")).Eq(value.NewString("paid")).
		Then().Reduce().ByField(schema.Field("total")).
		Sum(ctx)
	if err != nil {
		log.Fatalf("Reduce failed: %v", err)
	}
	avg, err := dataset.Filter().
		ByField(schema.Field("status")).Eq(value.NewString("paid")).
		Then().Reduce().ByField(schema.Field("total")).
		Average(ctx)
	if err != nil {
		log.Fatalf("Reduce failed: %v", err)
	}
	fmt.Printf("\nPaid revenue: %s (average %s)\n", sum, avg)
}
