// Package sqlite provides a record source backed by a SQLite table, streaming
// rows into query documents one at a time. It expects a *sql.DB opened with
// the mattn/go-sqlite3 driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asaidimu/go-sift/core/query"
	"github.com/asaidimu/go-sift/core/schema"
	"go.uber.org/zap"
)

// Source streams the rows of one table as records. Every Open issues a fresh
// SELECT, so the source is re-iterable and chained terminal calls are safe.
type Source struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

// Ensure Source implements the query.Source contract.
var _ query.Source = (*Source)(nil)

// NewSource creates a source over the given table. A nil logger is replaced
// with a no-op logger.
func NewSource(db *sql.DB, table string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{db: db, table: table, logger: logger}
}

// Open starts a streaming pass over the table in rowid order.
func (s *Source) Open(ctx context.Context) (query.Iterator, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", s.table))
	if err != nil {
		return nil, fmt.Errorf("querying table %q: %w", s.table, err)
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("reading columns of table %q: %w", s.table, err)
	}
	s.logger.Debug("Opened table scan", zap.String("table", s.table), zap.Strings("columns", columns))
	return &rowIterator{rows: rows, columns: columns}, nil
}

// rowIterator adapts *sql.Rows to the engine's Iterator contract, scanning
// each row into a document record on advance.
type rowIterator struct {
	rows    *sql.Rows
	columns []string
	current query.Record
	err     error
}

func (it *rowIterator) Next() bool {
	if it.err != nil {
		return false
	}
	if !it.rows.Next() {
		return false
	}
	doc, err := scanDocument(it.rows, it.columns)
	if err != nil {
		it.err = err
		return false
	}
	it.current = schema.NewRecord(doc)
	return true
}

func (it *rowIterator) Record() query.Record {
	return it.current
}

func (it *rowIterator) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

func (it *rowIterator) Close() error {
	return it.rows.Close()
}

// scanDocument scans the current row into a document. SQLite hands back TEXT
// columns as []byte; they are normalized to strings so the value model sees
// the string kind.
func scanDocument(rows *sql.Rows, columns []string) (schema.Document, error) {
	values := make([]any, len(columns))
	scanArgs := make([]any, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}
	if err := rows.Scan(scanArgs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	doc := make(schema.Document, len(columns))
	for i, col := range columns {
		switch val := values[i].(type) {
		case []byte:
			doc[col] = string(val)
		default:
			doc[col] = val
		}
	}
	return doc, nil
}
