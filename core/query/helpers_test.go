package query

import (
	"context"

	"github.com/asaidimu/go-sift/core/value"
)

// testField is a minimal FieldDescriptor for tests.
type testField string

func (f testField) Name() string { return string(f) }

// testRecord implements Record over a plain map. Keys absent from the map do
// not exist on the record; keys listed in unpopulated exist but carry no
// value. fieldReads, when set, counts Field calls across the record.
type testRecord struct {
	values      map[string]value.Value
	unpopulated map[string]struct{}
	fieldReads  *int
}

func (r *testRecord) Field(field FieldDescriptor) (value.Value, error) {
	if r.fieldReads != nil {
		*r.fieldReads++
	}
	v, ok := r.values[field.Name()]
	if !ok {
		return value.Null(), &FieldNotFoundError{Field: field.Name()}
	}
	return v, nil
}

func (r *testRecord) PopulatedFields() map[string]struct{} {
	populated := make(map[string]struct{}, len(r.values))
	for name := range r.values {
		if _, skip := r.unpopulated[name]; !skip {
			populated[name] = struct{}{}
		}
	}
	return populated
}

func record(fields map[string]value.Value) *testRecord {
	return &testRecord{values: fields}
}

// testSource is a re-iterable source over a fixed record slice. consumed,
// when set, counts how many records every pass has yielded in total.
type testSource struct {
	records  []Record
	consumed *int
}

func sourceOf(records ...Record) *testSource {
	return &testSource{records: records}
}

func (s *testSource) Open(ctx context.Context) (Iterator, error) {
	return &testIterator{source: s, pos: -1}, nil
}

type testIterator struct {
	source *testSource
	pos    int
}

func (it *testIterator) Next() bool {
	if it.pos+1 >= len(it.source.records) {
		return false
	}
	it.pos++
	if it.source.consumed != nil {
		*it.source.consumed++
	}
	return true
}

func (it *testIterator) Record() Record { return it.source.records[it.pos] }
func (it *testIterator) Err() error     { return nil }
func (it *testIterator) Close() error   { return nil }
