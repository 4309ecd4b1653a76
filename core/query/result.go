package query

import "github.com/asaidimu/go-sift/core/value"

// Groups is an ordered mapping from group key values to the records bucketed
// under them. Keys appear in first-occurrence order; bucket membership keeps
// the original sequence order. Keys are matched by structural equality, so
// two records whose key values are structurally equal land in one bucket.
type Groups struct {
	keys    []value.Value
	buckets map[string][]Record
}

func newGroups() *Groups {
	return &Groups{buckets: make(map[string][]Record)}
}

func (g *Groups) add(key value.Value, record Record) {
	k := key.Key()
	if _, ok := g.buckets[k]; !ok {
		g.keys = append(g.keys, key)
	}
	g.buckets[k] = append(g.buckets[k], record)
}

// Len returns the number of buckets.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Keys returns the bucket key values in first-occurrence order.
func (g *Groups) Keys() []value.Value {
	out := make([]value.Value, len(g.keys))
	copy(out, g.keys)
	return out
}

// Bucket returns the records grouped under a key, with ok reporting whether
// the bucket exists.
func (g *Groups) Bucket(key value.Value) ([]Record, bool) {
	records, ok := g.buckets[key.Key()]
	return records, ok
}
