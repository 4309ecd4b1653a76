package query

import (
	"context"
	"fmt"

	"github.com/asaidimu/go-sift/core/value"
	"go.uber.org/zap"
)

// PredicateCollection accumulates the predicate nodes of one query chain and
// performs the single-pass streaming evaluation over a record sequence. One
// collection is shared across a filter, group, and reduce chain so that later
// stages see every predicate added earlier.
//
// The collection is a set: adding a node structurally identical to an
// existing one (same field, operand, operation, and relation) is a no-op.
// Evaluation still follows field grouping plus insertion order, independent
// of the set's internals.
type PredicateCollection struct {
	nodes             []PredicateNode
	seen              map[string]struct{}
	relation          RelationKind
	ignoreUnpopulated bool
	logger            *zap.Logger
}

// NewPredicateCollection creates an empty collection with the AND relation in
// force. A nil logger is replaced with a no-op logger.
func NewPredicateCollection(logger *zap.Logger) *PredicateCollection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredicateCollection{
		seen:     make(map[string]struct{}),
		relation: RelationAnd,
		logger:   logger,
	}
}

// Add appends a predicate node for the given field, capturing the relation
// currently in force. Structurally duplicate nodes collapse into one.
func (c *PredicateCollection) Add(field FieldDescriptor, operation OperationKind, operand value.Value) {
	node := PredicateNode{
		Field:     field,
		Operand:   operand,
		Operation: operation,
		Relation:  c.relation,
	}
	key := node.key()
	if _, ok := c.seen[key]; ok {
		c.logger.Debug("Skipping duplicate predicate node", zap.String("field", field.Name()), zap.String("operation", string(operation)))
		return
	}
	c.seen[key] = struct{}{}
	c.nodes = append(c.nodes, node)
}

// SetRelation changes the relation applied to nodes added from now on.
func (c *PredicateCollection) SetRelation(relation RelationKind) {
	c.relation = relation
}

// SetIgnoreNonPopulatedFields disables the populated-field validation step of
// the evaluation pass. FieldNotFoundError is still raised for fields the
// record type does not expose at all.
func (c *PredicateCollection) SetIgnoreNonPopulatedFields(ignore bool) {
	c.ignoreUnpopulated = ignore
}

// Len returns the number of distinct predicate nodes accumulated so far.
func (c *PredicateCollection) Len() int {
	return len(c.nodes)
}

// fieldGroup is one field's predicate nodes in insertion order, paired with a
// representative descriptor for error reporting and populated checks.
type fieldGroup struct {
	field FieldDescriptor
	nodes []PredicateNode
}

// groupByField arranges the node set into field-first-seen order, preserving
// insertion order within each field.
func (c *PredicateCollection) groupByField() []fieldGroup {
	index := make(map[string]int)
	var groups []fieldGroup
	for _, node := range c.nodes {
		name := node.Field.Name()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, fieldGroup{field: node.Field})
		}
		groups[i].nodes = append(groups[i].nodes, node)
	}
	return groups
}

// Process streams the source once and returns the records matching the
// accumulated predicate expression, in source order. A negative limit means
// unbounded; a zero limit returns an empty result without touching the
// source. Any evaluation error aborts the whole pass; there is no
// partial-result mode.
func (c *PredicateCollection) Process(ctx context.Context, source Source, limit int) ([]Record, error) {
	if limit == 0 {
		return []Record{}, nil
	}

	groups := c.groupByField()

	iterator, err := source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening record source: %w", err)
	}
	defer iterator.Close()

	var matched []Record
	for iterator.Next() {
		record := iterator.Record()

		if !c.ignoreUnpopulated && len(groups) > 0 {
			populated := record.PopulatedFields()
			for _, group := range groups {
				if _, ok := populated[group.field.Name()]; !ok {
					return nil, &UnpopulatedFieldError{Field: group.field.Name()}
				}
			}
		}

		matches, err := c.evaluateRecord(record, groups)
		if err != nil {
			return nil, err
		}
		if matches {
			matched = append(matched, record)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("iterating record source: %w", err)
	}

	c.logger.Debug("Evaluation pass complete",
		zap.Int("predicates", len(c.nodes)),
		zap.Int("matched", len(matched)),
		zap.Int("limit", limit))

	if matched == nil {
		matched = []Record{}
	}
	return matched, nil
}

// evaluateRecord folds every predicate node into a running match flag. The
// fold does not short-circuit: every node is evaluated for each record. The
// first node seeds the flag; each later node combines through its own
// relation, with an unknown relation folding as AND.
func (c *PredicateCollection) evaluateRecord(record Record, groups []fieldGroup) (bool, error) {
	running := true
	first := true
	for _, group := range groups {
		for _, node := range group.nodes {
			fieldValue, err := record.Field(node.Field)
			if err != nil {
				return false, err
			}
			result, err := node.evaluate(fieldValue)
			if err != nil {
				return false, fmt.Errorf("evaluating predicate on field %q: %w", node.Field.Name(), err)
			}
			switch {
			case first:
				running = result
				first = false
			case node.Relation == RelationOr:
				running = running || result
			default:
				running = running && result
			}
		}
	}
	return running, nil
}
