package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-sift/core/value"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Dataset wraps a record source and hands out fluent query chains over it.
// Each call to Filter, Group, or Reduce starts a fresh chain with its own
// predicate collection; a Then continuation shares the collection with the
// filter chain it came from. Chains are single-owner objects with no internal
// synchronization.
type Dataset struct {
	source            Source
	logger            *zap.Logger
	bus               *events.TypedEventBus[QueryEvent]
	ignoreUnpopulated bool
	subMu             sync.Mutex
	subscriptions     map[string]*SubscriptionInfo
}

// New creates a Dataset over the given source.
func New(source Source, opts ...Option) *Dataset {
	d := &Dataset{
		source:        source,
		logger:        zap.NewNop(),
		subscriptions: make(map[string]*SubscriptionInfo),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// newCollection builds a fresh predicate collection carrying the dataset's
// defaults.
func (d *Dataset) newCollection() *PredicateCollection {
	c := NewPredicateCollection(d.logger)
	c.SetIgnoreNonPopulatedFields(d.ignoreUnpopulated)
	return c
}

// Filter begins a new filter chain.
func (d *Dataset) Filter() *FilterBuilder {
	return &FilterBuilder{dataset: d, collection: d.newCollection()}
}

// Group begins a new group chain with no predicates, bucketing every record.
func (d *Dataset) Group() *GroupBuilder {
	return &GroupBuilder{dataset: d, collection: d.newCollection()}
}

// Reduce begins a new reduce chain with no predicates, folding every record.
func (d *Dataset) Reduce() *ReduceBuilder {
	return &ReduceBuilder{dataset: d, collection: d.newCollection()}
}

// FilterBuilder is the predicate-entry state of a filter chain: the next step
// selects a field with ByField, or runs a terminal over what has been
// accumulated so far. An empty chain matches every record.
type FilterBuilder struct {
	dataset    *Dataset
	collection *PredicateCollection
}

// IgnoreNonPopulatedFields disables populated-field validation for this
// chain.
func (fb *FilterBuilder) IgnoreNonPopulatedFields() *FilterBuilder {
	fb.collection.SetIgnoreNonPopulatedFields(true)
	return fb
}

// ByField selects the field the next comparison targets.
func (fb *FilterBuilder) ByField(field FieldDescriptor) *FieldPredicate {
	return &FieldPredicate{builder: fb, field: field}
}

// Then freezes the chain and exposes the group/reduce continuation over the
// same predicate collection.
func (fb *FilterBuilder) Then() *QueryChain {
	return &QueryChain{dataset: fb.dataset, collection: fb.collection}
}

// Get materializes every matching record in source order.
func (fb *FilterBuilder) Get(ctx context.Context) ([]Record, error) {
	return fb.dataset.runFilter(ctx, fb.collection, -1)
}

// GetLimit materializes matching records, stopping once limit records have
// been collected. A negative limit is unbounded; zero returns an empty list.
func (fb *FilterBuilder) GetLimit(ctx context.Context, limit int) ([]Record, error) {
	return fb.dataset.runFilter(ctx, fb.collection, limit)
}

// GetFirst returns the first matching record, with ok reporting whether any
// record matched.
func (fb *FilterBuilder) GetFirst(ctx context.Context) (Record, bool, error) {
	matched, err := fb.dataset.runFilter(ctx, fb.collection, 1)
	if err != nil {
		return nil, false, err
	}
	if len(matched) == 0 {
		return nil, false, nil
	}
	return matched[0], true, nil
}

// FieldPredicate is the state of a filter chain in which a field has been
// selected and a comparison is expected.
type FieldPredicate struct {
	builder *FilterBuilder
	field   FieldDescriptor
}

// add records a predicate node under the relation currently in force and
// returns the chain's result surface.
func (fp *FieldPredicate) add(operation OperationKind, operand value.Value) *FilterChain {
	fp.builder.collection.Add(fp.field, operation, operand)
	return &FilterChain{builder: fp.builder}
}

// Eq adds an equality comparison against the operand.
func (fp *FieldPredicate) Eq(operand value.Value) *FilterChain {
	return fp.add(OperationEqual, operand)
}

// Neq adds a not-equal comparison against the operand.
func (fp *FieldPredicate) Neq(operand value.Value) *FilterChain {
	return fp.add(OperationNotEqual, operand)
}

// Lt adds a less-than comparison against the operand.
func (fp *FieldPredicate) Lt(operand value.Value) *FilterChain {
	return fp.add(OperationLessThan, operand)
}

// Lte adds a less-than-or-equal comparison against the operand.
func (fp *FieldPredicate) Lte(operand value.Value) *FilterChain {
	return fp.add(OperationLessEqual, operand)
}

// Gt adds a greater-than comparison against the operand.
func (fp *FieldPredicate) Gt(operand value.Value) *FilterChain {
	return fp.add(OperationGreaterThan, operand)
}

// Gte adds a greater-than-or-equal comparison against the operand.
func (fp *FieldPredicate) Gte(operand value.Value) *FilterChain {
	return fp.add(OperationGreaterEqual, operand)
}

// In adds a containment check: the field must structurally equal one of the
// given elements. The semantics are those of OR-ing per-element equality, but
// the containment is evaluated in one step.
func (fp *FieldPredicate) In(elements ...value.Value) *FilterChain {
	return fp.add(OperationIsIn, value.NewList(elements...))
}

// NotIn adds the complement of In.
func (fp *FieldPredicate) NotIn(elements ...value.Value) *FilterChain {
	return fp.add(OperationIsNotIn, value.NewList(elements...))
}

// IsNull is sugar for Eq(null).
func (fp *FieldPredicate) IsNull() *FilterChain {
	return fp.Eq(value.Null())
}

// IsNotNull is sugar for Neq(null).
func (fp *FieldPredicate) IsNotNull() *FilterChain {
	return fp.Neq(value.Null())
}

// FilterChain is the result surface of a filter chain after a comparison has
// been added: continue with another predicate, freeze into a continuation,
// or run a terminal.
type FilterChain struct {
	builder *FilterBuilder
}

// AndAlso puts the AND relation in force for subsequent predicates and
// returns to the predicate-entry state.
func (fc *FilterChain) AndAlso() *FilterBuilder {
	fc.builder.collection.SetRelation(RelationAnd)
	return fc.builder
}

// OrElse puts the OR relation in force for subsequent predicates and returns
// to the predicate-entry state.
func (fc *FilterChain) OrElse() *FilterBuilder {
	fc.builder.collection.SetRelation(RelationOr)
	return fc.builder
}

// Then freezes the chain and exposes the group/reduce continuation.
func (fc *FilterChain) Then() *QueryChain {
	return fc.builder.Then()
}

// Get materializes every matching record in source order.
func (fc *FilterChain) Get(ctx context.Context) ([]Record, error) {
	return fc.builder.Get(ctx)
}

// GetLimit materializes at most limit matching records.
func (fc *FilterChain) GetLimit(ctx context.Context, limit int) ([]Record, error) {
	return fc.builder.GetLimit(ctx, limit)
}

// GetFirst returns the first matching record, with ok reporting whether any
// record matched.
func (fc *FilterChain) GetFirst(ctx context.Context) (Record, bool, error) {
	return fc.builder.GetFirst(ctx)
}

// QueryChain is the continuation exposed by Then: the frozen predicate
// collection can be materialized, grouped, or reduced.
type QueryChain struct {
	dataset    *Dataset
	collection *PredicateCollection
}

// Get materializes every matching record in source order.
func (qc *QueryChain) Get(ctx context.Context) ([]Record, error) {
	return qc.dataset.runFilter(ctx, qc.collection, -1)
}

// Group continues the chain into grouping over the matched records.
func (qc *QueryChain) Group() *GroupBuilder {
	return &GroupBuilder{dataset: qc.dataset, collection: qc.collection}
}

// Reduce continues the chain into reduction over the matched records.
func (qc *QueryChain) Reduce() *ReduceBuilder {
	return &ReduceBuilder{dataset: qc.dataset, collection: qc.collection}
}

// runFilter is the shared terminal for filter materialization, wrapped with
// event emission.
func (d *Dataset) runFilter(ctx context.Context, collection *PredicateCollection, limit int) ([]Record, error) {
	var matched []Record
	var limitArg *int
	if limit >= 0 {
		limitArg = &limit
	}
	err := d.withEventEmission("filter", FilterStart, FilterSuccess, FilterFailed, collection.Len(), limitArg, func() (int, error) {
		var err error
		matched, err = collection.Process(ctx, d.source, limit)
		return len(matched), err
	})
	if err != nil {
		return nil, err
	}
	return matched, nil
}

// GroupBuilder buckets matched records by the structural value of a key
// field. The key field must be selected before the terminal call.
type GroupBuilder struct {
	dataset    *Dataset
	collection *PredicateCollection
	field      FieldDescriptor
}

// ByField selects the group key field.
func (gb *GroupBuilder) ByField(field FieldDescriptor) *GroupBuilder {
	gb.field = field
	return gb
}

// Get runs the evaluation pass and buckets every matched record under its
// key value, in first-occurrence order.
func (gb *GroupBuilder) Get(ctx context.Context) (*Groups, error) {
	if gb.field == nil {
		return nil, ErrNoFieldSelected
	}
	var groups *Groups
	err := gb.dataset.withEventEmission("group", GroupStart, GroupSuccess, GroupFailed, gb.collection.Len(), nil, func() (int, error) {
		matched, err := gb.collection.Process(ctx, gb.dataset.source, -1)
		if err != nil {
			return 0, err
		}
		groups = newGroups()
		for _, record := range matched {
			key, err := record.Field(gb.field)
			if err != nil {
				return 0, err
			}
			groups.add(key, record)
		}
		return len(matched), nil
	})
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// ReduceBuilder folds the numeric value of a field across matched records.
// The field must be selected before a terminal call.
type ReduceBuilder struct {
	dataset    *Dataset
	collection *PredicateCollection
	field      FieldDescriptor
}

// ByField selects the field to reduce over.
func (rb *ReduceBuilder) ByField(field FieldDescriptor) *ReduceBuilder {
	rb.field = field
	return rb
}

// fold runs the evaluation pass and accumulates the field's numeric value
// with exact decimal addition, returning the sum and match count.
func (rb *ReduceBuilder) fold(ctx context.Context) (decimal.Decimal, int, error) {
	if rb.field == nil {
		return decimal.Zero, 0, ErrNoFieldSelected
	}
	sum := decimal.Zero
	count := 0
	err := rb.dataset.withEventEmission("reduce", ReduceStart, ReduceSuccess, ReduceFailed, rb.collection.Len(), nil, func() (int, error) {
		matched, err := rb.collection.Process(ctx, rb.dataset.source, -1)
		if err != nil {
			return 0, err
		}
		for _, record := range matched {
			fieldValue, err := record.Field(rb.field)
			if err != nil {
				return 0, err
			}
			n, err := value.ToNumeric(fieldValue)
			if err != nil {
				return 0, fmt.Errorf("reducing field %q: %w", rb.field.Name(), err)
			}
			sum = sum.Add(n)
			count++
		}
		return count, nil
	})
	if err != nil {
		return decimal.Zero, 0, err
	}
	return sum, count, nil
}

// Sum returns the exact decimal sum of the field across matched records,
// starting from zero.
func (rb *ReduceBuilder) Sum(ctx context.Context) (decimal.Decimal, error) {
	sum, _, err := rb.fold(ctx)
	return sum, err
}

// Average returns the sum divided by the match count, or exactly zero when
// nothing matched.
func (rb *ReduceBuilder) Average(ctx context.Context) (decimal.Decimal, error) {
	sum, count, err := rb.fold(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if count == 0 {
		return decimal.Zero, nil
	}
	return sum.Div(decimal.NewFromInt(int64(count))), nil
}
