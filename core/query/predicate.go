package query

import (
	"fmt"
	"strings"

	"github.com/asaidimu/go-sift/core/value"
)

// OperationKind defines the set of comparison operations a predicate node can
// perform against a field.
type OperationKind string

// Supported operation kinds.
const (
	OperationEqual        OperationKind = "eq"
	OperationNotEqual     OperationKind = "neq"
	OperationLessThan     OperationKind = "lt"
	OperationLessEqual    OperationKind = "lte"
	OperationGreaterThan  OperationKind = "gt"
	OperationGreaterEqual OperationKind = "gte"
	OperationIsIn         OperationKind = "in"
	OperationIsNotIn      OperationKind = "nin"
)

// RelationKind is the boolean combinator linking a predicate node's result to
// the cumulative result of the nodes evaluated before it.
type RelationKind string

// Supported relation kinds. RelationAnd is in force until a chain selects
// otherwise.
const (
	RelationAnd RelationKind = "and"
	RelationOr  RelationKind = "or"
)

// PredicateNode is one atomic field comparison: the field it targets, the
// operand to compare against, the operation to perform, and the relation in
// force when the node was added. Nodes are immutable once created.
type PredicateNode struct {
	Field     FieldDescriptor
	Operand   value.Value
	Operation OperationKind
	Relation  RelationKind
}

// key returns a canonical encoding of the node over all four fields, used for
// structural deduplication of the node set.
func (n PredicateNode) key() string {
	return strings.Join([]string{
		n.Field.Name(),
		string(n.Operation),
		string(n.Relation),
		n.Operand.Key(),
	}, "\x1f")
}

// evaluate computes the node's boolean result against a field value fetched
// from a record.
func (n PredicateNode) evaluate(fieldValue value.Value) (bool, error) {
	switch n.Operation {
	case OperationIsIn:
		return value.ContainedIn(fieldValue, n.Operand)
	case OperationIsNotIn:
		contained, err := value.ContainedIn(fieldValue, n.Operand)
		if err != nil {
			return false, err
		}
		return !contained, nil
	}

	cmp, err := value.Compare(fieldValue, n.Operand)
	if err != nil {
		return false, err
	}
	switch n.Operation {
	case OperationEqual:
		return cmp == 0, nil
	case OperationNotEqual:
		return cmp != 0, nil
	case OperationLessThan:
		return cmp < 0, nil
	case OperationLessEqual:
		return cmp <= 0, nil
	case OperationGreaterThan:
		return cmp > 0, nil
	case OperationGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unsupported operation kind: %s", n.Operation)
	}
}
