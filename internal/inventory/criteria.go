package inventory

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/angelmondragon/inventory-service/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

// QuantityFilter compares the on-hand quantity against Value.
type QuantityFilter struct {
	Value    int
	Operator enums.Operator
}

// Criteria is a conjunction of optional filters. Nil fields do not constrain.
type Criteria struct {
	ProductID *int
	Name      *string
	Condition *enums.Condition
	Active    *bool
	Quantity  *QuantityFilter
}

// IsEmpty reports whether no filter is set.
func (c Criteria) IsEmpty() bool {
	return c.ProductID == nil && c.Name == nil && c.Condition == nil && c.Active == nil && c.Quantity == nil
}

// Predicate builds the AND of every set filter. An unsupported quantity
// operator makes the whole criteria invalid.
func (c Criteria) Predicate() (sq.Sqlizer, error) {
	and := sq.And{}
	if c.ProductID != nil {
		and = append(and, sq.Eq{"product_id": *c.ProductID})
	}
	if c.Name != nil {
		and = append(and, sq.Eq{"name": *c.Name})
	}
	if c.Condition != nil {
		if !c.Condition.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid filter: unknown condition %q", c.Condition.String())).
				WithDetails(map[string]any{"field": FieldCondition, "allowed": enums.ConditionValues()})
		}
		and = append(and, sq.Eq{"condition": c.Condition.String()})
	}
	if c.Active != nil {
		and = append(and, sq.Eq{"active": *c.Active})
	}
	if c.Quantity != nil {
		pred, err := quantityPredicate(*c.Quantity)
		if err != nil {
			return nil, err
		}
		and = append(and, pred)
	}
	return and, nil
}

func quantityPredicate(f QuantityFilter) (sq.Sqlizer, error) {
	if !f.Operator.IsValid() {
		return nil, UnsupportedOperator(f.Operator.String())
	}
	switch f.Operator {
	case enums.OperatorEqual:
		return sq.Eq{"quantity": f.Value}, nil
	case enums.OperatorLess:
		return sq.Lt{"quantity": f.Value}, nil
	case enums.OperatorLessEqual:
		return sq.LtOrEq{"quantity": f.Value}, nil
	case enums.OperatorGreater:
		return sq.Gt{"quantity": f.Value}, nil
	default:
		return sq.GtOrEq{"quantity": f.Value}, nil
	}
}

// UnsupportedOperator is the invalid-filter outcome for an unknown quantity operator.
func UnsupportedOperator(symbol string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid filter: unsupported operator %q", symbol)).
		WithDetails(map[string]any{"field": "operator", "allowed": enums.OperatorSymbols()})
}
