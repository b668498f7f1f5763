package validators

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/inventory-service/internal/inventory"
	"github.com/angelmondragon/inventory-service/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

// ParseInventoryCriteria maps list query parameters onto filter criteria.
// The quantity operator defaults to "="; an unknown symbol is the invalid-filter
// outcome.
func ParseInventoryCriteria(values url.Values) (inventory.Criteria, error) {
	var c inventory.Criteria

	if raw := strings.TrimSpace(values.Get("product_id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return c, invalidQuery("product_id", "must be an integer")
		}
		c.ProductID = &id
	}

	if name := values.Get("name"); name != "" {
		c.Name = &name
	}

	if raw := strings.TrimSpace(values.Get("condition")); raw != "" {
		cond, err := enums.ParseCondition(raw)
		if err != nil {
			return c, invalidQuery("condition", "must be one of "+strings.Join(enums.ConditionValues(), ", "))
		}
		c.Condition = &cond
	}

	if raw := strings.TrimSpace(values.Get("active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return c, invalidQuery("active", "must be true or false")
		}
		c.Active = &active
	}

	if raw := strings.TrimSpace(values.Get("quantity")); raw != "" {
		quantity, err := strconv.Atoi(raw)
		if err != nil {
			return c, invalidQuery("quantity", "must be an integer")
		}
		op := enums.OperatorEqual
		if symbol := strings.TrimSpace(values.Get("operator")); symbol != "" {
			if op, err = enums.ParseOperator(symbol); err != nil {
				return c, inventory.UnsupportedOperator(symbol)
			}
		}
		c.Quantity = &inventory.QuantityFilter{Value: quantity, Operator: op}
	}

	return c, nil
}

func invalidQuery(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "query parameter "+field+" "+msg).
		WithDetails(map[string]any{"field": field})
}
