package inventory

import (
	"fmt"
	"time"

	"github.com/angelmondragon/inventory-service/pkg/db/models"
	"github.com/angelmondragon/inventory-service/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const (
	FieldProductID       = "product_id"
	FieldCondition       = "condition"
	FieldName            = "name"
	FieldQuantity        = "quantity"
	FieldReorderQuantity = "reorder_quantity"
	FieldRestockLevel    = "restock_level"
	FieldActive          = "active"
	FieldOrderedQuantity = "ordered_quantity"

	MaxNameLength = 63
)

var validate = validator.New()

// Draft is a validated, presence-tagged view of untrusted record input. A nil
// field was absent (or null) and means "leave unchanged".
type Draft struct {
	Key             *Key
	Name            *string
	Quantity        *int
	ReorderQuantity *int
	RestockLevel    *int
	Active          *bool
}

// Deserialize validates raw input into a Draft.
//
// The composite key is only populated when product_id is a positive integer
// and condition names a known Condition; otherwise Key is nil and callers
// decide whether that is an error. An empty name is treated as absent.
// Stock counters accept zero as an explicit value.
func Deserialize(raw map[string]any) (Draft, error) {
	var d Draft
	if len(raw) == 0 {
		return d, pkgerrors.New(pkgerrors.CodeValidation, "bad or no data")
	}

	d.Key = deserializeKey(raw)

	if v, ok := raw[FieldName]; ok && !isFalsy(v) {
		name, isString := v.(string)
		if !isString {
			return Draft{}, invalidType(FieldName, "a string", v)
		}
		if err := validate.Var(name, fmt.Sprintf("max=%d", MaxNameLength)); err != nil {
			return Draft{}, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("invalid name: must be at most %d characters", MaxNameLength)).
				WithDetails(map[string]any{"field": FieldName, "max": MaxNameLength})
		}
		d.Name = &name
	}

	if v, ok := raw[FieldActive]; ok && v != nil {
		active, isBool := v.(bool)
		if !isBool {
			return Draft{}, invalidType(FieldActive, "a boolean", v)
		}
		d.Active = &active
	}

	counters := []struct {
		field string
		dest  **int
	}{
		{FieldQuantity, &d.Quantity},
		{FieldReorderQuantity, &d.ReorderQuantity},
		{FieldRestockLevel, &d.RestockLevel},
	}
	for _, c := range counters {
		v, ok := raw[c.field]
		if !ok || v == nil {
			continue
		}
		n, err := nonNegativeInt(c.field, v)
		if err != nil {
			return Draft{}, err
		}
		*c.dest = &n
	}

	return d, nil
}

func deserializeKey(raw map[string]any) *Key {
	id, ok := asInt(raw[FieldProductID])
	if !ok || id <= 0 || id > maxStoredInt {
		return nil
	}
	s, ok := raw[FieldCondition].(string)
	if !ok {
		return nil
	}
	cond, err := enums.ParseCondition(s)
	if err != nil {
		return nil
	}
	return &Key{ProductID: int(id), Condition: cond}
}

func nonNegativeInt(field string, v any) (int, error) {
	n, ok := asInt(v)
	if !ok {
		return 0, invalidType(field, "an integer", v)
	}
	if n < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeOutOfRange, fmt.Sprintf("%s must not be negative", field)).
			WithDetails(map[string]any{"field": field, "value": n})
	}
	if n > maxStoredInt {
		return 0, pkgerrors.New(pkgerrors.CodeOutOfRange, fmt.Sprintf("%s exceeds %d", field, maxStoredInt)).
			WithDetails(map[string]any{"field": field, "value": n})
	}
	return int(n), nil
}

func invalidType(field, want string, got any) error {
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid %s: must be %s", field, want)).
		WithDetails(map[string]any{"field": field, "type": fmt.Sprintf("%T", got)})
}

// NewRecord builds a record for insertion. The draft must carry a key;
// unspecified counters are zero and active defaults to true.
func (d Draft) NewRecord(now time.Time) (*models.InventoryRecord, error) {
	if d.Key == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"product_id (positive integer) and condition (new, refurbished, return) are required").
			WithDetails(map[string]any{"fields": []string{FieldProductID, FieldCondition}})
	}
	rec := &models.InventoryRecord{
		ProductID: d.Key.ProductID,
		Condition: d.Key.Condition,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	d.Apply(rec)
	return rec, nil
}

// Apply copies every present field onto rec. The key is never changed.
func (d Draft) Apply(rec *models.InventoryRecord) {
	if d.Name != nil {
		rec.Name = *d.Name
	}
	if d.Quantity != nil {
		rec.Quantity = *d.Quantity
	}
	if d.ReorderQuantity != nil {
		rec.ReorderQuantity = *d.ReorderQuantity
	}
	if d.RestockLevel != nil {
		rec.RestockLevel = *d.RestockLevel
	}
	if d.Active != nil {
		rec.Active = *d.Active
	}
}
