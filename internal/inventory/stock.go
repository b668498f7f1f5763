package inventory

import (
	"fmt"
	"time"

	"github.com/angelmondragon/inventory-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

// ParseOrderedQuantity extracts ordered_quantity from a stock adjustment body.
// It must be a positive integer.
func ParseOrderedQuantity(raw map[string]any) (int, error) {
	v, ok := raw[FieldOrderedQuantity]
	if !ok || v == nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "ordered_quantity is required").
			WithDetails(map[string]any{"field": FieldOrderedQuantity})
	}
	n, ok := asInt(v)
	if !ok {
		return 0, invalidType(FieldOrderedQuantity, "an integer", v)
	}
	if n <= 0 || n > maxStoredInt {
		return 0, pkgerrors.New(pkgerrors.CodeOutOfRange, "ordered_quantity must be a positive integer").
			WithDetails(map[string]any{"field": FieldOrderedQuantity, "value": n})
	}
	return int(n), nil
}

// Checkout removes ordered units from rec. The record must be active and hold
// at least ordered units; on failure rec is left untouched.
func Checkout(rec *models.InventoryRecord, ordered int, now time.Time) error {
	if err := ensureActive(rec); err != nil {
		return err
	}
	if ordered > rec.Quantity {
		return pkgerrors.New(pkgerrors.CodeOutOfRange,
			fmt.Sprintf("requested quantity %d exceeds available quantity %d", ordered, rec.Quantity)).
			WithDetails(map[string]any{"requested": ordered, "available": rec.Quantity})
	}
	rec.Quantity -= ordered
	rec.UpdatedAt = now
	return nil
}

// Reorder adds ordered units to rec. The record must be active.
func Reorder(rec *models.InventoryRecord, ordered int, now time.Time) error {
	if err := ensureActive(rec); err != nil {
		return err
	}
	if int64(rec.Quantity)+int64(ordered) > maxStoredInt {
		return pkgerrors.New(pkgerrors.CodeOutOfRange,
			fmt.Sprintf("reorder of %d would exceed the maximum quantity", ordered)).
			WithDetails(map[string]any{"requested": ordered, "available": rec.Quantity})
	}
	rec.Quantity += ordered
	rec.UpdatedAt = now
	return nil
}

func ensureActive(rec *models.InventoryRecord) error {
	if rec.Active {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeInactiveRecord,
		fmt.Sprintf("inventory record %s is inactive", KeyOf(rec))).
		WithDetails(map[string]any{"product_id": rec.ProductID, "condition": rec.Condition.String()})
}
