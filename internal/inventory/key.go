package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/angelmondragon/inventory-service/pkg/db/models"
	"github.com/angelmondragon/inventory-service/pkg/enums"
	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

// Key is the composite identity of an inventory record.
type Key struct {
	ProductID int
	Condition enums.Condition
}

// KeyOf returns the key of a stored record.
func KeyOf(rec *models.InventoryRecord) Key {
	return Key{ProductID: rec.ProductID, Condition: rec.Condition}
}

// ParseKey resolves path segments into a Key. The condition may be given by
// value ("new") or name ("NEW"). Unparseable segments cannot address any
// record and are reported as not found.
func ParseKey(productID, condition string) (Key, error) {
	id, err := strconv.Atoi(strings.TrimSpace(productID))
	if err != nil || id <= 0 {
		return Key{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory record %s/%s not found", productID, condition))
	}
	cond, err := enums.ParseCondition(condition)
	if err != nil {
		return Key{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("inventory record %s/%s not found", productID, condition))
	}
	return Key{ProductID: id, Condition: cond}, nil
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s", k.ProductID, k.Condition)
}

// Path is the canonical resource location of the record.
func (k Key) Path() string {
	return "/inventory/" + k.String()
}
