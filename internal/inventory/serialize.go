package inventory

import (
	"github.com/angelmondragon/inventory-service/pkg/db/models"
	"github.com/angelmondragon/inventory-service/pkg/enums"
)

// RecordDTO is the public projection of an inventory record.
type RecordDTO struct {
	ProductID       int    `json:"product_id"`
	Name            string `json:"name"`
	Condition       string `json:"condition"`
	Quantity        int    `json:"quantity"`
	ReorderQuantity int    `json:"reorder_quantity"`
	RestockLevel    int    `json:"restock_level"`
	Active          bool   `json:"active"`
}

func Serialize(rec *models.InventoryRecord) RecordDTO {
	return RecordDTO{
		ProductID:       rec.ProductID,
		Name:            rec.Name,
		Condition:       rec.Condition.String(),
		Quantity:        rec.Quantity,
		ReorderQuantity: rec.ReorderQuantity,
		RestockLevel:    rec.RestockLevel,
		Active:          rec.Active,
	}
}

func SerializeAll(recs []models.InventoryRecord) []RecordDTO {
	out := make([]RecordDTO, 0, len(recs))
	for i := range recs {
		out = append(out, Serialize(&recs[i]))
	}
	return out
}

// Key returns the composite key of the serialized record.
func (d RecordDTO) Key() Key {
	return Key{ProductID: d.ProductID, Condition: enums.Condition(d.Condition)}
}
