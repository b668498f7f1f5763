package models

import (
	"time"

	"github.com/angelmondragon/inventory-service/pkg/enums"
)

// InventoryRecord is stock on hand for one product in one condition.
// (product_id, condition) is the composite primary key.
type InventoryRecord struct {
	ProductID       int             `gorm:"column:product_id;primaryKey;autoIncrement:false"`
	Condition       enums.Condition `gorm:"column:condition;type:varchar(16);primaryKey"`
	Name            string          `gorm:"column:name;size:63;not null;default:''"`
	Quantity        int             `gorm:"column:quantity;not null;default:0"`
	ReorderQuantity int             `gorm:"column:reorder_quantity;not null;default:0"`
	RestockLevel    int             `gorm:"column:restock_level;not null;default:0"`
	Active          bool            `gorm:"column:active;not null"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (InventoryRecord) TableName() string {
	return "inventory_records"
}
