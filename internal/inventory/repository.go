package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/inventory-service/pkg/db/models"
	"gorm.io/gorm"
)

// ErrStaleRecord is returned by SaveQuantity when the stored quantity moved
// since the record was read.
var ErrStaleRecord = errors.New("inventory record changed concurrently")

// Repository is the gorm-backed persistence gateway for inventory records.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func whereKey(db *gorm.DB, key Key) *gorm.DB {
	return db.Where("product_id = ? AND condition = ?", key.ProductID, key.Condition.String())
}

// FindByKey returns nil, nil when no record has the key.
func (r *Repository) FindByKey(ctx context.Context, key Key) (*models.InventoryRecord, error) {
	var rec models.InventoryRecord
	err := whereKey(r.db.WithContext(ctx), key).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]models.InventoryRecord, error) {
	var recs []models.InventoryRecord
	if err := r.db.WithContext(ctx).Order("product_id, condition").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// FilterBy returns every record matching all of the criteria.
func (r *Repository) FilterBy(ctx context.Context, criteria Criteria) ([]models.InventoryRecord, error) {
	pred, err := criteria.Predicate()
	if err != nil {
		return nil, err
	}
	where, args, err := pred.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building filter: %w", err)
	}
	var recs []models.InventoryRecord
	if err := r.db.WithContext(ctx).Where(where, args...).Order("product_id, condition").Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

// Create inserts rec. A duplicate key surfaces as gorm.ErrDuplicatedKey when
// the connection translates errors.
func (r *Repository) Create(ctx context.Context, rec *models.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Save writes every mutable column of rec.
func (r *Repository) Save(ctx context.Context, rec *models.InventoryRecord) error {
	return whereKey(r.db.WithContext(ctx).Model(&models.InventoryRecord{}), KeyOf(rec)).
		Updates(map[string]any{
			"name":             rec.Name,
			"quantity":         rec.Quantity,
			"reorder_quantity": rec.ReorderQuantity,
			"restock_level":    rec.RestockLevel,
			"active":           rec.Active,
			"updated_at":       rec.UpdatedAt,
		}).Error
}

// SaveQuantity persists a stock mutation guarded on the previously read
// quantity and activity.
func (r *Repository) SaveQuantity(ctx context.Context, rec *models.InventoryRecord, previous int) error {
	res := whereKey(r.db.WithContext(ctx).Model(&models.InventoryRecord{}), KeyOf(rec)).
		Where("quantity = ? AND active = ?", previous, true).
		Updates(map[string]any{
			"quantity":   rec.Quantity,
			"updated_at": rec.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleRecord
	}
	return nil
}

// Delete removes the record with key and reports how many rows went away.
// Deleting a missing key is not an error.
func (r *Repository) Delete(ctx context.Context, key Key) (int64, error) {
	res := whereKey(r.db.WithContext(ctx), key).Delete(&models.InventoryRecord{})
	return res.RowsAffected, res.Error
}
