package inventory

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/angelmondragon/inventory-service/pkg/config"
	"github.com/angelmondragon/inventory-service/pkg/db"
	"github.com/angelmondragon/inventory-service/pkg/db/models"
	"github.com/angelmondragon/inventory-service/pkg/enums"
	"github.com/angelmondragon/inventory-service/pkg/logger"
	"github.com/angelmondragon/inventory-service/pkg/migrate"
	"github.com/google/uuid"
)

const migrationsDir = "../../pkg/migrate/migrations"

func newTestClient(t *testing.T) *db.Client {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          fmt.Sprintf("file:inventory_%s?mode=memory&cache=shared", uuid.NewString()),
		MaxOpenConns: 1,
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := migrate.Run(ctx, sqlDB, migrate.DialectSQLite, migrationsDir, "up"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{ServiceName: "inventory-test", Output: buf, Format: logger.FormatJSON})
}

func mustCreateRecord(t *testing.T, repo *Repository, productID int, cond enums.Condition, quantity int, active bool) *models.InventoryRecord {
	t.Helper()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := &models.InventoryRecord{
		ProductID:       productID,
		Condition:       cond,
		Name:            fmt.Sprintf("product-%d", productID),
		Quantity:        quantity,
		ReorderQuantity: 5,
		RestockLevel:    2,
		Active:          active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("create record %d/%s: %v", productID, cond, err)
	}
	return rec
}

func intPtr(v int) *int                          { return &v }
func strPtr(v string) *string                    { return &v }
func boolPtr(v bool) *bool                       { return &v }
func condPtr(v enums.Condition) *enums.Condition { return &v }
