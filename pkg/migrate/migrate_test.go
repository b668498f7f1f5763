package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:migrate_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func TestRunUpEnforcesCompositeKeyAndChecks(t *testing.T) {
	ctx := context.Background()
	sqlDB := openSQLite(t)

	if err := Run(ctx, sqlDB, DialectSQLite, "migrations", "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}

	insert := `INSERT INTO inventory_records (product_id, condition, name, quantity) VALUES (?, ?, ?, ?)`
	if _, err := sqlDB.ExecContext(ctx, insert, 1, "new", "widget", 10); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, insert, 1, "refurbished", "widget", 2); err != nil {
		t.Fatalf("insert second condition: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, insert, 1, "new", "dup", 1); err == nil {
		t.Fatal("expected duplicate composite key to be rejected")
	}
	if _, err := sqlDB.ExecContext(ctx, insert, 2, "new", "neg", -1); err == nil {
		t.Fatal("expected negative quantity to be rejected")
	}
	if _, err := sqlDB.ExecContext(ctx, insert, 3, "broken", "bad", 1); err == nil {
		t.Fatal("expected unknown condition to be rejected")
	}

	var active bool
	if err := sqlDB.QueryRowContext(ctx, `SELECT active FROM inventory_records WHERE product_id = 1 AND condition = 'new'`).Scan(&active); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !active {
		t.Fatal("expected active to default to true")
	}

	if err := Run(ctx, sqlDB, DialectSQLite, "migrations", "down"); err != nil {
		t.Fatalf("goose down: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, `SELECT 1 FROM inventory_records`); err == nil {
		t.Fatal("expected table to be dropped")
	}
}

func TestRunRequiresDBAndDir(t *testing.T) {
	if err := Run(context.Background(), nil, DialectSQLite, "migrations", "up"); err == nil {
		t.Fatal("expected error for nil db")
	}
	if err := Run(context.Background(), openSQLite(t), DialectSQLite, "", "up"); err == nil {
		t.Fatal("expected error for empty dir")
	}
}

func TestDialectFor(t *testing.T) {
	if got := DialectFor("sqlite"); got != DialectSQLite {
		t.Fatalf("expected sqlite3, got %s", got)
	}
	if got := DialectFor(" SQLite "); got != DialectSQLite {
		t.Fatalf("expected sqlite3 for mixed case, got %s", got)
	}
	if got := DialectFor("postgres"); got != DialectPostgres {
		t.Fatalf("expected postgres, got %s", got)
	}
	if got := DialectFor(""); got != DialectPostgres {
		t.Fatalf("expected postgres default, got %s", got)
	}
}

func TestValidateDir(t *testing.T) {
	count, err := ValidateDir("migrations")
	if err != nil {
		t.Fatalf("repo migrations should validate: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one migration")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename error")
	}

	dir = t.TempDir()
	body := "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose Down\n"
	if err := os.WriteFile(filepath.Join(dir, "20260101000000_unbalanced.sql"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ValidateDir(dir); err == nil || !strings.Contains(err.Error(), "StatementBegin") {
		t.Fatalf("expected unbalanced statement error, got %v", err)
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	path, err := createAt(dir, "Add Restock Index!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20260301120000_add_restock_index.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	if _, err := createAt(dir, "Add Restock Index!", now); err == nil {
		t.Fatal("expected duplicate migration error")
	}
	if _, err := createAt(dir, "!!!", now); err == nil {
		t.Fatal("expected empty sanitized name error")
	}

	count, err := ValidateDir(dir)
	if err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 migration, got %d", count)
	}
}
