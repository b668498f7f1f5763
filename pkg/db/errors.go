package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/angelmondragon/inventory-service/pkg/errors"
)

// IsUniqueViolation reports whether err is a unique or primary key violation.
// Translated gorm errors always match. Postgres errors are matched on SQLSTATE,
// other driver errors on their message; either must reference constraintName
// when one is provided.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if dump := pkgerrors.Dump(err); dump.UniqueViolation() {
		return constraintName == "" || dump.PGConstraint == constraintName
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
