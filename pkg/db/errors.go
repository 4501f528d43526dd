package db

import "strings"

// IsUniqueViolation reports whether the error is a unique-constraint
// violation. When constraintName is provided the helper requires that
// constraint to appear in the error text. Matches both the Postgres and the
// sqlite (dev flag) phrasings.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
