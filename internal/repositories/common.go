package repositories

import "strings"

// isUniqueViolation recognizes unique-constraint errors from both the
// postgres and sqlite drivers. Gorm does not normalize these.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || // postgres 23505
		strings.Contains(msg, "UNIQUE constraint failed") // sqlite
}
