// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// uniqueViolationCode is the Postgres error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

// serializationFailureCode is the Postgres error code raised when a
// serializable transaction conflicts with a concurrent writer.
const serializationFailureCode = "40001"

// isUniqueViolation reports whether err is a unique constraint violation. The
// string fallback covers the sqlite driver used by the in-memory test store.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolationCode
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isSerializationFailure reports whether err is a serialization conflict. The
// failed transaction can be retried.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == serializationFailureCode
}
