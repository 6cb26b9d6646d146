package services

import (
	"errors"
	"strings"
)

// Error taxonomy for the case lifecycle engine. Callers classify with
// errors.Is; handlers map each sentinel to an error code + message pair.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrNoColumns  = errors.New("board has no columns")
	ErrConflict   = errors.New("conflict")
)

// isUniqueViolation reports whether err is a uniqueness-constraint
// failure from the sqlite driver. Used to turn rare slug/quote-id
// collisions and lazy-column creation races into retryable conditions.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
