package services

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Workflow error taxonomy. Handlers map these to HTTP status codes; anything
// not in this set is treated as a transient backend failure.
var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor's role or ownership does not permit the
	// operation. Rejected before any write.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the operation was attempted from a persisted state
	// that does not permit it (stale status, duplicate rating, lost
	// compare-and-swap). Detected against current database state, never
	// inferred from client-cached state.
	ErrConflict = errors.New("state conflict")
)

// FieldError is a validation failure identifying the offending field.
// Nothing is persisted when one is returned.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewFieldError builds a validation error for a single field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

// isDuplicateKey reports whether err is a unique-constraint violation.
// GORM translates these for both the postgres and sqlite drivers; the pq
// code is checked as well for paths that bypass the translator.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
