package types

import (
	"errors"
	"strings"
)

// Store-level errors.
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("record id already exists")
	ErrInvalidID          = errors.New("invalid id")
	ErrStoreNotFound      = errors.New("collection not found")
	ErrStoreClosed        = errors.New("store is closed")
	ErrStorageUnavailable = errors.New("storage engine unavailable")
	ErrDatabaseLocked     = errors.New("database is locked by another session")
)

// Domain-level errors.
var (
	// ErrDuplicate marks a title/name/email/phone collision detected by the
	// services' duplicate-prevention policy.
	ErrDuplicate = errors.New("duplicate record")

	// ErrInvalidStatus marks a status value outside the known set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrBackupInvalid marks a snapshot that failed structural validation;
	// restore aborts before any mutation.
	ErrBackupInvalid = errors.New("invalid backup")
)

// ValidationError aggregates per-field validation messages. It is returned
// by the services when a record fails its validation profile; the record is
// never persisted in that case.
type ValidationError struct {
	Errors   map[string][]string // field name to failing messages, all collected
	Messages []string            // flat "field: message" list in declaration order
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, ", ")
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
