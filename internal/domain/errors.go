package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core operation surface - match with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")

	// ErrInvalidParent signals that a parent folder reference on a folder
	// create/update failed the existence or ownership check.
	ErrInvalidParent = errors.New("invalid parent folder")

	// ErrInvalidFolder signals that a folder reference on a document failed
	// the existence or ownership check.
	ErrInvalidFolder = errors.New("invalid folder")

	// ErrConflict signals an optimistic-concurrency version mismatch.
	ErrConflict = errors.New("version conflict")

	// ErrDeleteFailed signals a store-level failure during a cascading
	// delete. Non-retryable within the same call; callers must re-query.
	ErrDeleteFailed = errors.New("delete failed")
)

// VersionConflictError reports a lost update detected by a version-checked
// write. The conflict is surfaced as-is; retry policy belongs to the caller.
type VersionConflictError struct {
	EntityType      string
	EntityID        string
	ExpectedVersion int64
}

// Error implements the error interface
func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s %s was modified concurrently (expected version %d)",
		e.EntityType, e.EntityID, e.ExpectedVersion)
}

// Is allows errors.Is() to match against ErrConflict
func (e *VersionConflictError) Is(target error) bool {
	return target == ErrConflict
}
