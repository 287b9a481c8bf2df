package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("already exists")
	ErrValidation       = errors.New("validation failed")
	ErrCredentialDecode = errors.New("credential could not be decoded")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrForbidden        = errors.New("forbidden")
)

// ResourceResolutionError indicates that one or more required physical tables
// could not be discovered for the current environment. This is fatal and must
// not be retried: it signals a deployment misconfiguration, not a transient
// failure. Callers should abort startup rather than silently deny every
// request.
type ResourceResolutionError struct {
	Missing     []string
	Environment string
}

func (e *ResourceResolutionError) Error() string {
	return fmt.Sprintf("resource resolution failed for environment %q: missing tables for %v", e.Environment, e.Missing)
}

// IsResourceResolutionError reports whether err is a table discovery failure.
func IsResourceResolutionError(err error) bool {
	var rre *ResourceResolutionError
	return errors.As(err, &rre)
}
