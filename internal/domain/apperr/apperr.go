// Package apperr defines the error taxonomy shared by the usecase layer.
// Repositories and external clients wrap their failures with these
// sentinels so callers can branch on errors.Is without knowing the driver.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a malformed request, e.g. an unknown
	// filter facet. Precondition failure, never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSourceUnavailable marks a failed fetch from an external source
	// (auth, network, missing sheet).
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotFound marks a lookup miss on a required record.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists marks a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
)

// InvalidArgumentf builds an ErrInvalidArgument with request detail.
func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// MarkSourceUnavailable tags err as a source-availability failure while
// keeping the original chain inspectable.
func MarkSourceUnavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

// MarkAlreadyExists tags err as a uniqueness conflict while keeping the
// original chain inspectable.
func MarkAlreadyExists(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
}
