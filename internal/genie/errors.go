package genie

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput     = errors.New("invalid genie input")
	ErrNoVenueFound     = errors.New("no matching venue")
	ErrStoreUnavailable = errors.New("listing store unavailable")
)

type NoVenueFoundError struct {
	Area       string
	GuestCount int
}

func (e *NoVenueFoundError) Error() string {
	return fmt.Sprintf("no matching venue for area %q and %d guests", e.Area, e.GuestCount)
}

func (e *NoVenueFoundError) Is(target error) bool {
	return target == ErrNoVenueFound
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
