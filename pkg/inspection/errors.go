package inspection

import (
	"errors"
	"fmt"
	"time"
)

// Base error kinds. Entity-specific errors wrap one of these so callers can
// map them to a response status with errors.Is.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

var (
	ErrOwnerNotFound       = fmt.Errorf("vehicle owner %w", ErrNotFound)
	ErrCarNotFound         = fmt.Errorf("car %w", ErrNotFound)
	ErrOfficerNotFound     = fmt.Errorf("inspection officer %w", ErrNotFound)
	ErrBookingNotFound     = fmt.Errorf("booking %w", ErrNotFound)
	ErrAdminNotFound       = fmt.Errorf("admin %w", ErrNotFound)
	ErrAnalyticsNotFound   = fmt.Errorf("analytics record %w", ErrNotFound)
	ErrPublicationNotFound = fmt.Errorf("publication %w", ErrNotFound)
	ErrTemplateNotFound    = fmt.Errorf("template %w", ErrNotFound)
)

// ConflictError reports a duplicate value for a unique field.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Field, e.Value)
}

// Unwrap lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// SlotUnavailableError reports that an officer already has a booking within
// the overlap window around the requested time.
type SlotUnavailableError struct {
	OfficerID string
	At        time.Time
}

func (e *SlotUnavailableError) Error() string {
	return fmt.Sprintf("time slot %s is not available for officer %s", e.At.Format(time.RFC3339), e.OfficerID)
}
