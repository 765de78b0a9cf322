package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSection is wrapped by every *InvalidSectionError.
	ErrInvalidSection = errors.New("invalid section")
	// ErrZeroSamplingFrequency reports a division by a zero sampling frequency.
	ErrZeroSamplingFrequency = errors.New("sampling frequency is zero")
	// ErrInvalidSamplingFrequency reports a negative, NaN or infinite sampling frequency.
	ErrInvalidSamplingFrequency = errors.New("invalid sampling frequency")
	// ErrNegativeLength reports a signal length below zero.
	ErrNegativeLength = errors.New("negative signal length")
)

// InvalidSectionError is returned when the requested section index does not address one of
// the sections (index >= count, index < 0 or count < 1).
type InvalidSectionError struct {
	Index int
	Count int
}

func (e *InvalidSectionError) Error() string {
	if e.Count < 1 {
		return fmt.Sprintf("invalid section: section count %d must be at least 1", e.Count)
	}
	return fmt.Sprintf("invalid section: index %d not in [0,%d)", e.Index, e.Count)
}

func (e *InvalidSectionError) Unwrap() error { return ErrInvalidSection }
