package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks a price series that cannot be analyzed at all.
var ErrInvalidInput = errors.New("invalid input")

// InvalidBarError identifies the bar that made a series malformed.
// Index is -1 when the failure is not tied to a single bar.
type InvalidBarError struct {
	Index  int
	Time   time.Time
	Reason string
}

func (e *InvalidBarError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: bar %d (%s): %s", e.Index, e.Time.Format(time.RFC3339), e.Reason)
}

func (e *InvalidBarError) Unwrap() error { return ErrInvalidInput }
