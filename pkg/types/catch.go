package types

import (
	"fmt"
	"time"
)

// Catch is a single catch log entry: a species, how many were caught, and
// how many were retained.
type Catch struct {
	Record
	Date     time.Time `json:"date"`
	Species  string    `json:"species"`
	Caught   int       `json:"caught"`
	Retained int       `json:"retained"`
}

// Validate checks the catch invariants: the retained count may not exceed
// the caught count, and the date may not be in the future.
func (c *Catch) Validate() error {
	if c.Retained > c.Caught {
		return fmt.Errorf("%w: %d > %d", ErrRetainedExceedsCaught, c.Retained, c.Caught)
	}
	if c.Date.After(time.Now()) {
		return fmt.Errorf("%w: %s", ErrDateInFuture, c.Date.Format(time.RFC3339))
	}
	return nil
}

// IsComplete reports whether the catch has every field needed for
// submission.
func (c *Catch) IsComplete() bool {
	return c.Species != "" && !c.Date.IsZero() && c.Caught > 0
}

// DateString renders the catch date for display or export.
func (c *Catch) DateString(local bool) string {
	return DateString(c.Date, local)
}
