// Package clock provides the time source used for timestamp stamping and
// temporal classification. Injecting it keeps anything date-dependent
// testable with a fixed time.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed reports a settable instant, for tests that need time to stand
// still or jump.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// NewFixed returns a Fixed clock at t.
func NewFixed(t time.Time) *Fixed { return &Fixed{T: t} }
