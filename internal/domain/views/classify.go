package views

import (
	"time"

	"github.com/dentalcare/clinic/internal/platform/clock"
)

// IsUpcoming reports whether t lies strictly after the current time.
// Evaluated fresh on every call, never cached.
func IsUpcoming(clk clock.Clock, t time.Time) bool {
	return t.After(clk.Now())
}

// IsToday reports whether t falls on the current calendar day.
func IsToday(clk clock.Clock, t time.Time) bool {
	return SameDay(clk.Now(), t)
}

// SameDay reports calendar-day equality, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
