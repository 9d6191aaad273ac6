// Package clock supplies the current instant to components that need
// one, keeping it injectable for tests.
package clock

import "time"

// TickInterval is how often views refresh the current-time indicator.
const TickInterval = time.Minute

// Clock provides the current instant.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Fix wraps an instant in a Fixed clock.
func Fix(t time.Time) Fixed { return Fixed{T: t} }
