package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// The Calculator reads "today" from it once per evaluation.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the host's local time.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
