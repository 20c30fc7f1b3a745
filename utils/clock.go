package utils

import "time"

// Clock abstracts wall-clock access so time-window guards can be tested
// deterministically. Production code injects RealClock; tests inject a fixed
// or movable clock.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
