package clock

import "time"

// Clock supplies the current time at operation entry. The engine holds no
// independent wall-clock state; time-driven transitions are pure functions
// of the value returned here.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// New returns the system clock
func New() Clock {
	return systemClock{}
}

// Fixed is a clock pinned to a settable instant, for tests
type Fixed struct {
	Current time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Current
}

// Advance moves the fixed clock forward
func (f *Fixed) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
