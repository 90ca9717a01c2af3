package clock

import "time"

// Clock supplies the current time in the business timezone. Every date
// derivation ("today", punch timestamps, sweep cutoff) goes through it so
// services stay deterministic under test.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock reading the system time in loc.
func New(loc *time.Location) Clock {
	return &systemClock{loc: loc}
}

func (c *systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *systemClock) Location() *time.Location {
	return c.loc
}

// Fixed is a manually-advanced Clock for tests.
type Fixed struct {
	Time time.Time
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Time: t}
}

func (f *Fixed) Now() time.Time {
	return f.Time
}

func (f *Fixed) Location() *time.Location {
	return f.Time.Location()
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.Time = f.Time.Add(d)
}
