package service

import "time"

// Clock supplies the current time. The booking engine compares calendar
// dates in several places (start-date validation, the cancellation
// window, the due-notification job), so "now" is injected rather than
// read from the wall clock, which keeps those comparisons deterministic
// in tests.
type Clock interface {
	Now() time.Time
}

// UTCClock reads the wall clock in UTC. It is the Clock used in
// production.
type UTCClock struct{}

func (UTCClock) Now() time.Time { return time.Now().UTC() }

// DateOf truncates a timestamp to its UTC calendar date (midnight).
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
