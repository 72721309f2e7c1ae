package clock

import "time"

// Clock supplies the current time to services so that "now" and the current
// allocation period can be fixed in tests.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func Real() Clock {
	return realClock{}
}

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
