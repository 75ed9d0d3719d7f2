package pricing

import "time"

// Clock abstracts "now" so promo windows and pricing states can be tested
// against fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock used in production wiring.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a clock pinned to t.
func FixedClock(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }
