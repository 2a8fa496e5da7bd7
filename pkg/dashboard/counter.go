package dashboard

import (
	"math"
	"time"
)

// Stat counters roll up from zero over CounterDuration in CounterFrame steps.
const (
	CounterDuration = 2 * time.Second
	CounterFrame    = 16 * time.Millisecond
)

// Counter produces the intermediate values of a rolling stat number.
type Counter struct {
	Target int
	frame  int
}

// Frames is the number of steps needed to reach the target.
func (c *Counter) Frames() int {
	return int(math.Ceil(float64(CounterDuration) / float64(CounterFrame)))
}

// Value returns the number to display for the current frame.
func (c *Counter) Value() int {
	if c.Target <= 0 {
		return c.Target
	}
	v := float64(c.Target) * float64(c.frame) / (float64(CounterDuration) / float64(CounterFrame))
	if v >= float64(c.Target) {
		return c.Target
	}
	return int(math.Floor(v))
}

// Done reports whether the counter shows its target.
func (c *Counter) Done() bool {
	return c.Value() == c.Target
}

// Step advances one frame and returns the new value.
func (c *Counter) Step() int {
	if !c.Done() {
		c.frame++
	}
	return c.Value()
}
