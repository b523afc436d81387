package sim

import (
	"math/rand"
	"time"
)

// Clock delivers the seconds elapsed since the previous frame.
type Clock interface {
	Next() float64
}

type FixedStep struct {
	Dt float64
}

func (c FixedStep) Next() float64 { return c.Dt }

// Jittered varies a base step uniformly by up to ±Amount*Dt.
type Jittered struct {
	Dt     float64
	Amount float64
	rng    *rand.Rand
}

func NewJittered(dt, amount float64, seed int64) *Jittered {
	return &Jittered{Dt: dt, Amount: amount, rng: rand.New(rand.NewSource(seed))}
}

func (c *Jittered) Next() float64 {
	return c.Dt * (1 + c.Amount*(2*c.rng.Float64()-1))
}

// WallClock reports real elapsed time between calls.
type WallClock struct {
	now  func() time.Time
	last time.Time
}

func NewWallClock() *WallClock {
	return NewWallClockFunc(time.Now)
}

func NewWallClockFunc(now func() time.Time) *WallClock {
	return &WallClock{now: now, last: now()}
}

func (c *WallClock) Next() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset restarts measurement from the current instant.
func (c *WallClock) Reset() {
	c.last = c.now()
}
