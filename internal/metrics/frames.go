package metrics

import "github.com/san-kum/projshift/internal/sim"

// FrameCount counts intermediate frames, excluding the final snap.
type FrameCount struct {
	count int
}

func NewFrameCount() *FrameCount { return &FrameCount{} }

func (c *FrameCount) Name() string { return "frames" }

func (c *FrameCount) Observe(f sim.Frame) {
	if !f.Final {
		c.count++
	}
}

func (c *FrameCount) Value() float64 { return float64(c.count) }
func (c *FrameCount) Reset()         { c.count = 0 }
