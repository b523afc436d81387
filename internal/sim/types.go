package sim

import (
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/transition"
)

type Frame = transition.Frame

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer = transition.Observer

type Config struct {
	Dt        float64 // seconds per tick
	Duration  float64 // transition length in seconds; <= 0 switches instantly
	MaxFrames int
	Jitter    float64 // relative tick jitter in [0, 1)
	Seed      int64
}

func DefaultConfig() Config {
	return Config{
		Dt:        1.0 / 60,
		Duration:  transition.DefaultDuration,
		MaxFrames: 100000,
	}
}

type Result struct {
	Frames      []Frame
	StartMode   projection.Mode
	FinalMode   projection.Mode
	FinalMatrix projection.Matrix
	Metrics     map[string]float64
	FramesTaken int
	Duration    float64
}

// Eased returns the eased factor of every frame, for plotting.
func (r *Result) Eased() []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Eased
	}
	return out
}

// Element returns matrix element (row, col) of every frame.
func (r *Result) Element(row, col int) []float64 {
	out := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Matrix.At(row, col)
	}
	return out
}
