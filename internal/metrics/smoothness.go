package metrics

import (
	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
)

// MaxStep is the largest Frobenius distance between consecutive frames.
type MaxStep struct {
	prev    projection.Matrix
	hasPrev bool
	max     float64
}

func NewMaxStep() *MaxStep { return &MaxStep{} }

func (m *MaxStep) Name() string { return "max_step" }

func (m *MaxStep) Observe(f sim.Frame) {
	if m.hasPrev {
		if d := projection.Distance(m.prev, f.Matrix); d > m.max {
			m.max = d
		}
	}
	m.prev, m.hasPrev = f.Matrix, true
}

func (m *MaxStep) Value() float64 { return m.max }

func (m *MaxStep) Reset() {
	m.hasPrev = false
	m.max = 0
}

// EndpointSnap measures the jump from the last interpolated frame to the
// final native matrix. Zero when the transition had no intermediate frames.
type EndpointSnap struct {
	last    projection.Matrix
	hasLast bool
	snap    float64
}

func NewEndpointSnap() *EndpointSnap { return &EndpointSnap{} }

func (e *EndpointSnap) Name() string { return "endpoint_snap" }

func (e *EndpointSnap) Observe(f sim.Frame) {
	if f.Final {
		if e.hasLast {
			e.snap = projection.Distance(e.last, f.Matrix)
		}
		return
	}
	e.last, e.hasLast = f.Matrix, true
}

func (e *EndpointSnap) Value() float64 { return e.snap }

func (e *EndpointSnap) Reset() {
	e.hasLast = false
	e.snap = 0
}

// Monotonicity is the share of frames whose eased factor did not decrease.
type Monotonicity struct {
	prev       float64
	samples    int
	violations int
}

func NewMonotonicity() *Monotonicity { return &Monotonicity{} }

func (m *Monotonicity) Name() string { return "monotonicity" }

func (m *Monotonicity) Observe(f sim.Frame) {
	if m.samples > 0 && f.Eased < m.prev {
		m.violations++
	}
	m.prev = f.Eased
	m.samples++
}

func (m *Monotonicity) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.samples = 0
	m.violations = 0
}

// Default returns the metric set used by the CLI.
func Default() []sim.Metric {
	return []sim.Metric{
		NewFrameCount(),
		NewMaxStep(),
		NewEndpointSnap(),
		NewMonotonicity(),
		NewJitterEnergy(),
	}
}
