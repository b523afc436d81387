package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/transition"
)

// Simulator drives a transitioner from a clock and records every frame.
type Simulator struct {
	tr        *transition.Transitioner
	metrics   []Metric
	observers []Observer
	frames    []Frame
}

func New(tr *transition.Transitioner) *Simulator {
	s := &Simulator{
		tr:        tr,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	tr.AddObserver(s)
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Transitioner() *transition.Transitioner { return s.tr }

// OnFrame records f and forwards it to metrics and observers.
func (s *Simulator) OnFrame(f Frame) {
	s.frames = append(s.frames, f)
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
}

// Run starts a transition of cfg.Duration and ticks it with a fixed or
// jittered clock until it finishes. On cancellation the partial result is
// returned with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	var clock Clock = FixedStep{Dt: cfg.Dt}
	if cfg.Jitter > 0 {
		clock = NewJittered(cfg.Dt, cfg.Jitter, cfg.Seed)
	}
	return s.RunWithClock(ctx, cfg, clock)
}

func (s *Simulator) RunWithClock(ctx context.Context, cfg Config, clock Clock) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if s.tr.Running() {
		return nil, fmt.Errorf("%w: transition already running", ErrInvalidConfig)
	}

	s.frames = s.frames[:0]
	for _, m := range s.metrics {
		m.Reset()
	}

	host := s.tr.Host()
	result := &Result{
		StartMode: host.Mode(),
		Metrics:   make(map[string]float64),
		Duration:  cfg.Duration,
	}

	s.tr.StartTransition(cfg.Duration)

	var runErr error
	for s.tr.Running() {
		if err := ctx.Err(); err != nil {
			runErr = &RunError{Frames: result.FramesTaken, Elapsed: s.tr.State().Elapsed, Wrapped: err}
			break
		}
		if result.FramesTaken >= cfg.MaxFrames {
			runErr = &RunError{Frames: result.FramesTaken, Elapsed: s.tr.State().Elapsed, Wrapped: ErrFrameBudget}
			break
		}
		s.tr.Tick(clock.Next())
		result.FramesTaken++
	}

	result.Frames = append(make([]Frame, 0, len(s.frames)), s.frames...)
	result.FinalMode = host.Mode()
	result.FinalMatrix = host.ProjectionMatrix()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		logging.Logger().Warn("run stopped early", "frames", result.FramesTaken, "err", runErr)
	}
	return result, runErr
}

func (s *Simulator) validateConfig(cfg Config) error {
	if math.IsNaN(cfg.Duration) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be finite, got %f", ErrInvalidConfig, cfg.Duration)
	}
	if cfg.Duration > 0 && !(cfg.Dt > 0 && !math.IsInf(cfg.Dt, 1)) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.MaxFrames <= 0 {
		return fmt.Errorf("%w: max frames must be positive, got %d", ErrInvalidConfig, cfg.MaxFrames)
	}
	if !(cfg.Jitter >= 0 && cfg.Jitter < 1) {
		return fmt.Errorf("%w: jitter must be in [0, 1), got %f", ErrInvalidConfig, cfg.Jitter)
	}
	return nil
}
