package transition

import (
	"math"

	"github.com/san-kum/projshift/internal/logging"
	"github.com/san-kum/projshift/internal/projection"
)

// DefaultDuration is the transition length used by Start.
const DefaultDuration = 1.0

// completionEpsilon absorbs summation error so that n ticks of duration/n
// finish on the n-th tick.
const completionEpsilon = 1e-9

type Phase int

const (
	Inactive Phase = iota
	Running
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "inactive"
}

// State is a snapshot of a transition. The zero value is the inactive state.
type State struct {
	Phase     Phase
	From      projection.Matrix
	To        projection.Matrix
	StartMode projection.Mode
	Elapsed   float64 // fraction of Duration covered, in [0, 1) while running
	Duration  float64
	Time      float64 // seconds fed through Tick
	Frames    int
}

// Frame is one step of a transition as seen by observers.
type Frame struct {
	Index     int
	Delta     float64
	Time      float64
	Fraction  float64
	Eased     float64
	StartMode projection.Mode
	Matrix    projection.Matrix
	Final     bool
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

type Transitioner struct {
	host            Host
	curve           Curve
	defaultDuration float64
	observers       []Observer
	state           State
}

type Option func(*Transitioner)

func WithCurve(c Curve) Option {
	return func(t *Transitioner) { t.curve = c }
}

func WithDefaultDuration(d float64) Option {
	return func(t *Transitioner) { t.defaultDuration = d }
}

func WithObserver(o Observer) Option {
	return func(t *Transitioner) { t.observers = append(t.observers, o) }
}

func New(host Host, opts ...Option) *Transitioner {
	t := &Transitioner{
		host:            host,
		curve:           DefaultCurve,
		defaultDuration: DefaultDuration,
		observers:       make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transitioner) AddObserver(o Observer) { t.observers = append(t.observers, o) }

func (t *Transitioner) Host() Host               { return t.host }
func (t *Transitioner) State() State             { return t.state }
func (t *Transitioner) Phase() Phase             { return t.state.Phase }
func (t *Transitioner) Running() bool            { return t.state.Phase == Running }
func (t *Transitioner) Curve() Curve             { return t.curve }
func (t *Transitioner) SetCurve(c Curve)         { t.curve = c }
func (t *Transitioner) DefaultDuration() float64 { return t.defaultDuration }

func (t *Transitioner) SetDefaultDuration(d float64) { t.defaultDuration = d }

// Start begins a transition of the default duration.
func (t *Transitioner) Start() {
	t.StartTransition(t.defaultDuration)
}

// StartTransition begins animating towards the opposite projection mode.
// It is a no-op while a transition is running. A duration <= 0, NaN or
// +Inf switches modes immediately without producing intermediate frames.
func (t *Transitioner) StartTransition(duration float64) {
	log := logging.Logger()
	if t.Running() {
		log.Debug("transition already running, start ignored",
			"elapsed", t.state.Elapsed, "requested", duration)
		return
	}

	start := t.host.Mode()
	if !(duration > 0) || math.IsInf(duration, 1) {
		log.Info("instant projection switch", "from", start, "to", start.Opposite())
		t.state = State{StartMode: start}
		t.finalize(0, 0)
		return
	}

	from := t.host.ProjectionMatrix()
	to := targetMatrix(t.host, start.Opposite())

	t.state = State{
		Phase:     Running,
		From:      from,
		To:        to,
		StartMode: start,
		Duration:  duration,
	}
	log.Info("transition started", "from", start, "to", start.Opposite(), "duration", duration)
}

// Tick advances a running transition by deltaTime seconds, writes the new
// matrix to the host and returns the frame. It reports false when no
// transition is running. The finishing tick returns the host's native matrix
// for the new mode, not an interpolation endpoint.
func (t *Transitioner) Tick(deltaTime float64) (Frame, bool) {
	if !t.Running() {
		return Frame{}, false
	}
	if !(deltaTime > 0) {
		deltaTime = 0
	}

	s := &t.state
	s.Elapsed += deltaTime / s.Duration
	s.Time += deltaTime
	s.Frames++

	if s.Elapsed >= 1-completionEpsilon {
		return t.finalize(deltaTime, s.Frames-1), true
	}

	d := t.curve.Factor(s.StartMode, s.Elapsed)
	m := projection.RowwiseLerp(s.From, s.To, d)
	t.host.SetProjectionMatrix(m)

	f := Frame{
		Index:     s.Frames - 1,
		Delta:     deltaTime,
		Time:      s.Time,
		Fraction:  s.Elapsed,
		Eased:     d,
		StartMode: s.StartMode,
		Matrix:    m,
	}
	t.notify(f)
	return f, true
}

// Cancel finishes a running transition immediately in the target mode.
func (t *Transitioner) Cancel() {
	if !t.Running() {
		return
	}
	logging.Logger().Info("transition canceled", "elapsed", t.state.Elapsed)
	t.finalize(0, t.state.Frames)
}

func (t *Transitioner) finalize(delta float64, index int) Frame {
	s := t.state
	end := s.StartMode.Opposite()

	t.host.SetMode(end)
	t.host.ResetProjectionMatrix()
	m := t.host.ProjectionMatrix()

	f := Frame{
		Index:     index,
		Delta:     delta,
		Time:      s.Time,
		Fraction:  1,
		Eased:     1,
		StartMode: s.StartMode,
		Matrix:    m,
		Final:     true,
	}
	t.state = State{}
	logging.Logger().Info("transition finished", "mode", end, "frames", s.Frames, "time", s.Time)
	t.notify(f)
	return f
}

func (t *Transitioner) notify(f Frame) {
	for _, o := range t.observers {
		o.OnFrame(f)
	}
}
