package projection

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultFieldOfView      = 60.0
	DefaultOrthographicSize = 5.0
	DefaultAspect           = 16.0 / 9.0
	DefaultNear             = 0.3
	DefaultFar              = 1000.0
)

// Params are the camera parameters a projection matrix is derived from.
// They stay fixed while a transition runs.
type Params struct {
	FieldOfView      float64 // vertical, degrees
	OrthographicSize float64 // half of the vertical view volume
	Aspect           float64
	Near             float64
	Far              float64
}

func DefaultParams() Params {
	return Params{
		FieldOfView:      DefaultFieldOfView,
		OrthographicSize: DefaultOrthographicSize,
		Aspect:           DefaultAspect,
		Near:             DefaultNear,
		Far:              DefaultFar,
	}
}

func (p Params) Validate() error {
	if !finite(p.FieldOfView) || p.FieldOfView <= 0 || p.FieldOfView >= 180 {
		return fmt.Errorf("%w: got %g", ErrInvalidFieldOfView, p.FieldOfView)
	}
	if !finite(p.Aspect) || p.Aspect <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidAspect, p.Aspect)
	}
	if !finite(p.OrthographicSize) || p.OrthographicSize <= 0 {
		return fmt.Errorf("%w: got %g", ErrInvalidSize, p.OrthographicSize)
	}
	if !finite(p.Near) || !finite(p.Far) || p.Near <= 0 || p.Far <= p.Near {
		return fmt.Errorf("%w: near=%g far=%g", ErrInvalidClipPlanes, p.Near, p.Far)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Compute returns the native projection matrix for mode, using OpenGL clip
// conventions (right-handed view space, depth mapped to [-1, 1]).
func Compute(p Params, mode Mode) Matrix {
	if mode == Perspective {
		return mgl64.Perspective(mgl64.DegToRad(p.FieldOfView), p.Aspect, p.Near, p.Far)
	}
	h := p.OrthographicSize
	w := h * p.Aspect
	return mgl64.Ortho(-w, w, -h, h, p.Near, p.Far)
}

// Camera is an in-memory camera. Its projection matrix is derived from its
// mode and parameters unless a custom matrix has been installed with
// SetProjectionMatrix; ResetProjectionMatrix drops the custom matrix.
type Camera struct {
	params Params
	mode   Mode
	custom *Matrix
}

func NewCamera(p Params, mode Mode) *Camera {
	return &Camera{params: p, mode: mode}
}

func (c *Camera) Mode() Mode         { return c.mode }
func (c *Camera) SetMode(m Mode)     { c.mode = m }
func (c *Camera) Params() Params     { return c.params }
func (c *Camera) SetParams(p Params) { c.params = p }
func (c *Camera) IsCustom() bool     { return c.custom != nil }

func (c *Camera) ProjectionMatrix() Matrix {
	if c.custom != nil {
		return *c.custom
	}
	return Compute(c.params, c.mode)
}

func (c *Camera) SetProjectionMatrix(m Matrix) {
	c.custom = &m
}

func (c *Camera) ResetProjectionMatrix() {
	c.custom = nil
}

// ProjectionMatrixFor returns the native matrix the camera would have in
// mode, without touching its displayed state.
func (c *Camera) ProjectionMatrixFor(mode Mode) Matrix {
	return Compute(c.params, mode)
}
