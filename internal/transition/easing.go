package transition

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/projshift/internal/projection"
)

// Easing maps a linear time fraction in [0, 1] to an interpolation factor.
type Easing func(fraction float64) float64

func Linear(f float64) float64 { return f }

// EaseIn starts slowly: f².
func EaseIn(f float64) float64 { return f * f }

// EaseOut starts quickly: √f.
func EaseOut(f float64) float64 { return math.Sqrt(f) }

func SmoothStep(f float64) float64 { return f * f * (3 - 2*f) }

// Curve picks an easing per transition direction.
type Curve struct {
	FromOrthographic Easing
	FromPerspective  Easing
}

// DefaultCurve eases in when leaving orthographic and out when leaving
// perspective, which gives a matched perceived speed in both directions.
var DefaultCurve = Curve{FromOrthographic: EaseIn, FromPerspective: EaseOut}

// Factor returns the clamped interpolation factor for a transition that
// started in start and has covered fraction of its duration.
func (c Curve) Factor(start projection.Mode, fraction float64) float64 {
	f := projection.Clamp01(fraction)
	ease := c.FromPerspective
	if start == projection.Orthographic {
		ease = c.FromOrthographic
	}
	if ease == nil {
		ease = Linear
	}
	return projection.Clamp01(ease(f))
}

var curves = map[string]Curve{
	"asymmetric":   DefaultCurve,
	"linear":       {FromOrthographic: Linear, FromPerspective: Linear},
	"smooth":       {FromOrthographic: SmoothStep, FromPerspective: SmoothStep},
	"symmetric-in": {FromOrthographic: EaseIn, FromPerspective: EaseIn},
}

// DefaultCurveName names DefaultCurve in the registry.
const DefaultCurveName = "asymmetric"

func LookupCurve(name string) (Curve, error) {
	if name == "" {
		return DefaultCurve, nil
	}
	c, ok := curves[name]
	if !ok {
		return Curve{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownCurve, name, CurveNames())
	}
	return c, nil
}

func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
