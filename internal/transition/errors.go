package transition

import "errors"

// ErrUnknownCurve indicates a curve name missing from the registry.
var ErrUnknownCurve = errors.New("transition: unknown easing curve")
