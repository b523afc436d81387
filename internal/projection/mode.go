package projection

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Orthographic Mode = iota
	Perspective
)

func (m Mode) String() string {
	switch m {
	case Orthographic:
		return "orthographic"
	case Perspective:
		return "perspective"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Opposite returns the mode a transition starting in m ends in.
func (m Mode) Opposite() Mode {
	if m == Orthographic {
		return Perspective
	}
	return Orthographic
}

// ParseMode accepts the full names and the short forms "ortho" and "persp".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orthographic", "ortho":
		return Orthographic, nil
	case "perspective", "persp":
		return Perspective, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}
