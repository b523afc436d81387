package transition

import "github.com/san-kum/projshift/internal/projection"

// Host is the camera a Transitioner drives.
type Host interface {
	Mode() projection.Mode
	SetMode(projection.Mode)
	// ResetProjectionMatrix recomputes the projection matrix from the current
	// mode and camera parameters, discarding any installed custom matrix.
	ResetProjectionMatrix()
	ProjectionMatrix() projection.Matrix
	SetProjectionMatrix(projection.Matrix)
}

// AlternateProjector is implemented by hosts that can compute the matrix for
// a hypothetical mode without changing what they display.
type AlternateProjector interface {
	ProjectionMatrixFor(projection.Mode) projection.Matrix
}

// targetMatrix samples the matrix the host would have in mode. Hosts without
// AlternateProjector are flipped to mode, reset, sampled and flipped back.
func targetMatrix(h Host, mode projection.Mode) projection.Matrix {
	if ap, ok := h.(AlternateProjector); ok {
		return ap.ProjectionMatrixFor(mode)
	}
	current := h.Mode()
	h.SetMode(mode)
	h.ResetProjectionMatrix()
	m := h.ProjectionMatrix()
	h.SetMode(current)
	h.ResetProjectionMatrix()
	return m
}
