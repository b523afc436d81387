package projection

import "errors"

// Parameter validation errors.
var (
	// ErrInvalidFieldOfView indicates a perspective field of view outside (0, 180) degrees.
	ErrInvalidFieldOfView = errors.New("projection: field of view must be in (0, 180) degrees")

	// ErrInvalidAspect indicates a non-positive aspect ratio.
	ErrInvalidAspect = errors.New("projection: aspect ratio must be positive")

	// ErrInvalidSize indicates a non-positive orthographic half height.
	ErrInvalidSize = errors.New("projection: orthographic size must be positive")

	// ErrInvalidClipPlanes indicates near/far planes that cannot form a frustum.
	ErrInvalidClipPlanes = errors.New("projection: clip planes require 0 < near < far")

	// ErrUnknownMode indicates an unrecognised projection mode name.
	ErrUnknownMode = errors.New("projection: unknown mode")
)
