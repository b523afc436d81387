// Package projection provides the projection-matrix primitives shared by the
// transition engine and its hosts.
//
//   - [Mode]: orthographic or perspective
//   - [Matrix]: 4x4 projection matrix (mgl64.Mat4)
//   - [RowwiseLerp]: clamped row-by-row interpolation between two matrices
//   - [Params] and [Compute]: native projection for a mode from camera parameters
//   - [Camera]: an in-memory camera implementing the transition host contract
//
// # Example
//
//	cam := projection.NewCamera(projection.DefaultParams(), projection.Orthographic)
//	to := cam.ProjectionMatrixFor(projection.Perspective)
//	mid := projection.RowwiseLerp(cam.ProjectionMatrix(), to, 0.5)
package projection
