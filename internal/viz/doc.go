// Package viz renders projection transitions in the terminal.
//
//   - [Canvas]: Braille sub-pixel canvas
//   - [Scene] and [ProjectScene]: wireframe geometry pushed through a view and
//     a projection matrix, shared with the raylib window
//   - [Model]: Bubble Tea viewer that owns a camera and its transitioner and
//     acts as the trigger button for transitions
//   - [Menu]: preset picker that launches the viewer
//
// # Key Bindings
//
//	T, Enter, Space - start a transition (the button)
//	C               - cancel (jump to the target mode)
//	+ / -           - lengthen / shorten the next transition
//	N               - cycle easing curve
//	?               - toggle help
//	Q               - quit
package viz
