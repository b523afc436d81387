// Package transition animates a host camera's projection between
// orthographic and perspective modes.
//
// A [Transitioner] is a two-phase state machine (Inactive, Running) driven by
// explicit [Transitioner.Tick] calls carrying the seconds elapsed since the
// previous frame. It never blocks or spawns goroutines; suspension between
// frames is the state it holds.
//
// # Thread Safety
//
// Transitioner instances are NOT safe for concurrent use. One transitioner
// owns its host's projection while a transition runs.
package transition
