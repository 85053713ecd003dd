// Package viz renders thermalization runs in the terminal.
//
//   - [Model]: bubbletea view that steps a run in batches and draws the box
//   - [Picker]: preset menu that launches a [Model]
//   - [Canvas]: braille dot matrix used for the box projection
//   - [PlotTrace]: asciigraph charts of a stored trace
//
// # Key Bindings
//
//	Space - Pause/Resume
//	S     - Single cycle
//	+/-   - Cycles per frame
//	X/Y/Z - Rotate the box
//	T     - Cycle colour themes
//	?     - Help
package viz
