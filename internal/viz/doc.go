// Package viz draws simulation runs in the terminal.
//
// [Model] is a Bubble Tea program that replays a precomputed [Scene]:
//
//   - [NBodyScene] projects bodies through a rotatable [Camera] onto a
//     braille [Canvas] and leaves a short trail behind each body.
//   - [HeatScene] shades the plate on a cold-to-hot ramp ([HeatColor]).
//
// # Key Bindings
//
//	Space - Pause/Resume replay
//	R     - Restart from the first frame
//	[ ]   - Step one frame back or forward
//	< >   - Halve or double replay speed
//	X Y   - Rotate the camera
//	+ -   - Zoom
//	T     - Cycle color themes
//	?     - Show key help
package viz
