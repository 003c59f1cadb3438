// Package viz draws orbiting systems in the terminal.
//
// [Model] is a Bubble Tea program that steps a system every frame and
// renders precomputed orbit paths and live body positions onto a braille
// [Canvas], with a side panel of distances and phases and a distance
// history chart for the selected planet. [Picker] chooses a preset first.
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Reset to the initial phases
//	Tab    - Select next planet
//	T      - Cycle themes
//	x/X    - Tilt about the X axis
//	y/Y    - Turn about the Y axis
//	+/-    - Zoom
//	0      - Reset the view
//	Q      - Quit
package viz
