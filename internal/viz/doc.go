// Package viz renders drying runs in the terminal.
//
//   - [ProfilePlot]: concentration against radius as an ASCII chart, one
//     series per captured hour
//   - [ReadoutTable]: the five sampled nodes of one checkpoint
//   - [Canvas]: Braille pixel canvas used for the dithered cross-section
//   - [LiveModel]: Bubble Tea program stepping a solver in real time
//   - [Watcher]: solver observer that redraws the profile while a batch
//     run progresses
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Steps per frame
//	R     - Reset to the initial field
//	D     - Toggle the cross-section view
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
