// Package viz renders the training visualizations in the terminal.
//
//   - [Canvas]: braille canvas addressed in field coordinates
//   - [QuantumModel]: Bubble Tea program animating a quantum core
//   - [FramesModel]: Bubble Tea program cycling the noise image grid
//
// # Key Bindings
//
//	Space - Start/Stop training
//	M     - Toggle mode (sandplot/mnist)
//	R     - Reset the quantum core
//	+/-   - Grow/shrink images
//	Q     - Quit
package viz
