// Package viz hosts the cart and bob in a terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live simulation with a braille canvas and stats panel
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [RunInteractive]: preset menu in front of [Model]
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	A/D   - Push the cart left/right (shift to boost)
//	R     - Reset to initial state
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// Terminals report key presses but not releases, so a press holds its key
// for a short while and auto-repeat keeps it held.
package viz
