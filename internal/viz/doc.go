// Package viz renders scenarios in the terminal.
//
// [Model] is a Bubble Tea program that plays a scenario live. It doubles as
// the scheduler's tick source, so frames are only requested while something
// is moving. [Plot] and [PlotMany] chart recorded runs with asciigraph.
//
// # Key Bindings
//
//	Space    - hold or release playback
//	K        - kick the scenario again from its current state
//	R        - restart from the initial state
//	Tab      - select a parameter of the running law
//	Up/Down  - scale the selected parameter by 5%
//	T        - cycle color themes
//	Q        - quit
package viz
