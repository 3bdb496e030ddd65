// Package dynamo defines the state and contracts shared by every animation
// driver.
//
//   - [State]: value and velocity of one simulation at one instant
//   - [Function]: acceleration law plus convergence test
//   - [Convergence]: the answer of a convergence test
//   - [Configurable]: runtime retuning of a law's constants
//   - [Result]: a recorded trajectory
//
// # Fixed points
//
// A [Function] that reports [Converge] for some state must keep reporting it
// for the settled value with zero velocity. The solver relies on this to stay
// idle once settled.
package dynamo
