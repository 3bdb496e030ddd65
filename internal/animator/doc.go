// Package animator drives a single animated value.
//
// An [Animator] is always in exactly one of three states:
//
//   - [AtRest]: holding a value
//   - [RunningCurve]: following a timed curve
//   - [RunningSimulation]: integrating an acceleration law
//
// Starting an animation returns its completion signal, which closes exactly
// once with true when the animation runs to the end or false when something
// replaces it first:
//
//	a := animator.New(vector.Vec2{0, 0})
//	a.Changes().Observe(func(v vector.Vec2) { draw(v) })
//	a.Simulate(physics.NewSpring(vector.Vec2{100, 40})).Observe(func(finished bool) {
//	    ...
//	})
//	a.Advance(frameSeconds) // once per frame
//
// Observers run synchronously inside Advance and the state-changing methods.
// The new state is always committed before anyone is notified, so observers
// may start, retarget or cancel animations on the same Animator.
package animator
