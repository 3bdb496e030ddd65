// Package physics provides acceleration laws for the dynamic solver.
//
// Each law implements [dynamo.Function] and [dynamo.Configurable]:
//
//   - [Spring]: damped spring pulling toward a target
//   - [Decay]: velocity decay with linear drag
//
// Constants are plain fields and may be changed while a simulation runs; the
// next tick picks them up. No validation is done: zero or negative constants
// are accepted and simply change the qualitative behavior.
//
//	spring := physics.NewSpring(vector.Vec2{100, 50})
//	spring.Tension = 200
package physics
