// Package sim runs acceleration laws in real time.
//
// [Solver] integrates at a fixed [TickLength] regardless of how irregular the
// caller's frame times are. Each Advance runs as many ticks as needed to catch
// up, then linearly interpolates between the last two ticks so the exposed
// value matches the exact elapsed time:
//
//	spring := physics.NewSpring(vector.Vec1{100})
//	s := sim.NewSolver[vector.Vec1](spring, vector.Vec1{0}, vector.Vec1{0})
//	for !s.Settled() {
//	    s.Advance(1.0 / 60)
//	}
//
// Once the law reports convergence the solver snaps to the resting value and
// stops integrating until SetValue, SetVelocity or Use wakes it up.
package sim
