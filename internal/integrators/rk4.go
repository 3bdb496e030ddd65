package integrators

import (
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/vector"
)

// Step advances s by dt under the acceleration law fn.
type Step[V vector.Vector[V]] func(fn dynamo.Function[V], s dynamo.State[V], dt float64) dynamo.State[V]

// RK4 is the classic four-stage Runge-Kutta method applied to value and
// velocity together, with the acceleration evaluated at each stage point.
func RK4[V vector.Vector[V]](fn dynamo.Function[V], s dynamo.State[V], dt float64) dynamo.State[V] {
	half := dt * 0.5

	k1x := s.Velocity
	k1v := fn.Acceleration(s)

	s2 := dynamo.State[V]{
		Value:    s.Value.Add(k1x.Scale(half)),
		Velocity: s.Velocity.Add(k1v.Scale(half)),
	}
	k2x := s2.Velocity
	k2v := fn.Acceleration(s2)

	s3 := dynamo.State[V]{
		Value:    s.Value.Add(k2x.Scale(half)),
		Velocity: s.Velocity.Add(k2v.Scale(half)),
	}
	k3x := s3.Velocity
	k3v := fn.Acceleration(s3)

	s4 := dynamo.State[V]{
		Value:    s.Value.Add(k3x.Scale(dt)),
		Velocity: s.Velocity.Add(k3v.Scale(dt)),
	}
	k4x := s4.Velocity
	k4v := fn.Acceleration(s4)

	dt6 := dt / 6.0
	dx := k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x)
	dv := k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v)

	return dynamo.State[V]{
		Value:    s.Value.Add(dx.Scale(dt6)),
		Velocity: s.Velocity.Add(dv.Scale(dt6)),
	}
}
