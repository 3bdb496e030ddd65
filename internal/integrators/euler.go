package integrators

import (
	"fmt"

	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/vector"
)

// Euler is explicit first-order integration. Stiff springs overshoot with
// it at animation tick rates; it exists for comparison runs.
func Euler[V vector.Vector[V]](fn dynamo.Function[V], s dynamo.State[V], dt float64) dynamo.State[V] {
	a := fn.Acceleration(s)
	return dynamo.State[V]{
		Value:    s.Value.Add(s.Velocity.Scale(dt)),
		Velocity: s.Velocity.Add(a.Scale(dt)),
	}
}

func Names() []string {
	return []string{"rk4", "euler"}
}

func ByName[V vector.Vector[V]](name string) (Step[V], error) {
	switch name {
	case "", "rk4":
		return RK4[V], nil
	case "euler":
		return Euler[V], nil
	default:
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownIntegrator)
	}
}
