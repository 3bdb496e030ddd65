// Package vector provides fixed-arity numeric tuples used as animated values.
//
// [Vec1] through [Vec4] are plain float64 arrays, so they copy by value and
// compare with ==. Every method returns a new vector; nothing aliases.
//
//	a := vector.Vec2{0, 0}
//	b := vector.Vec2{10, 20}
//	mid := a.Interpolated(b, 0.5) // {5, 10}
//
// Code that works over any arity takes a type parameter constrained by
// [Vector]:
//
//	func settle[V vector.Vector[V]](v V) bool {
//	    return vector.Within(v, 0.1)
//	}
package vector
