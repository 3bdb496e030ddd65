package vector

import "fmt"

// Vector is the constraint satisfied by Vec1, Vec2, Vec3 and Vec4.
type Vector[V any] interface {
	comparable
	Len() int
	At(i int) float64
	With(i int, x float64) V
	Add(o V) V
	Sub(o V) V
	Mul(o V) V
	Div(o V) V
	Scale(s float64) V
	Clamped(lo, hi V) V
	Interpolated(to V, alpha float64) V
}

// Zero returns the zero vector of type V.
func Zero[V Vector[V]]() V {
	var zero V
	return zero
}

// Splat broadcasts s to every component.
func Splat[V Vector[V]](s float64) V {
	var v V
	for i := 0; i < v.Len(); i++ {
		v = v.With(i, s)
	}
	return v
}

// From builds a vector from xs. Missing components stay zero and extra
// values are ignored.
func From[V Vector[V]](xs []float64) V {
	var v V
	for i := 0; i < v.Len() && i < len(xs); i++ {
		v = v.With(i, xs[i])
	}
	return v
}

// Components copies v into a new slice.
func Components[V Vector[V]](v V) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// Within reports whether every component of v lies in [-threshold, threshold].
// A NaN component is never within range.
func Within[V Vector[V]](v V, threshold float64) bool {
	return MaxAbs(v) <= threshold
}

// MaxAbs returns the largest absolute component of v, or NaN if any
// component is NaN.
func MaxAbs[V Vector[V]](v V) float64 {
	m := 0.0
	for i := 0; i < v.Len(); i++ {
		x := v.At(i)
		if x < 0 {
			x = -x
		}
		m = max(m, x)
	}
	return m
}

func checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("vector: index %d out of range [0,%d)", i, n))
	}
}

func clamp(x, lo, hi float64) float64 {
	return max(lo, min(hi, x))
}
