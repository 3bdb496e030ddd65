package vector

// Vec1 is a 1-component vector. Vec2, Vec3 and Vec4 share its methods; all
// of them are value receivers that return a new vector.
type Vec1 [1]float64

// Splat1 returns a Vec1 with every component set to s.
func Splat1(s float64) Vec1 {
	var v Vec1
	for i := range v {
		v[i] = s
	}
	return v
}

func (v Vec1) Len() int { return 1 }

// At returns component i. It panics outside [0, Len()).
func (v Vec1) At(i int) float64 {
	checkIndex(i, 1)
	return v[i]
}

// With returns a copy of v with component i set to x.
func (v Vec1) With(i int, x float64) Vec1 {
	checkIndex(i, 1)
	v[i] = x
	return v
}

// Add, Sub, Mul and Div work component by component.
func (v Vec1) Add(o Vec1) Vec1 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec1) Sub(o Vec1) Vec1 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec1) Mul(o Vec1) Vec1 {
	for i := range v {
		v[i] *= o[i]
	}
	return v
}

func (v Vec1) Div(o Vec1) Vec1 {
	for i := range v {
		v[i] /= o[i]
	}
	return v
}

func (v Vec1) Scale(s float64) Vec1 {
	for i := range v {
		v[i] *= s
	}
	return v
}

// Clamped limits each component to [lo[i], hi[i]].
func (v Vec1) Clamped(lo, hi Vec1) Vec1 {
	for i := range v {
		v[i] = clamp(v[i], lo[i], hi[i])
	}
	return v
}

// Interpolated returns v + alpha*(to-v). Alpha is not clamped.
func (v Vec1) Interpolated(to Vec1, alpha float64) Vec1 {
	for i := range v {
		v[i] += alpha * (to[i] - v[i])
	}
	return v
}

// Vec2 is a 2-component vector.
type Vec2 [2]float64

// Splat2 returns a Vec2 with every component set to s.
func Splat2(s float64) Vec2 {
	var v Vec2
	for i := range v {
		v[i] = s
	}
	return v
}

func (v Vec2) Len() int { return 2 }

func (v Vec2) At(i int) float64 {
	checkIndex(i, 2)
	return v[i]
}

func (v Vec2) With(i int, x float64) Vec2 {
	checkIndex(i, 2)
	v[i] = x
	return v
}

func (v Vec2) Add(o Vec2) Vec2 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec2) Sub(o Vec2) Vec2 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec2) Mul(o Vec2) Vec2 {
	for i := range v {
		v[i] *= o[i]
	}
	return v
}

func (v Vec2) Div(o Vec2) Vec2 {
	for i := range v {
		v[i] /= o[i]
	}
	return v
}

func (v Vec2) Scale(s float64) Vec2 {
	for i := range v {
		v[i] *= s
	}
	return v
}

func (v Vec2) Clamped(lo, hi Vec2) Vec2 {
	for i := range v {
		v[i] = clamp(v[i], lo[i], hi[i])
	}
	return v
}

func (v Vec2) Interpolated(to Vec2, alpha float64) Vec2 {
	for i := range v {
		v[i] += alpha * (to[i] - v[i])
	}
	return v
}

// Vec3 is a 3-component vector.
type Vec3 [3]float64

// Splat3 returns a Vec3 with every component set to s.
func Splat3(s float64) Vec3 {
	var v Vec3
	for i := range v {
		v[i] = s
	}
	return v
}

func (v Vec3) Len() int { return 3 }

func (v Vec3) At(i int) float64 {
	checkIndex(i, 3)
	return v[i]
}

func (v Vec3) With(i int, x float64) Vec3 {
	checkIndex(i, 3)
	v[i] = x
	return v
}

func (v Vec3) Add(o Vec3) Vec3 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec3) Sub(o Vec3) Vec3 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec3) Mul(o Vec3) Vec3 {
	for i := range v {
		v[i] *= o[i]
	}
	return v
}

func (v Vec3) Div(o Vec3) Vec3 {
	for i := range v {
		v[i] /= o[i]
	}
	return v
}

func (v Vec3) Scale(s float64) Vec3 {
	for i := range v {
		v[i] *= s
	}
	return v
}

func (v Vec3) Clamped(lo, hi Vec3) Vec3 {
	for i := range v {
		v[i] = clamp(v[i], lo[i], hi[i])
	}
	return v
}

func (v Vec3) Interpolated(to Vec3, alpha float64) Vec3 {
	for i := range v {
		v[i] += alpha * (to[i] - v[i])
	}
	return v
}

// Vec4 is a 4-component vector.
type Vec4 [4]float64

// Splat4 returns a Vec4 with every component set to s.
func Splat4(s float64) Vec4 {
	var v Vec4
	for i := range v {
		v[i] = s
	}
	return v
}

func (v Vec4) Len() int { return 4 }

func (v Vec4) At(i int) float64 {
	checkIndex(i, 4)
	return v[i]
}

func (v Vec4) With(i int, x float64) Vec4 {
	checkIndex(i, 4)
	v[i] = x
	return v
}

func (v Vec4) Add(o Vec4) Vec4 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec4) Sub(o Vec4) Vec4 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec4) Mul(o Vec4) Vec4 {
	for i := range v {
		v[i] *= o[i]
	}
	return v
}

func (v Vec4) Div(o Vec4) Vec4 {
	for i := range v {
		v[i] /= o[i]
	}
	return v
}

func (v Vec4) Scale(s float64) Vec4 {
	for i := range v {
		v[i] *= s
	}
	return v
}

func (v Vec4) Clamped(lo, hi Vec4) Vec4 {
	for i := range v {
		v[i] = clamp(v[i], lo[i], hi[i])
	}
	return v
}

func (v Vec4) Interpolated(to Vec4, alpha float64) Vec4 {
	for i := range v {
		v[i] += alpha * (to[i] - v[i])
	}
	return v
}
