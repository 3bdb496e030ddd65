package curve

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/motion/internal/dynamo"
)

// Easing maps elapsed fraction in [0,1] to interpolation progress. It must
// be monotonic with Easing(0) = 0 and Easing(1) = 1.
type Easing func(t float64) float64

func Linear(t float64) float64 { return t }

func EaseIn(t float64) float64 { return t * t }

func EaseOut(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func EaseInCubic(t float64) float64 { return t * t * t }

func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier returns the CSS-style timing function through (0,0), (x0,y0),
// (x1,y1), (1,1). x0 and x1 must lie in [0,1].
func CubicBezier(x0, y0, x1, y1 float64) Easing {
	return func(x float64) float64 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 1
		}

		// Newton's method on B_x(t) = x
		t := x
		for i := 0; i < 8; i++ {
			d := 1 - t
			bx := 3*d*d*t*x0 + 3*d*t*t*x1 + t*t*t
			dxdt := 3*d*d*x0 + 6*d*t*(x1-x0) + 3*t*t*(1-x1)
			if dxdt == 0 {
				break
			}
			t -= (bx - x) / dxdt
			if t <= 0 || t >= 1 {
				break
			}
		}
		t = max(0, min(1, t))

		d := 1 - t
		return 3*d*d*t*y0 + 3*d*t*t*y1 + t*t*t
	}
}

var easings = map[string]Easing{
	"linear":            Linear,
	"ease-in":           EaseIn,
	"ease-out":          EaseOut,
	"ease-in-out":       EaseInOut,
	"ease-in-cubic":     EaseInCubic,
	"ease-out-cubic":    EaseOutCubic,
	"ease-in-out-cubic": EaseInOutCubic,
	"css-ease":          CubicBezier(0.25, 0.1, 0.25, 1),
}

func Lookup(name string) (Easing, error) {
	if name == "" {
		return Linear, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, dynamo.ErrUnknownEasing)
	}
	return e, nil
}

func Names() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
