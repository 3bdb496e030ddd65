// Package export renders recorded runs as SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/viz"
)

// Axis selects what a plot axis shows: a value component, a velocity
// component, or time.
type Axis struct {
	Velocity  bool
	Component int
	Time      bool
}

func (a Axis) String() string {
	switch {
	case a.Time:
		return "t"
	case a.Velocity:
		return fmt.Sprintf("v%d", a.Component)
	default:
		return fmt.Sprintf("x%d", a.Component)
	}
}

func (a Axis) sample(r *dynamo.Result, i int) (float64, error) {
	if a.Time {
		return r.Times[i], nil
	}
	row := r.Values[i]
	if a.Velocity {
		row = r.Velocities[i]
	}
	if a.Component < 0 || a.Component >= len(row) {
		return 0, fmt.Errorf("axis %s: %w", a, dynamo.ErrInvalidDimension)
	}
	return row[a.Component], nil
}

// TrajectorySVG draws x against y for every recorded frame.
func TrajectorySVG(r *dynamo.Result, x, y Axis, width, height int, stroke string) (string, error) {
	if len(r.Times) < 2 {
		return "", fmt.Errorf("need at least 2 frames, got %d", len(r.Times))
	}

	xs := make([]float64, len(r.Times))
	ys := make([]float64, len(r.Times))
	var err error
	for i := range r.Times {
		if xs[i], err = x.sample(r, i); err != nil {
			return "", err
		}
		if ys[i], err = y.sample(r, i); err != nil {
			return "", err
		}
	}

	minX, maxX := span(xs)
	minY, maxY := span(ys)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, stroke)

	for i := range xs {
		px := (xs[i] - minX) / (maxX - minX) * float64(width)
		py := float64(height) - (ys[i]-minY)/(maxY-minY)*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", px, py)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", px, py)
		}
	}

	fmt.Fprintf(&sb, `"/>
<text x="4" y="%d" fill="#888888" font-family="monospace" font-size="12">%s / %s</text>
</svg>`, height-4, y, x)
	return sb.String(), nil
}

// span returns the padded range of vs.
func span(vs []float64) (float64, float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs {
		lo, hi = min(lo, v), max(hi, v)
	}
	r := hi - lo
	if r == 0 {
		r = 1
	}
	return lo - r*0.1, hi + r*0.1
}

// CanvasSVG draws every lit dot of a braille canvas as a circle.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	w, h := canvas.Dots()

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, float64(w)*scale, float64(h)*scale, float64(w)*scale, float64(h)*scale)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, scale*0.4)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
