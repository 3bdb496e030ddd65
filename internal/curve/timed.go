package curve

import "github.com/san-kum/motion/internal/vector"

// Timed interpolates from one value to another over a fixed duration.
type Timed[V vector.Vector[V]] struct {
	from, to V
	duration float64
	easing   Easing
	elapsed  float64

	last      V
	lastDelta float64
}

// NewTimed builds a curve. A nil easing is linear; a duration <= 0 finishes
// on the first Advance and reports to from the start.
func NewTimed[V vector.Vector[V]](from, to V, duration float64, easing Easing) *Timed[V] {
	if easing == nil {
		easing = Linear
	}
	return &Timed[V]{
		from:     from,
		to:       to,
		duration: duration,
		easing:   easing,
		last:     from,
	}
}

// Advance moves the curve forward by dt seconds; time never runs backwards.
func (c *Timed[V]) Advance(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	c.last = c.Value()
	c.lastDelta = dt
	c.elapsed += dt
}

func (c *Timed[V]) Value() V {
	if c.Finished() {
		return c.to
	}
	return c.from.Interpolated(c.to, c.easing(c.Progress()))
}

// Progress is the elapsed fraction clamped to [0,1].
func (c *Timed[V]) Progress() float64 {
	if c.duration <= 0 {
		return 1
	}
	return min(c.elapsed/c.duration, 1)
}

func (c *Timed[V]) Finished() bool {
	return c.duration <= 0 || c.elapsed >= c.duration
}

// Velocity is always zero: timed curves carry no physical velocity.
func (c *Timed[V]) Velocity() V {
	var zero V
	return zero
}

// MeasuredVelocity estimates the rate of change over the last Advance. It is
// opt-in: pass it explicitly when handing a curve's motion to a simulation.
func (c *Timed[V]) MeasuredVelocity() V {
	if c.lastDelta <= 0 {
		var zero V
		return zero
	}
	return c.Value().Sub(c.last).Scale(1 / c.lastDelta)
}

func (c *Timed[V]) From() V { return c.from }

func (c *Timed[V]) To() V { return c.to }

func (c *Timed[V]) Duration() float64 { return c.duration }

func (c *Timed[V]) Elapsed() float64 { return c.elapsed }
