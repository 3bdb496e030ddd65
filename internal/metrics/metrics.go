// Package metrics summarizes recorded trajectories frame by frame.
package metrics

import "math"

// Metric folds every observed frame into a single number.
type Metric interface {
	Name() string
	Observe(value, velocity []float64, t float64)
	Value() float64
	Reset()
}

// Motion returns the metrics that need nothing but the trajectory.
func Motion() []Metric {
	return []Metric{NewPeakSpeed(), NewMeanSpeed(), NewTravel()}
}

type PeakSpeed struct {
	peak float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(value, velocity []float64, t float64) {
	p.peak = math.Max(p.peak, norm(velocity))
}

func (p *PeakSpeed) Value() float64 { return p.peak }

func (p *PeakSpeed) Reset() { p.peak = 0 }

// MeanSpeed averages the speed over every observed frame, including frames
// spent at rest.
type MeanSpeed struct {
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(value, velocity []float64, t float64) {
	m.sum += norm(velocity)
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// Travel is the length of the path the value has traced.
type Travel struct {
	last  []float64
	total float64
}

func NewTravel() *Travel { return &Travel{} }

func (tr *Travel) Name() string { return "travel" }

func (tr *Travel) Observe(value, velocity []float64, t float64) {
	if tr.last != nil && len(tr.last) == len(value) {
		d := 0.0
		for i := range value {
			d += (value[i] - tr.last[i]) * (value[i] - tr.last[i])
		}
		tr.total += math.Sqrt(d)
	}
	tr.last = append(tr.last[:0], value...)
}

func (tr *Travel) Value() float64 { return tr.total }

func (tr *Travel) Reset() {
	tr.last = nil
	tr.total = 0
}

// Overshoot is the furthest any component has gone past its target, measured
// along the direction of approach. It only counts while a target is set.
type Overshoot struct {
	from, target []float64
	max          float64
}

func NewOvershoot() *Overshoot { return &Overshoot{} }

// Retarget starts measuring against a new approach. A nil target stops
// measuring until the next call.
func (o *Overshoot) Retarget(from, target []float64) {
	o.from = append(o.from[:0], from...)
	if target == nil {
		o.target = nil
		return
	}
	o.target = append(o.target[:0], target...)
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(value, velocity []float64, t float64) {
	if o.target == nil {
		return
	}
	for i := range value {
		if i >= len(o.target) || i >= len(o.from) {
			break
		}
		dir := o.target[i] - o.from[i]
		if dir == 0 {
			continue
		}
		past := (value[i] - o.target[i]) * math.Copysign(1, dir)
		o.max = math.Max(o.max, past)
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.from, o.target = nil, nil
	o.max = 0
}

func norm(v []float64) float64 {
	s := 0.0
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
