package analysis

import (
	"errors"
	"math"
)

var ErrNoOscillation = errors.New("series does not oscillate")

// Oscillation summarizes how a series rings around its resting value.
type Oscillation struct {
	// Peaks are the extreme excursions from rest, one per half cycle.
	Peaks        []float64
	PeakTimes    []float64
	Period       float64
	Frequency    float64
	DampingRatio float64
}

// Analyze finds the half cycles of series around rest. At least two full
// swings past rest are needed.
func Analyze(times, series []float64, rest float64) (*Oscillation, error) {
	if len(times) != len(series) {
		return nil, errors.New("times and series differ in length")
	}

	osc := &Oscillation{}
	sign := 0.0
	peak, peakTime := 0.0, 0.0
	flush := func() {
		if sign != 0 {
			osc.Peaks = append(osc.Peaks, peak)
			osc.PeakTimes = append(osc.PeakTimes, peakTime)
		}
	}
	for i, v := range series {
		d := v - rest
		if d == 0 {
			continue
		}
		s := math.Copysign(1, d)
		if s != sign {
			flush()
			sign, peak, peakTime = s, 0, times[i]
		}
		if math.Abs(d) > math.Abs(peak) {
			peak, peakTime = d, times[i]
		}
	}
	// the lobe still open at the end is dropped: it may not have peaked

	// the first lobe is the approach, not a swing
	if len(osc.Peaks) > 0 {
		osc.Peaks, osc.PeakTimes = osc.Peaks[1:], osc.PeakTimes[1:]
	}
	if len(osc.Peaks) < 2 {
		return osc, ErrNoOscillation
	}

	n := len(osc.PeakTimes) - 1
	osc.Period = 2 * (osc.PeakTimes[n] - osc.PeakTimes[0]) / float64(n)
	osc.Frequency = 1 / osc.Period

	// logarithmic decrement over a half cycle
	delta := 2 * math.Log(math.Abs(osc.Peaks[0]/osc.Peaks[1]))
	osc.DampingRatio = delta / math.Sqrt(4*math.Pi*math.Pi+delta*delta)
	return osc, nil
}
