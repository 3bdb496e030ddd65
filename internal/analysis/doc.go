// Package analysis characterizes recorded motion.
//
//   - [Oscillation]: period and damping ratio of a settling component, from
//     its peaks around the resting value
//   - [PowerSpectrum] and [DominantFrequency]: spectrum of a uniformly
//     sampled series
//
// A spring with tension k and damping c rings at sqrt(k - c*c/4)/(2*pi) Hz
// with damping ratio c/(2*sqrt(k)); Oscillation recovers both from a run:
//
//	osc, err := analysis.Analyze(result.Times, result.Component(0), 100)
package analysis
