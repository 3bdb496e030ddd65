// Package experiment plays scenario configs through an animator and records
// the resulting trajectories.
//
// A scenario is a chain of segments. Each segment starts when the previous
// one completes, or earlier when the previous one sets interrupt_after, in
// which case a following simulation inherits the running velocity.
package experiment
