// Package scheduler batches animators onto a single frame tick source and
// pauses that source while nothing is moving.
//
// There is no global scheduler. Create one per tick source and add the
// animators it should drive:
//
//	s := scheduler.New(source, logger)
//	s.Add(a)
//	// from the tick source:
//	s.Tick(prev, now)
//
// Pausing is only a resource saving; a scheduler that is ticked while paused
// behaves the same.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/motion/internal/notify"
)

// Source is a frame clock the scheduler can pause and resume.
type Source interface {
	Pause()
	Resume()
}

// Animated is anything advanced once per frame. animator.Animator
// implements it for every vector type.
type Animated interface {
	Advance(elapsed float64)
	IsAtRest() bool
	Activity() *notify.Signal[bool]
}

type Scheduler struct {
	source Source
	items  []Animated
	paused bool
	key    string
	logger *slog.Logger

	frames int
}

func New(source Source, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scheduler{
		source: source,
		paused: true,
		logger: logger,
	}
	s.key = fmt.Sprintf("scheduler-%p", s)
	return s
}

func (s *Scheduler) Add(a Animated) {
	for _, it := range s.items {
		if it == a {
			return
		}
	}
	s.items = append(s.items, a)
	a.Activity().ObserveKey(s.key, s.onActivity)
	if !a.IsAtRest() {
		s.resume()
	}
}

func (s *Scheduler) Remove(a Animated) {
	for i, it := range s.items {
		if it == a {
			a.Activity().Remove(s.key)
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			break
		}
	}
	if s.Idle() {
		s.pause()
	}
}

// Tick advances every animator by the time between two frame timestamps.
func (s *Scheduler) Tick(prev, now time.Time) {
	elapsed := now.Sub(prev).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	s.Advance(elapsed)
}

func (s *Scheduler) Advance(elapsed float64) {
	s.frames++
	items := make([]Animated, len(s.items))
	copy(items, s.items)
	for _, it := range items {
		it.Advance(elapsed)
	}
	if s.Idle() {
		s.pause()
	}
}

// Idle reports whether every animator is at rest.
func (s *Scheduler) Idle() bool {
	for _, it := range s.items {
		if !it.IsAtRest() {
			return false
		}
	}
	return true
}

func (s *Scheduler) Paused() bool { return s.paused }

func (s *Scheduler) Len() int { return len(s.items) }

// Frames counts Advance calls since creation.
func (s *Scheduler) Frames() int { return s.frames }

func (s *Scheduler) onActivity(running bool) {
	if running {
		s.resume()
	}
}

func (s *Scheduler) resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.logger.Debug("tick source resumed", "animators", len(s.items))
	if s.source != nil {
		s.source.Resume()
	}
}

func (s *Scheduler) pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.logger.Debug("tick source paused", "animators", len(s.items), "frames", s.frames)
	if s.source != nil {
		s.source.Pause()
	}
}
