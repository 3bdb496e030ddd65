package scheduler

import (
	"context"
	"time"
)

// Ticker is a wall-clock Source for headless playback. Ticks are delivered
// on the goroutine calling Run, so animators never see concurrent access.
type Ticker struct {
	interval time.Duration
	ticker   *time.Ticker
	running  bool
	last     time.Time
	now      func() time.Time
}

func NewTicker(interval time.Duration) *Ticker {
	t := &Ticker{
		interval: interval,
		ticker:   time.NewTicker(interval),
		now:      time.Now,
	}
	t.ticker.Stop()
	return t
}

func (t *Ticker) Pause() {
	if !t.running {
		return
	}
	t.ticker.Stop()
	t.running = false
}

func (t *Ticker) Resume() {
	if t.running {
		return
	}
	// time spent paused is not animation time
	t.last = t.now()
	t.ticker.Reset(t.interval)
	t.running = true
}

func (t *Ticker) Running() bool { return t.running }

// RunUntilIdle ticks s until it pauses its source or ctx is done.
func (t *Ticker) RunUntilIdle(ctx context.Context, s *Scheduler) error {
	return t.Run(ctx, func(prev, now time.Time) error {
		s.Tick(prev, now)
		return nil
	})
}

// Run calls tick on every frame until the ticker is paused, tick fails, or
// ctx is done. tick is expected to drive whatever scheduler owns t.
func (t *Ticker) Run(ctx context.Context, tick func(prev, now time.Time) error) error {
	defer t.Pause()
	for t.running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.ticker.C:
			prev := t.last
			t.last = now
			if err := tick(prev, now); err != nil {
				return err
			}
		}
	}
	return nil
}
