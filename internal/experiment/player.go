package experiment

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/san-kum/motion/internal/animator"
	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/curve"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/metrics"
	"github.com/san-kum/motion/internal/notify"
	"github.com/san-kum/motion/internal/physics"
	"github.com/san-kum/motion/internal/scheduler"
	"github.com/san-kum/motion/internal/vector"
)

// Player plays a scenario frame by frame and records what it sees.
type Player interface {
	// Step advances playback by dt seconds.
	Step(dt float64) error
	// Tick advances playback by the time between two frame timestamps.
	Tick(prev, now time.Time) error
	Done() bool
	Time() float64
	Value() []float64
	Velocity() []float64
	State() string
	Segment() int
	// Kick restarts the scenario from the current value and velocity.
	Kick() error
	Params() map[string]float64
	SetParam(name string, value float64) error
	Result() *dynamo.Result
}

// NewPlayer builds a player for cfg. source may be nil for headless runs.
func NewPlayer(cfg *config.Config, source scheduler.Source, logger *slog.Logger) (Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	switch cfg.Dims {
	case 1:
		return newPlayer[vector.Vec1](cfg, source, logger)
	case 2:
		return newPlayer[vector.Vec2](cfg, source, logger)
	case 3:
		return newPlayer[vector.Vec3](cfg, source, logger)
	case 4:
		return newPlayer[vector.Vec4](cfg, source, logger)
	default:
		return nil, dynamo.ErrInvalidDimension
	}
}

type player[V vector.Vector[V]] struct {
	cfg    *config.Config
	anim   *animator.Animator[V]
	sched  *scheduler.Scheduler
	result *dynamo.Result
	logger *slog.Logger

	t        float64
	segment  int
	segStart float64
	law      dynamo.Configurable
	done     *notify.Signal[bool]
	doneKey  string
	finished bool
	err      error

	metrics   []metrics.Metric
	overshoot *metrics.Overshoot
	settledAt float64
}

func newPlayer[V vector.Vector[V]](cfg *config.Config, source scheduler.Source, logger *slog.Logger) (*player[V], error) {
	step, err := integrators.ByName[V](cfg.Integrator)
	if err != nil {
		return nil, err
	}

	overshoot := metrics.NewOvershoot()
	p := &player[V]{
		cfg:       cfg,
		metrics:   append([]metrics.Metric{overshoot}, metrics.Motion()...),
		overshoot: overshoot,
		anim:      animator.New(vector.From[V](cfg.Initial.Value)),
		result:    dynamo.NewResult(int(cfg.Duration/cfg.Frame) + 1),
		logger:    logger,
		settledAt: -1,
	}
	p.anim.SetIntegrator(step)
	p.sched = scheduler.New(source, logger)
	p.sched.Add(p.anim)

	p.record()
	p.start(0, vector.From[V](cfg.Initial.Velocity))
	if p.err != nil {
		return nil, p.err
	}
	return p, nil
}

func (p *player[V]) start(i int, velocity V) {
	seg := p.cfg.Segments[i]
	p.segment = i
	p.segStart = p.t
	p.law = nil
	p.overshoot.Retarget(nil, nil)
	p.logger.Debug("segment started", "scenario", p.cfg.Name, "segment", i, "kind", seg.Kind, "t", p.t)
	p.result.Events = append(p.result.Events, dynamo.Event{Time: p.t, Kind: seg.Kind, Segment: i})

	target := vector.From[V](seg.Target)
	var zero V
	explicit := velocity != zero
	if len(seg.Velocity) > 0 {
		velocity = vector.From[V](seg.Velocity)
		explicit = true
	}

	switch seg.Kind {
	case config.KindSpring:
		spring := physics.NewSpring(target)
		p.overshoot.Retarget(vector.Components(p.anim.Value()), vector.Components(target))
		p.simulate(i, spring, explicit, velocity)
	case config.KindDecay:
		p.simulate(i, physics.NewDecay[V](), explicit, velocity)
	case config.KindCurve:
		easing, err := curve.Lookup(seg.Easing)
		if err != nil {
			p.fail(i, seg.Kind, err)
			return
		}
		p.watch(i, p.anim.Animate(target, seg.Duration, easing))
	case config.KindSet:
		p.anim.SetValue(target)
		p.next(i)
	}
}

func (p *player[V]) simulate(i int, fn dynamo.Function[V], explicit bool, velocity V) {
	if c, ok := fn.(dynamo.Configurable); ok {
		if err := applyParams(c, p.cfg.Segments[i].Params); err != nil {
			p.fail(i, p.cfg.Segments[i].Kind, err)
			return
		}
		p.law = c
	}
	if explicit {
		p.watch(i, p.anim.SimulateWithVelocity(fn, velocity))
		return
	}
	p.watch(i, p.anim.Simulate(fn))
}

func (p *player[V]) watch(i int, done *notify.Signal[bool]) {
	if done == p.done {
		// the law was swapped in place; only segment i reports for this simulation
		done.Remove(p.doneKey)
	}
	p.done, p.doneKey = done, fmt.Sprintf("segment-%d", i)
	done.ObserveKey(p.doneKey, func(finished bool) {
		p.result.Events = append(p.result.Events, dynamo.Event{
			Time: p.t, Kind: "complete", Segment: i, Finished: finished,
		})
		if finished {
			p.next(i)
		}
	})
}

func (p *player[V]) next(i int) {
	if i+1 < len(p.cfg.Segments) {
		var zero V
		p.start(i+1, zero)
		return
	}
	if !p.finished {
		p.finished = true
		p.settledAt = p.t
	}
}

func (p *player[V]) fail(i int, kind string, err error) {
	if p.err == nil {
		p.err = &dynamo.ScenarioError{Segment: i, Kind: kind, Wrapped: err}
	}
}

func applyParams(c dynamo.Configurable, params map[string]float64) error {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := c.SetParam(name, params[name]); err != nil {
			return err
		}
	}
	return nil
}

func (p *player[V]) Step(dt float64) error {
	p.t += dt
	p.sched.Advance(dt)
	return p.afterFrame()
}

func (p *player[V]) Tick(prev, now time.Time) error {
	p.t += max(0, now.Sub(prev).Seconds())
	p.sched.Tick(prev, now)
	return p.afterFrame()
}

func (p *player[V]) afterFrame() error {
	if p.err == nil {
		p.checkInterrupt()
	}
	p.record()
	return p.err
}

func (p *player[V]) checkInterrupt() {
	if p.finished {
		return
	}
	seg := p.cfg.Segments[p.segment]
	if seg.InterruptAfter <= 0 || p.t-p.segStart < seg.InterruptAfter-1e-9 {
		return
	}
	p.logger.Debug("segment interrupted", "segment", p.segment, "t", p.t)
	if p.segment+1 < len(p.cfg.Segments) {
		var zero V
		p.start(p.segment+1, zero)
		return
	}
	p.anim.Cancel()
	p.next(p.segment)
}

func (p *player[V]) record() {
	value := vector.Components(p.anim.Value())
	velocity := vector.Components(p.anim.Velocity())
	p.result.Record(p.t, value, velocity)
	for _, m := range p.metrics {
		m.Observe(value, velocity, p.t)
	}
}

func (p *player[V]) Done() bool { return p.finished && p.anim.IsAtRest() }

func (p *player[V]) Time() float64 { return p.t }

func (p *player[V]) Value() []float64 { return vector.Components(p.anim.Value()) }

func (p *player[V]) Velocity() []float64 { return vector.Components(p.anim.Velocity()) }

func (p *player[V]) State() string { return p.anim.Kind().String() }

func (p *player[V]) Segment() int { return p.segment }

func (p *player[V]) Kick() error {
	p.finished = false
	p.settledAt = -1
	p.start(0, p.anim.Velocity())
	return p.err
}

func (p *player[V]) Params() map[string]float64 {
	if p.law == nil || p.anim.IsAtRest() {
		return nil
	}
	return p.law.Params()
}

// SetParam retunes the running law; the next tick uses the new value.
func (p *player[V]) SetParam(name string, value float64) error {
	if p.law == nil || p.anim.IsAtRest() {
		return fmt.Errorf("%q: no running simulation: %w", name, dynamo.ErrUnknownParam)
	}
	return p.law.SetParam(name, value)
}

func (p *player[V]) Result() *dynamo.Result {
	p.result.Metrics["frames"] = float64(len(p.result.Times))
	p.result.Metrics["settle_time"] = p.settledAt
	for _, m := range p.metrics {
		p.result.Metrics[m.Name()] = m.Value()
	}
	completed, cancelled := 0.0, 0.0
	for _, ev := range p.result.Events {
		if ev.Kind != "complete" {
			continue
		}
		if ev.Finished {
			completed++
		} else {
			cancelled++
		}
	}
	p.result.Metrics["completed"] = completed
	p.result.Metrics["cancelled"] = cancelled
	return p.result
}
