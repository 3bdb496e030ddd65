package animator_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motion/internal/animator"
	"github.com/san-kum/motion/internal/curve"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/notify"
	"github.com/san-kum/motion/internal/physics"
	"github.com/san-kum/motion/internal/sim"
	"github.com/san-kum/motion/internal/vector"
)

type outcome struct {
	calls    int
	finished bool
}

func track(done *notify.Signal[bool]) *outcome {
	o := &outcome{}
	done.Observe(func(finished bool) {
		o.calls++
		o.finished = finished
	})
	return o
}

var _ = Describe("Animator", func() {
	var (
		a       *animator.Animator[vector.Vec1]
		changes []float64
		active  []bool
	)

	BeforeEach(func() {
		a = animator.New(vector.Vec1{0})
		changes = nil
		active = nil
		a.Changes().Observe(func(v vector.Vec1) { changes = append(changes, v[0]) })
		a.Activity().Observe(func(running bool) { active = append(active, running) })
	})

	It("starts at rest with zero velocity", func() {
		Expect(a.IsAtRest()).To(BeTrue())
		Expect(a.Kind()).To(Equal(animator.AtRest))
		Expect(a.Value()).To(Equal(vector.Vec1{0}))
		Expect(a.Velocity()).To(Equal(vector.Vec1{}))
		Expect(a.Completion()).To(BeNil())
	})

	Describe("timed curves", func() {
		It("runs to the end and completes once with true", func() {
			o := track(a.Animate(vector.Vec1{10}, 1.0, curve.Linear))
			Expect(a.Kind()).To(Equal(animator.RunningCurve))

			a.Advance(0.5)
			Expect(a.Value()).To(Equal(vector.Vec1{5}))
			Expect(o.calls).To(BeZero())

			a.Advance(0.6)
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()).To(Equal(vector.Vec1{10}))
			Expect(changes).To(Equal([]float64{5, 10}))
			Expect(active).To(Equal([]bool{true, false}))

			a.Advance(1)
			Expect(o.calls).To(Equal(1))
			Expect(o.finished).To(BeTrue())
		})

		It("reports zero velocity while following a curve", func() {
			a.Animate(vector.Vec1{10}, 1.0, nil)
			a.Advance(0.25)
			Expect(a.Velocity()).To(Equal(vector.Vec1{}))
			Expect(a.Curve().MeasuredVelocity()[0]).To(BeNumerically("~", 10, 1e-9))
		})

		It("finishes a zero-duration curve on the first advance", func() {
			o := track(a.Animate(vector.Vec1{3}, 0, curve.EaseInOut))
			a.Advance(0)
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()).To(Equal(vector.Vec1{3}))
			Expect(o.calls).To(Equal(1))
			Expect(o.finished).To(BeTrue())
		})

		It("cancels the previous animation when a new one starts", func() {
			first := track(a.Animate(vector.Vec1{10}, 1.0, curve.Linear))
			a.Advance(0.5)
			second := track(a.Animate(vector.Vec1{0}, 1.0, curve.Linear))

			Expect(first.calls).To(Equal(1))
			Expect(first.finished).To(BeFalse())
			Expect(a.Curve().From()).To(Equal(vector.Vec1{5}))

			a.Advance(1)
			Expect(second.calls).To(Equal(1))
			Expect(second.finished).To(BeTrue())
			Expect(first.calls).To(Equal(1))
		})
	})

	Describe("SetValue and Cancel", func() {
		It("moves to rest immediately and cancels the running animation", func() {
			o := track(a.Animate(vector.Vec1{10}, 1.0, curve.Linear))
			a.Advance(0.2)

			a.SetValue(vector.Vec1{42})
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()).To(Equal(vector.Vec1{42}))
			Expect(changes[len(changes)-1]).To(Equal(42.0))
			Expect(o.calls).To(Equal(1))
			Expect(o.finished).To(BeFalse())

			a.Advance(1)
			Expect(o.calls).To(Equal(1))
		})

		It("does not announce an unchanged value", func() {
			a.SetValue(vector.Vec1{0})
			Expect(changes).To(BeEmpty())
			Expect(active).To(BeEmpty())
		})

		It("cancels in place", func() {
			o := track(a.Animate(vector.Vec1{10}, 1.0, curve.Linear))
			a.Advance(0.3)
			a.Cancel()
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()[0]).To(BeNumerically("~", 3, 1e-12))
			Expect(o.finished).To(BeFalse())

			a.Cancel()
			Expect(o.calls).To(Equal(1))
		})
	})

	Describe("simulations", func() {
		It("settles a spring exactly on its target", func() {
			spring := physics.NewSpring(vector.Vec1{100})
			o := track(a.Simulate(spring))

			for i := 0; i < 400 && !a.IsAtRest(); i++ {
				a.Advance(0.016)
			}

			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()).To(Equal(vector.Vec1{100}))
			Expect(o.calls).To(Equal(1))
			Expect(o.finished).To(BeTrue())
			Expect(len(changes)).To(BeNumerically(">", 10))
		})

		It("completes an already converged simulation on the next advance", func() {
			o := track(a.Simulate(physics.NewSpring(vector.Vec1{0})))
			Expect(a.Kind()).To(Equal(animator.RunningSimulation))
			a.Advance(0)
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(o.finished).To(BeTrue())
		})

		It("starts from rest with zero velocity", func() {
			a.SetValue(vector.Vec1{5})
			a.Simulate(physics.NewDecay[vector.Vec1]())
			Expect(a.Velocity()).To(Equal(vector.Vec1{}))
		})

		It("uses the configured integrator", func() {
			spring := physics.NewSpring(vector.Vec1{100})
			a.SetIntegrator(integrators.Euler[vector.Vec1])
			a.Simulate(spring)
			a.Advance(sim.TickLength)

			want := integrators.Euler[vector.Vec1](spring, dynamo.State[vector.Vec1]{}, sim.TickLength)
			Expect(a.Value()).To(Equal(want.Value))
			Expect(a.Velocity()).To(Equal(want.Velocity))
			Expect(a.Velocity()).NotTo(Equal(integrators.RK4[vector.Vec1](spring, dynamo.State[vector.Vec1]{}, sim.TickLength).Velocity))
		})
	})

	Describe("switching from a spring to decay", func() {
		It("keeps the spring's velocity for the decay's first step", func() {
			b := animator.New(vector.Vec2{0, 0})
			spring := physics.NewSpring(vector.Vec2{50, 0})
			springDone := b.SimulateWithVelocity(spring, vector.Vec2{2, 0})

			decay := physics.NewDecay[vector.Vec2]()
			decayDone := b.Simulate(decay)

			Expect(decayDone).To(BeIdenticalTo(springDone))
			Expect(b.Velocity()).To(Equal(vector.Vec2{2, 0}))
			Expect(b.Solver().Function()).To(BeIdenticalTo(dynamo.Function[vector.Vec2](decay)))

			b.Advance(sim.TickLength)
			want := integrators.RK4[vector.Vec2](decay, dynamo.State[vector.Vec2]{Velocity: vector.Vec2{2, 0}}, sim.TickLength)
			Expect(b.Value()).To(Equal(want.Value))
			Expect(b.Velocity()).To(Equal(want.Velocity))
		})

		It("inherits velocity from a running spring mid-flight", func() {
			spring := physics.NewSpring(vector.Vec1{100})
			a.Simulate(spring)
			a.Advance(0.05)
			v := a.Velocity()
			Expect(v[0]).To(BeNumerically(">", 0))

			a.Simulate(physics.NewDecay[vector.Vec1]())
			Expect(a.Velocity()).To(Equal(v))
		})

		It("overrides velocity in place when given explicitly", func() {
			a.Simulate(physics.NewSpring(vector.Vec1{100}))
			a.Advance(0.05)
			a.SimulateWithVelocity(physics.NewDecay[vector.Vec1](), vector.Vec1{-7})
			Expect(a.Velocity()).To(Equal(vector.Vec1{-7}))
		})
	})

	Describe("re-entrant observers", func() {
		It("may start a new animation from a completion observer", func() {
			a.Animate(vector.Vec1{10}, 0.1, curve.Linear).Observe(func(finished bool) {
				Expect(a.IsAtRest()).To(BeTrue())
				Expect(a.Value()).To(Equal(vector.Vec1{10}))
				a.Animate(vector.Vec1{0}, 0.1, curve.Linear)
			})

			a.Advance(0.2)
			Expect(a.Kind()).To(Equal(animator.RunningCurve))
			Expect(a.Curve().From()).To(Equal(vector.Vec1{10}))
			Expect(active).To(Equal([]bool{true, false, true}))
		})

		It("may replace the animation from a change observer", func() {
			o := track(a.Animate(vector.Vec1{10}, 1.0, curve.Linear))
			a.Changes().Observe(func(v vector.Vec1) {
				if v[0] >= 5 && !a.IsAtRest() {
					a.SetValue(vector.Vec1{-1})
				}
			})

			a.Advance(1.0)
			Expect(a.IsAtRest()).To(BeTrue())
			Expect(a.Value()).To(Equal(vector.Vec1{-1}))
			Expect(o.calls).To(Equal(1))
			Expect(o.finished).To(BeFalse())
		})

		It("cancels the earlier animation before the new one begins", func() {
			var seen animator.Kind
			a.Animate(vector.Vec1{10}, 1.0, curve.Linear).Observe(func(bool) {
				seen = a.Kind()
			})
			a.Simulate(physics.NewSpring(vector.Vec1{1}))
			Expect(seen).To(Equal(animator.RunningSimulation))
		})
	})
})
