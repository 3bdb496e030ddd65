package notify_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motion/internal/notify"
)

var _ = Describe("Signal", func() {
	var (
		sig *notify.Signal[int]
		got []int
	)

	record := func(v int) { got = append(got, v) }

	BeforeEach(func() {
		sig = notify.New[int]()
		got = nil
	})

	Describe("while active", func() {
		It("delivers every send to every observer in registration order", func() {
			sig.Observe(func(v int) { got = append(got, v*10) })
			sig.Observe(record)

			sig.Send(1)
			sig.Send(2)

			Expect(got).To(Equal([]int{10, 1, 20, 2}))
		})

		It("replaces a keyed observer without calling the old one", func() {
			oldCalls := 0
			sig.ObserveKey("view", func(int) { oldCalls++ })
			sig.ObserveKey("view", record)

			sig.Send(7)

			Expect(oldCalls).To(BeZero())
			Expect(got).To(Equal([]int{7}))
			Expect(sig.Len()).To(Equal(1))
		})

		It("stops delivering to a removed key", func() {
			sig.ObserveKey("a", record)
			sig.Observe(record)
			sig.Remove("a")
			sig.Remove("missing")

			sig.Send(3)

			Expect(got).To(Equal([]int{3}))
		})

		It("lets observers register during delivery for the next send", func() {
			sig.Observe(func(v int) {
				record(v)
				if v == 1 {
					sig.Observe(func(v int) { got = append(got, -v) })
				}
			})

			sig.Send(1)
			sig.Send(2)

			Expect(got).To(Equal([]int{1, 2, -2}))
		})

		It("reports not closed", func() {
			_, closed := sig.Closed()
			Expect(closed).To(BeFalse())
		})
	})

	Describe("after close", func() {
		BeforeEach(func() {
			sig.Observe(record)
			sig.Close(42)
		})

		It("delivered the closing payload to existing observers", func() {
			Expect(got).To(Equal([]int{42}))
		})

		It("invokes late observers synchronously exactly once", func() {
			late := 0
			sig.Observe(func(v int) {
				Expect(v).To(Equal(42))
				late++
			})
			sig.ObserveKey("late", func(v int) { late++ })

			Expect(late).To(Equal(2))
			Expect(sig.Len()).To(BeZero())
		})

		It("ignores further sends and closes", func() {
			sig.Send(1)
			sig.Close(2)

			Expect(got).To(Equal([]int{42}))
			payload, closed := sig.Closed()
			Expect(closed).To(BeTrue())
			Expect(payload).To(Equal(42))
		})
	})

	It("lets an observer registered during close see the frozen payload", func() {
		sig.Observe(func(v int) {
			sig.Observe(func(v int) { got = append(got, v+1) })
		})

		sig.Close(5)

		Expect(got).To(Equal([]int{6}))
	})
})
