package clock_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/clocktree/clock"
)

var _ = Describe("MuxMap", func() {
	var cpu, sys *clock.MuxMap

	BeforeEach(func() {
		cpu = clock.NewMuxMap("cpu",
			clock.MuxEntry{Selector: 0, Clock: 1},
			clock.MuxEntry{Selector: 7, Clock: 3},
		)
		sys = clock.NewMuxMap("sys",
			clock.MuxEntry{Selector: 0, Clock: 1},
			clock.MuxEntry{Selector: 3, Clock: 4},
		)
	})

	It("should resolve a mapped selector", func() {
		id, err := cpu.Resolve(7)
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal(clock.ID(3)))
	})

	It("should error on an unmapped selector, never default", func() {
		_, err := cpu.Resolve(3)
		Expect(err).To(MatchError(clock.ErrUnmappedSelector))

		_, err = sys.Resolve(7)
		Expect(err).To(MatchError(clock.ErrUnmappedSelector))
	})

	It("should give the same selector different meanings per domain", func() {
		cpuID, err := cpu.Resolve(0)
		Expect(err).ToNot(HaveOccurred())

		sysID, err := sys.Resolve(0)
		Expect(err).ToNot(HaveOccurred())

		Expect(cpuID).To(Equal(sysID)) // both happen to map 0 the same way

		_, err = cpu.Resolve(3)
		Expect(err).To(HaveOccurred())
		id, err := sys.Resolve(3)
		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal(clock.ID(4)))
	})

	It("should find the selector for a clock", func() {
		sel, ok := sys.SelectorOf(4)
		Expect(ok).To(BeTrue())
		Expect(sel).To(Equal(uint32(3)))

		_, ok = sys.SelectorOf(9)
		Expect(ok).To(BeFalse())
	})

	It("should panic on duplicate selectors within a domain", func() {
		Expect(func() {
			clock.NewMuxMap("dup",
				clock.MuxEntry{Selector: 1, Clock: 1},
				clock.MuxEntry{Selector: 1, Clock: 2},
			)
		}).To(Panic())
	})

	It("should panic on an unnamed domain", func() {
		Expect(func() { clock.NewMuxMap("") }).To(Panic())
	})
})
