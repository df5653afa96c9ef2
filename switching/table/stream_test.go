package table

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumisim/macswitch/switching"
)

var _ = ginkgo.Describe("StreamStore", func() {
	var s *StreamStore

	ginkgo.BeforeEach(func() {
		s = NewStreamStore(4)
	})

	ginkgo.It("should have one slot per port", func() {
		Expect(s.Capacity()).To(Equal(4))
	})

	ginkgo.It("should remember the last address per port", func() {
		s.Learn(addrA, 1, 1)

		port, ok := s.Lookup(addrA, 2)

		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(1))
	})

	ginkgo.It("should forget a port's old station when a new one appears", func() {
		s.Learn(addrA, 1, 1)

		result := s.Learn(addrB, 1, 2)

		Expect(result.Outcome).To(Equal(LearnNew))
		Expect(result.Evicted).To(BeTrue())

		_, ok := s.Lookup(addrA, 3)
		Expect(ok).To(BeFalse())

		port, ok := s.Lookup(addrB, 3)
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(1))
	})

	ginkgo.It("should never report full", func() {
		for port := 0; port < 4; port++ {
			result := s.Learn(addrA+switching.MACAddr(port), port, uint64(port))
			Expect(result.Full).To(BeFalse())
		}

		result := s.Learn(addrE, 0, 10)
		Expect(result.Full).To(BeFalse())
		Expect(s.Len()).To(Equal(4))
	})

	ginkgo.It("should not age entries", func() {
		s.Learn(addrA, 1, 1)

		Expect(s.SupportsScrub()).To(BeFalse())

		report := s.Scrub(100)
		Expect(report.Removed).To(Equal(0))
		Expect(s.Len()).To(Equal(1))
	})

	ginkgo.It("should forget all ports that remembered a removed address", func() {
		s.Learn(addrA, 0, 1)
		s.Learn(addrA, 2, 2)

		Expect(s.Remove(addrA)).To(BeTrue())
		Expect(s.Len()).To(Equal(0))
	})

	ginkgo.It("should panic on an out-of-range port", func() {
		Expect(func() { s.Learn(addrA, 4, 1) }).To(Panic())
	})
})
