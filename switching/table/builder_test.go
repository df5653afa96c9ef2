package table

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Builder", func() {
	ginkgo.It("should build every registered strategy", func() {
		for _, name := range Strategies() {
			s := MakeBuilder().
				WithStrategy(name).
				WithCapacity(16).
				WithPortCount(8).
				Build()

			Expect(s).NotTo(BeNil())
		}
	})

	ginkgo.It("should size the stream store by port count", func() {
		s := MakeBuilder().
			WithStrategy(StrategyStream).
			WithCapacity(64).
			WithPortCount(8).
			Build()

		Expect(s.Capacity()).To(Equal(8))
	})

	ginkgo.It("should panic on an unknown strategy", func() {
		Expect(func() {
			MakeBuilder().WithStrategy("quantum").Build()
		}).To(Panic())
	})

	ginkgo.It("should panic on a non-positive capacity", func() {
		Expect(func() {
			MakeBuilder().WithCapacity(0).Build()
		}).To(Panic())
	})
})
