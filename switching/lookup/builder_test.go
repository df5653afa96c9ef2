package lookup

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/table"
)

var _ = Describe("Builder", func() {
	var engine sim.Engine

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
	})

	It("should build a dispatcher for every strategy", func() {
		for _, name := range table.Strategies() {
			c := MakeBuilder().
				WithEngine(engine).
				WithStrategy(name).
				Build("Lookup_" + name)

			Expect(c.FramePort).NotTo(BeNil())
			Expect(c.CtrlPort).NotTo(BeNil())
		}
	})

	It("should panic on an unknown strategy", func() {
		Expect(func() {
			MakeBuilder().
				WithEngine(engine).
				WithStrategy("quantum").
				Build("Lookup")
		}).To(Panic())
	})

	It("should panic without an engine", func() {
		Expect(func() {
			MakeBuilder().Build("Lookup")
		}).To(Panic())
	})

	It("should panic on an out-of-range port count", func() {
		Expect(func() {
			MakeBuilder().
				WithEngine(engine).
				WithPortCount(65).
				Build("Lookup")
		}).To(Panic())
	})

	It("should flood all ports on a miss by default", func() {
		c := MakeBuilder().
			WithEngine(engine).
			WithPortCount(4).
			Build("Lookup")

		Expect(c.missMask).To(Equal(switching.AllPorts(4)))
	})
})

var _ = Describe("Dispatcher with a real store", func() {
	var (
		c  *Comp
		mw *middleware
	)

	BeforeEach(func() {
		engine := sim.NewSerialEngine()
		c = MakeBuilder().
			WithEngine(engine).
			WithPortCount(4).
			WithTableSize(4).
			WithStrategy(table.StrategyBrute).
			Build("Lookup")

		conn := &stubConn{name: "Conn"}
		conn.PlugIn(c.FramePort)
		conn.PlugIn(c.CtrlPort)

		mw = c.Middlewares()[0].(*middleware)
	})

	It("should stop flooding once the destination is learned", func() {
		deliverFrame(c, 0, stationB, stationA)
		first := tickForRsp(mw, c)

		Expect(first.Known).To(BeFalse())
		Expect(first.DstMask).To(Equal(switching.AllPorts(4).Without(0)))

		deliverFrame(c, 1, stationA, stationB)
		second := tickForRsp(mw, c)

		Expect(second.Known).To(BeTrue())
		Expect(second.DstMask).To(Equal(switching.MaskForPort(0)))
	})

	It("should answer every frame exactly once under load", func() {
		addrs := []switching.MACAddr{
			stationA, stationB,
			switching.MACAddr(0x0200_0000_0003),
			switching.MACAddr(0x0200_0000_0004),
			switching.MACAddr(0x0200_0000_0005),
			switching.MACAddr(0x0200_0000_0006),
		}

		sent := 0
		for i, src := range addrs {
			dst := addrs[(i+1)%len(addrs)]
			deliverFrame(c, i%4, dst, src)
			sent++
		}

		received := 0
		for i := 0; i < 100 && received < sent; i++ {
			if rsp := tickForRsp(mw, c); rsp != nil {
				received++
			}
		}

		Expect(received).To(Equal(sent))
		Expect(c.frameCount).To(Equal(uint64(sent)))
	})
})
