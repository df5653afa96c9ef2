package lookup

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/table"
	"github.com/lumisim/macswitch/switching/table/mock_table"
)

var (
	stationA = switching.MACAddr(0x0200_0000_0001)
	stationB = switching.MACAddr(0x0200_0000_0002)
)

var _ = Describe("Frame path", func() {
	var (
		mockCtrl *gomock.Controller
		store    *mock_table.MockStore
		c        *Comp
		mw       *middleware
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		store = mock_table.NewMockStore(mockCtrl)

		engine := sim.NewSerialEngine()
		c = MakeBuilder().
			WithEngine(engine).
			WithPortCount(4).
			WithTableSize(8).
			Build("Lookup")
		c.store = store

		conn := &stubConn{name: "Conn"}
		conn.PlugIn(c.FramePort)
		conn.PlugIn(c.CtrlPort)

		mw = c.Middlewares()[0].(*middleware)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should learn the source and answer a known destination", func() {
		store.EXPECT().
			Learn(stationA, 1, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnNew})
		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(3, true)

		seg := deliverFrame(c, 1, stationB, stationA)
		rsp := tickForRsp(mw, c)

		Expect(rsp).NotTo(BeNil())
		Expect(rsp.RspTo).To(Equal(seg.ID))
		Expect(rsp.Known).To(BeTrue())
		Expect(rsp.DstMask).To(Equal(switching.MaskForPort(3)))
	})

	It("should assemble a header from multiple segments", func() {
		store.EXPECT().
			Learn(stationA, 1, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnRefresh})
		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(0, true)

		full := header(stationB, stationA)

		first := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(1).
			WithData(full[:5]).
			Build()
		c.FramePort.Deliver(first)

		last := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(1).
			WithData(full[5:]).
			WithEndOfFrame().
			Build()
		c.FramePort.Deliver(last)

		rsp := tickForRsp(mw, c)

		Expect(rsp).NotTo(BeNil())
		Expect(rsp.RspTo).To(Equal(last.ID))
		Expect(rsp.DstMask).To(Equal(switching.MaskForPort(0)))
	})

	It("should flood an unknown destination", func() {
		store.EXPECT().
			Learn(stationA, 1, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnNew})
		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(0, false)

		deliverFrame(c, 1, stationB, stationA)
		rsp := tickForRsp(mw, c)

		Expect(rsp.Known).To(BeFalse())
		Expect(rsp.DstMask).To(Equal(switching.AllPorts(4).Without(1)))
	})

	It("should send broadcast to every other port", func() {
		store.EXPECT().
			Learn(stationA, 2, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnNew})

		deliverFrame(c, 2, switching.AddrBroadcast, stationA)
		rsp := tickForRsp(mw, c)

		Expect(rsp.Known).To(BeTrue())
		Expect(rsp.DstMask).To(Equal(switching.AllPorts(4).Without(2)))
	})

	It("should not forward a frame with an invalid source", func() {
		deliverFrame(c, 1, stationB, switching.AddrNone)
		rsp := tickForRsp(mw, c)

		Expect(rsp).NotTo(BeNil())
		Expect(rsp.Known).To(BeFalse())
		Expect(rsp.DstMask).To(Equal(switching.PortMask(0)))
	})

	It("should discard an aborted frame", func() {
		store.EXPECT().
			Learn(stationA, 1, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnNew})
		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(2, true)

		partial := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(1).
			WithData(header(stationA, stationB)[:6]).
			Build()
		c.FramePort.Deliver(partial)

		abort := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(1).
			WithAbort().
			Build()
		c.FramePort.Deliver(abort)

		seg := deliverFrame(c, 1, stationB, stationA)
		rsp := tickForRsp(mw, c)

		Expect(rsp).NotTo(BeNil())
		Expect(rsp.RspTo).To(Equal(seg.ID))
		Expect(rsp.DstMask).To(Equal(switching.MaskForPort(2)))
	})

	It("should absorb a malformed frame without responding", func() {
		short := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(1).
			WithData(header(stationB, stationA)[:6]).
			WithEndOfFrame().
			Build()
		c.FramePort.Deliver(short)

		rsp := tickForRsp(mw, c)

		Expect(rsp).To(BeNil())
		Expect(c.frameCount).To(Equal(uint64(0)))
	})

	It("should keep per-port assemblies separate", func() {
		store.EXPECT().
			Learn(stationA, 0, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnNew})
		store.EXPECT().
			Learn(stationB, 2, uint64(2)).
			Return(table.LearnResult{Outcome: table.LearnNew})
		store.EXPECT().
			Lookup(gomock.Any(), gomock.Any()).
			Return(0, false).
			Times(2)

		fromA := header(stationB, stationA)
		fromB := header(stationA, stationB)

		firstA := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(0).
			WithData(fromA[:6]).
			Build()
		c.FramePort.Deliver(firstA)

		firstB := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(2).
			WithData(fromB[:6]).
			Build()
		c.FramePort.Deliver(firstB)

		lastA := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(0).
			WithData(fromA[6:]).
			WithEndOfFrame().
			Build()
		c.FramePort.Deliver(lastA)

		lastB := switching.FrameSegmentBuilder{}.
			WithSrc("Agent.FramePort").
			WithDst(c.FramePort.AsRemote()).
			WithSrcPort(2).
			WithData(fromB[6:]).
			WithEndOfFrame().
			Build()
		c.FramePort.Deliver(lastB)

		rsp1 := tickForRsp(mw, c)
		rsp2 := tickForRsp(mw, c)

		Expect(rsp1).NotTo(BeNil())
		Expect(rsp2).NotTo(BeNil())
		Expect(rsp1.RspTo).To(Equal(lastA.ID))
		Expect(rsp2.RspTo).To(Equal(lastB.ID))
	})

	It("should count full and table errors without stalling", func() {
		store.EXPECT().
			Learn(stationA, 1, uint64(1)).
			Return(table.LearnResult{Outcome: table.LearnDropped, Full: true})
		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(0, false)

		deliverFrame(c, 1, stationB, stationA)
		rsp := tickForRsp(mw, c)

		Expect(rsp).NotTo(BeNil())
		Expect(c.fullErrors).To(Equal(uint64(1)))
	})
})
