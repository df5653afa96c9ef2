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

var _ = Describe("Control path", func() {
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
			WithScrubWalkWidth(2).
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

	ctrlRsp := func() sim.Msg {
		for i := 0; i < 20; i++ {
			mw.Tick()

			if msg := c.CtrlPort.RetrieveOutgoing(); msg != nil {
				return msg
			}
		}

		return nil
	}

	It("should apply configuration updates", func() {
		req := switching.ConfigReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			WithMissMask(switching.PortMask(0b0101)).
			WithPromiscuous(switching.MaskForPort(3)).
			WithLearn(false).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp()

		Expect(rsp).NotTo(BeNil())
		Expect(rsp.(sim.Rsp).GetRspTo()).To(Equal(req.ID))

		store.EXPECT().
			Lookup(stationB, uint64(1)).
			Return(0, false)

		deliverFrame(c, 1, stationB, stationA)
		frameRsp := tickForRsp(mw, c)

		Expect(frameRsp.DstMask).To(Equal(switching.PortMask(0b1101)))
	})

	It("should walk the table on scrub and answer when done", func() {
		store.EXPECT().SupportsScrub().Return(true)
		store.EXPECT().Scrub(uint64(0)).Return(table.ScrubReport{Removed: 3})
		store.EXPECT().Capacity().Return(8)

		req := switching.ScrubReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		mw.Tick()
		Expect(c.scrubWalk).NotTo(BeNil())

		// 8 entries at 2 per cycle: 4 busy cycles before the response.
		for i := 0; i < 4; i++ {
			Expect(c.CtrlPort.PeekOutgoing()).To(BeNil())
			mw.Tick()
		}
		mw.Tick()

		msg := c.CtrlPort.RetrieveOutgoing()
		Expect(msg).NotTo(BeNil())

		rsp := msg.(*switching.ScrubRsp)
		Expect(rsp.RspTo).To(Equal(req.ID))
		Expect(rsp.Removed).To(Equal(3))
		Expect(c.scrubRemoved).To(Equal(uint64(3)))
		Expect(c.scrubWalk).To(BeNil())
	})

	It("should age only entries beyond the scrub timeout", func() {
		c.frameCount = 200
		c.scrubTimeout = 100

		store.EXPECT().SupportsScrub().Return(true)
		store.EXPECT().Scrub(uint64(100)).Return(table.ScrubReport{Removed: 1})
		store.EXPECT().Capacity().Return(8)

		req := switching.ScrubReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		mw.Tick()
		Expect(c.scrubWalk.removed).To(Equal(1))
	})

	It("should answer scrub immediately when the store cannot age", func() {
		store.EXPECT().SupportsScrub().Return(false)

		req := switching.ScrubReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		msg := ctrlRsp()

		rsp := msg.(*switching.ScrubRsp)
		Expect(rsp.Removed).To(Equal(0))
		Expect(c.scrubWalk).To(BeNil())
	})

	It("should hold control traffic while a walk is active", func() {
		store.EXPECT().SupportsScrub().Return(true)
		store.EXPECT().Scrub(uint64(0)).Return(table.ScrubReport{})
		store.EXPECT().Capacity().Return(8)

		scrub := switching.ScrubReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(scrub)

		status := switching.StatusReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(status)

		mw.Tick()
		mw.Tick()
		Expect(c.CtrlPort.PeekOutgoing()).To(BeNil())

		store.EXPECT().Len().Return(0)
		store.EXPECT().Capacity().Return(8)

		var statusRsp *switching.StatusRsp
		for i := 0; i < 20; i++ {
			mw.Tick()

			msg := c.CtrlPort.RetrieveOutgoing()
			if msg == nil {
				continue
			}

			if rsp, ok := msg.(*switching.StatusRsp); ok {
				statusRsp = rsp
				break
			}
		}

		Expect(statusRsp).NotTo(BeNil())
		Expect(statusRsp.RspTo).To(Equal(status.ID))
		Expect(statusRsp.ScrubBusy).To(BeFalse())
	})

	It("should report diagnostic counters", func() {
		c.frameCount = 42
		c.fullErrors = 2
		c.tableErrors = 1
		c.scrubRemoved = 7

		store.EXPECT().Len().Return(5)
		store.EXPECT().Capacity().Return(8)

		req := switching.StatusReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp().(*switching.StatusRsp)

		Expect(rsp.FrameCount).To(Equal(uint64(42)))
		Expect(rsp.Occupancy).To(Equal(5))
		Expect(rsp.Capacity).To(Equal(8))
		Expect(rsp.FullErrors).To(Equal(uint64(2)))
		Expect(rsp.TableErrors).To(Equal(uint64(1)))
		Expect(rsp.ScrubRemoved).To(Equal(uint64(7)))
		Expect(rsp.ScrubBusy).To(BeFalse())
	})

	It("should write a static entry", func() {
		store.EXPECT().
			Learn(stationA, 2, uint64(0)).
			Return(table.LearnResult{Outcome: table.LearnNew})

		req := switching.TableWriteReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			WithAddr(stationA).
			WithPort(2).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp()

		Expect(rsp.(sim.Rsp).GetRspTo()).To(Equal(req.ID))
	})

	It("should reject a static entry for the broadcast address", func() {
		req := switching.TableWriteReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			WithAddr(switching.AddrBroadcast).
			WithPort(2).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp()

		Expect(rsp).NotTo(BeNil())
	})

	It("should read the table contents", func() {
		store.EXPECT().Entries().Return([]table.Entry{
			{Addr: stationA, Port: 1, Valid: true, LastSeen: 10},
			{Addr: stationB, Port: 3, Valid: true, LastSeen: 12},
		})

		req := switching.TableReadReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp().(*switching.TableReadRsp)

		Expect(rsp.RspTo).To(Equal(req.ID))
		Expect(rsp.Entries).To(HaveLen(2))
		Expect(rsp.Entries[0].Addr).To(Equal(stationA))
		Expect(rsp.Entries[1].Port).To(Equal(3))
	})

	It("should clear the table on request", func() {
		store.EXPECT().Clear()

		req := switching.TableClearReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp()

		Expect(rsp.(sim.Rsp).GetRspTo()).To(Equal(req.ID))
	})

	It("should return to the power-on state on reset", func() {
		c.frameCount = 42
		c.fullErrors = 2
		c.tableErrors = 1
		c.scrubRemoved = 7

		store.EXPECT().Clear()

		req := switching.ResetReqBuilder{}.
			WithSrc("Mgmt.Port").
			WithDst(c.CtrlPort.AsRemote()).
			Build()
		c.CtrlPort.Deliver(req)

		rsp := ctrlRsp()

		Expect(rsp).NotTo(BeNil())
		Expect(c.frameCount).To(Equal(uint64(0)))
		Expect(c.fullErrors).To(Equal(uint64(0)))
		Expect(c.tableErrors).To(Equal(uint64(0)))
		Expect(c.scrubRemoved).To(Equal(uint64(0)))
	})
})
