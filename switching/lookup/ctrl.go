package lookup

import (
	"log"

	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
)

// serveCtrl advances an active scrub walk, or otherwise serves one control
// message. Control traffic waits while a walk is in progress.
func (m *middleware) serveCtrl() bool {
	if m.scrubWalk != nil {
		return m.advanceScrub()
	}

	msg := m.CtrlPort.PeekIncoming()
	if msg == nil {
		return false
	}

	switch req := msg.(type) {
	case *switching.ScrubReq:
		return m.startScrub(req)
	case *switching.ConfigReq:
		return m.applyConfig(req)
	case *switching.TableWriteReq:
		return m.writeEntry(req)
	case *switching.TableReadReq:
		return m.readTable(req)
	case *switching.TableClearReq:
		return m.clearTable(req)
	case *switching.ResetReq:
		return m.reset(req)
	case *switching.StatusReq:
		return m.reportStatus(req)
	default:
		log.Panicf("unexpected message %T on control port", msg)
	}

	return false
}

// startScrub mutates the store up front and then models the walk as a busy
// window of capacity/walkWidth cycles.
func (m *middleware) startScrub(req *switching.ScrubReq) bool {
	if !m.store.SupportsScrub() {
		rsp := switching.ScrubRspBuilder{}.
			WithSrc(m.CtrlPort.AsRemote()).
			WithDst(req.Src).
			WithRspTo(req.ID).
			Build()
		if m.CtrlPort.Send(rsp) != nil {
			return false
		}

		m.CtrlPort.RetrieveIncoming()

		return true
	}

	var minFrame uint64
	if m.frameCount > m.scrubTimeout {
		minFrame = m.frameCount - m.scrubTimeout
	}

	report := m.store.Scrub(minFrame)
	if report.TableErr {
		m.tableErrors++
	}

	m.scrubWalk = &scrubWalk{
		req:        req,
		removed:    report.Removed,
		cyclesLeft: (m.store.Capacity() + m.walkWidth - 1) / m.walkWidth,
	}
	m.CtrlPort.RetrieveIncoming()

	return true
}

func (m *middleware) advanceScrub() bool {
	walk := m.scrubWalk

	if walk.cyclesLeft > 0 {
		walk.cyclesLeft--
		return true
	}

	rsp := switching.ScrubRspBuilder{}.
		WithSrc(m.CtrlPort.AsRemote()).
		WithDst(walk.req.Src).
		WithRspTo(walk.req.ID).
		WithRemoved(walk.removed).
		Build()
	if m.CtrlPort.Send(rsp) != nil {
		return false
	}

	m.scrubRemoved += uint64(walk.removed)
	m.scrubWalk = nil

	return true
}

func (m *middleware) applyConfig(req *switching.ConfigReq) bool {
	if m.CtrlPort.Send(req.GenerateRsp()) != nil {
		return false
	}

	if req.SetPromiscuous {
		m.promiscMask = req.Promiscuous
	}

	if req.SetMissMask {
		m.missMask = req.MissMask
	}

	if req.SetLearn {
		m.learnEnabled = req.Learn
	}

	m.CtrlPort.RetrieveIncoming()

	return true
}

// writeEntry inserts a static entry. Addresses that can never be learned
// from traffic are silently rejected; the request is still acknowledged.
func (m *middleware) writeEntry(req *switching.TableWriteReq) bool {
	if m.CtrlPort.Send(req.GenerateRsp()) != nil {
		return false
	}

	if req.Addr.IsUnicast() && req.Port >= 0 && req.Port < m.portCount {
		m.recordLearn(m.store.Learn(req.Addr, req.Port, m.frameCount))
	}

	m.CtrlPort.RetrieveIncoming()

	return true
}

func (m *middleware) readTable(req *switching.TableReadReq) bool {
	entries := m.store.Entries()
	out := make([]switching.TableEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, switching.TableEntry{
			Addr:     entry.Addr,
			Port:     entry.Port,
			LastSeen: entry.LastSeen,
		})
	}

	rsp := &switching.TableReadRsp{}
	rsp.ID = sim.GetIDGenerator().Generate()
	rsp.Src = m.CtrlPort.AsRemote()
	rsp.Dst = req.Src
	rsp.RspTo = req.ID
	rsp.Entries = out

	if m.CtrlPort.Send(rsp) != nil {
		return false
	}

	m.CtrlPort.RetrieveIncoming()

	return true
}

func (m *middleware) clearTable(req *switching.TableClearReq) bool {
	if m.CtrlPort.Send(req.GenerateRsp()) != nil {
		return false
	}

	m.store.Clear()
	m.CtrlPort.RetrieveIncoming()

	return true
}

// reset returns the dispatcher to its power-on state. In-flight lookups are
// discarded without a response.
func (m *middleware) reset(req *switching.ResetReq) bool {
	if m.CtrlPort.Send(req.GenerateRsp()) != nil {
		return false
	}

	m.store.Clear()
	m.lookupPipeline.Clear()
	m.postPipelineBuf.Clear()
	for i := range m.assembly {
		m.assembly[i].buf = m.assembly[i].buf[:0]
	}

	m.frameCount = 0
	m.fullErrors = 0
	m.tableErrors = 0
	m.scrubRemoved = 0
	m.scrubWalk = nil

	m.CtrlPort.RetrieveIncoming()

	return true
}

func (m *middleware) reportStatus(req *switching.StatusReq) bool {
	rsp := &switching.StatusRsp{}
	rsp.ID = sim.GetIDGenerator().Generate()
	rsp.Src = m.CtrlPort.AsRemote()
	rsp.Dst = req.Src
	rsp.RspTo = req.ID
	rsp.FrameCount = m.frameCount
	rsp.Occupancy = m.store.Len()
	rsp.Capacity = m.store.Capacity()
	rsp.FullErrors = m.fullErrors
	rsp.TableErrors = m.tableErrors
	rsp.ScrubRemoved = m.scrubRemoved
	rsp.ScrubBusy = m.scrubWalk != nil

	if m.CtrlPort.Send(rsp) != nil {
		return false
	}

	m.CtrlPort.RetrieveIncoming()

	return true
}
