// Package trafficgen provides an agent that exercises a lookup dispatcher
// with generated frame traffic and checks that every committed frame gets
// exactly one response.
package trafficgen

import (
	"log"
	"math/rand"

	"github.com/lumisim/macswitch/recording"
	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
)

// frameTable is the recorder table that stores one row per answered frame.
const frameTable = "frames"

type frameRecord struct {
	FrameID string
	SrcPort int
	Src     string
	Dst     string
	Known   bool
	Mask    uint64
}

// Stats summarizes what the agent sent and received.
type Stats struct {
	FramesCommitted uint64
	FramesAborted   uint64
	RspReceived     uint64
	KnownRsps       uint64
	FloodRsps       uint64
	ScrubsSent      uint64
	ScrubsAnswered  uint64
	EntriesScrubbed uint64
}

// A Comp generates frame traffic toward a lookup dispatcher. Headers are
// split into segments and streamed one segment per cycle; a fraction of the
// frames is aborted mid-header. The agent optionally issues a scrub request
// every few committed frames.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	FramePort sim.Port
	CtrlPort  sim.Port

	lookupFrame sim.RemotePort
	lookupCtrl  sim.RemotePort

	rand *rand.Rand

	numFrames    uint64
	portCount    int
	addrPool     []switching.MACAddr
	segmentBytes int
	abortRate    float64
	scrubEvery   uint64

	recorder recording.DataRecorder

	inflight     []*switching.FrameSegment
	inflightInfo pendingFrame

	pending map[string]pendingFrame

	stats            Stats
	scrubOutstanding bool
	nextScrubAt      uint64
}

type pendingFrame struct {
	srcPort  int
	src, dst switching.MACAddr
}

// Stats returns the counters of the agent.
func (c *Comp) Stats() Stats {
	return c.stats
}

// Pending returns the number of committed frames still waiting for a
// response.
func (c *Comp) Pending() int {
	return len(c.pending)
}

// Tick runs the agent for one cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}

type middleware struct {
	*Comp
}

func (m *middleware) Tick() bool {
	madeProgress := m.collectLookupRsps()
	madeProgress = m.collectScrubRsps() || madeProgress
	madeProgress = m.issueScrub() || madeProgress
	madeProgress = m.sendSegments() || madeProgress

	return madeProgress
}

func (m *middleware) collectLookupRsps() bool {
	madeProgress := false

	for {
		msg := m.FramePort.PeekIncoming()
		if msg == nil {
			return madeProgress
		}

		rsp, ok := msg.(*switching.LookupRsp)
		if !ok {
			log.Panicf("unexpected message %T on frame port", msg)
		}

		frame, found := m.pending[rsp.RspTo]
		if !found {
			log.Panicf("response %s answers no pending frame", rsp.ID)
		}
		delete(m.pending, rsp.RspTo)

		m.stats.RspReceived++
		if rsp.Known {
			m.stats.KnownRsps++
		} else {
			m.stats.FloodRsps++
		}

		if m.recorder != nil {
			m.recorder.Insert(frameTable, frameRecord{
				FrameID: rsp.RspTo,
				SrcPort: frame.srcPort,
				Src:     frame.src.String(),
				Dst:     frame.dst.String(),
				Known:   rsp.Known,
				Mask:    uint64(rsp.DstMask),
			})
		}

		m.FramePort.RetrieveIncoming()
		madeProgress = true
	}
}

func (m *middleware) collectScrubRsps() bool {
	msg := m.CtrlPort.PeekIncoming()
	if msg == nil {
		return false
	}

	rsp, ok := msg.(*switching.ScrubRsp)
	if !ok {
		log.Panicf("unexpected message %T on control port", msg)
	}

	m.stats.ScrubsAnswered++
	m.stats.EntriesScrubbed += uint64(rsp.Removed)
	m.scrubOutstanding = false

	m.CtrlPort.RetrieveIncoming()

	return true
}

func (m *middleware) issueScrub() bool {
	if m.scrubEvery == 0 || m.scrubOutstanding {
		return false
	}

	if m.stats.FramesCommitted < m.nextScrubAt {
		return false
	}

	req := switching.ScrubReqBuilder{}.
		WithSrc(m.CtrlPort.AsRemote()).
		WithDst(m.lookupCtrl).
		Build()
	if m.CtrlPort.Send(req) != nil {
		return false
	}

	m.scrubOutstanding = true
	m.stats.ScrubsSent++
	m.nextScrubAt += m.scrubEvery

	return true
}

// sendSegments streams one segment per cycle.
func (m *middleware) sendSegments() bool {
	if len(m.inflight) == 0 {
		if m.framesStarted() >= m.numFrames {
			return false
		}

		m.generateFrame()
	}

	seg := m.inflight[0]
	if m.FramePort.Send(seg) != nil {
		return false
	}
	m.inflight = m.inflight[1:]

	if seg.Abort {
		m.stats.FramesAborted++
	}

	if seg.EndOfFrame {
		m.stats.FramesCommitted++
		m.pending[seg.ID] = m.inflightInfo
	}

	return true
}

func (m *middleware) framesStarted() uint64 {
	started := m.stats.FramesCommitted + m.stats.FramesAborted
	if len(m.inflight) > 0 {
		started++
	}

	return started
}

func (m *middleware) generateFrame() {
	srcPort := m.rand.Intn(m.portCount)
	src := m.addrPool[m.rand.Intn(len(m.addrPool))]
	dst := m.addrPool[m.rand.Intn(len(m.addrPool))]
	if m.rand.Float64() < 0.05 {
		dst = switching.AddrBroadcast
	}

	m.inflightInfo = pendingFrame{srcPort: srcPort, src: src, dst: dst}

	header := append(dst.Bytes(), src.Bytes()...)

	if m.rand.Float64() < m.abortRate {
		m.inflight = []*switching.FrameSegment{
			m.newSegment(srcPort, header[:m.segmentBytes], false, false),
			m.newSegment(srcPort, nil, false, true),
		}

		return
	}

	var segments []*switching.FrameSegment
	for start := 0; start < len(header); start += m.segmentBytes {
		end := start + m.segmentBytes
		if end > len(header) {
			end = len(header)
		}

		eof := end == len(header)
		segments = append(segments,
			m.newSegment(srcPort, header[start:end], eof, false))
	}

	m.inflight = segments
}

func (m *middleware) newSegment(
	srcPort int,
	data []byte,
	eof, abort bool,
) *switching.FrameSegment {
	b := switching.FrameSegmentBuilder{}.
		WithSrc(m.FramePort.AsRemote()).
		WithDst(m.lookupFrame).
		WithSrcPort(srcPort).
		WithData(data)
	if eof {
		b = b.WithEndOfFrame()
	}
	if abort {
		b = b.WithAbort()
	}

	return b.Build()
}
