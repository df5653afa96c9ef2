package lookup

import (
	"log"

	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/table"
)

type middleware struct {
	*Comp
}

// Tick runs the frame path back to front so that a response leaving this
// cycle frees pipeline and frontend space in the same cycle.
func (m *middleware) Tick() bool {
	madeProgress := m.respond()
	madeProgress = m.lookupPipeline.Tick() || madeProgress
	madeProgress = m.acceptFrames() || madeProgress
	madeProgress = m.serveCtrl() || madeProgress

	return madeProgress
}

func (m *middleware) respond() bool {
	item := m.postPipelineBuf.Peek()
	if item == nil {
		return false
	}

	trans := item.(*lookupTransaction)
	rsp := switching.LookupRspBuilder{}.
		WithSrc(m.FramePort.AsRemote()).
		WithDst(trans.dst).
		WithRspTo(trans.rspTo).
		WithDstMask(trans.dstMask).
		WithKnown(trans.known).
		Build()

	if m.FramePort.Send(rsp) != nil {
		return false
	}

	m.postPipelineBuf.Pop()

	return true
}

func (m *middleware) acceptFrames() bool {
	madeProgress := false

	for {
		item := m.FramePort.PeekIncoming()
		if item == nil {
			return madeProgress
		}

		seg, ok := item.(*switching.FrameSegment)
		if !ok {
			log.Panicf("unexpected message %T on frame port", item)
		}

		if seg.SrcPort < 0 || seg.SrcPort >= m.portCount {
			log.Panicf("segment source port %d out of range [0, %d)",
				seg.SrcPort, m.portCount)
		}

		asm := &m.assembly[seg.SrcPort]

		if seg.Abort {
			asm.buf = asm.buf[:0]
			m.FramePort.RetrieveIncoming()
			madeProgress = true

			continue
		}

		completes := seg.EndOfFrame &&
			len(asm.buf)+len(seg.Data) >= headerBytes
		if completes && !m.lookupPipeline.CanAccept() {
			return madeProgress
		}

		if need := headerBytes - len(asm.buf); need > 0 {
			take := seg.Data
			if len(take) > need {
				take = take[:need]
			}
			asm.buf = append(asm.buf, take...)
		}

		if seg.EndOfFrame {
			// A short header at end of frame is malformed. The segment is
			// absorbed with no table mutation and no response.
			if len(asm.buf) == headerBytes {
				m.commitFrame(seg, asm.buf)
			}
			asm.buf = asm.buf[:0]
		}

		m.FramePort.RetrieveIncoming()
		madeProgress = true
	}
}

func (m *middleware) commitFrame(seg *switching.FrameSegment, header []byte) {
	m.frameCount++

	dstAddr := switching.AddrFromBytes(header[:switching.AddrBytes])
	srcAddr := switching.AddrFromBytes(header[switching.AddrBytes:])

	mask, known := m.resolve(dstAddr, srcAddr, seg.SrcPort)

	m.lookupPipeline.Accept(&lookupTransaction{
		id:      "lookup-" + seg.ID,
		dst:     seg.Src,
		rspTo:   seg.ID,
		dstMask: mask,
		known:   known,
	})
}

// resolve learns the source address and computes the destination port mask
// of one frame.
func (m *middleware) resolve(
	dstAddr, srcAddr switching.MACAddr,
	srcPort int,
) (switching.PortMask, bool) {
	if srcAddr.IsZero() || srcAddr.IsMulticast() {
		return 0, false
	}

	if m.learnEnabled {
		m.recordLearn(m.store.Learn(srcAddr, srcPort, m.frameCount))
	}

	var mask switching.PortMask
	known := false

	switch {
	case dstAddr.IsZero():
	case dstAddr.IsMulticast():
		mask = switching.AllPorts(m.portCount)
		known = true
	default:
		if port, ok := m.store.Lookup(dstAddr, m.frameCount); ok {
			mask = switching.MaskForPort(port)
			known = true
		} else {
			mask = m.missMask
		}
	}

	if !m.promiscMask.Has(srcPort) {
		mask = mask.Without(srcPort)
	}
	mask |= m.promiscMask

	return mask, known
}

func (m *middleware) recordLearn(result table.LearnResult) {
	if result.Full {
		m.fullErrors++
	}

	if result.TableErr {
		m.tableErrors++
	}
}
