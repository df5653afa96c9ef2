// Package lookup implements the forwarding-table dispatcher: a ticking
// component that assembles frame headers, learns source addresses, resolves
// destination port masks through a backend store, and serves the scrub and
// management protocol.
package lookup

import (
	"github.com/lumisim/macswitch/pipelining"
	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/table"
)

// headerBytes is the number of header bytes a lookup needs: destination MAC
// then source MAC.
const headerBytes = 2 * switching.AddrBytes

// A Comp is the lookup dispatcher. Frame segments arrive on FramePort and
// each accepted frame is answered with exactly one LookupRsp. Scrub,
// configuration, and management traffic arrives on CtrlPort.
type Comp struct {
	*sim.TickingComponent
	sim.MiddlewareHolder

	FramePort sim.Port
	CtrlPort  sim.Port

	portCount    int
	scrubTimeout uint64
	walkWidth    int

	store           table.Store
	lookupPipeline  pipelining.Pipeline
	postPipelineBuf sim.Buffer

	learnEnabled bool
	promiscMask  switching.PortMask
	missMask     switching.PortMask

	frameCount   uint64
	fullErrors   uint64
	tableErrors  uint64
	scrubRemoved uint64

	assembly []headerAssembly

	scrubWalk *scrubWalk
}

// A headerAssembly accumulates the header bytes of one source port's
// in-flight frame.
type headerAssembly struct {
	buf []byte
}

// A scrubWalk models the busy window of one table walk. The store mutates
// when the walk starts; the walk then occupies the configured number of
// cycles before the response goes out.
type scrubWalk struct {
	req        *switching.ScrubReq
	removed    int
	cyclesLeft int
}

// A lookupTransaction carries one resolved frame through the lookup
// pipeline.
type lookupTransaction struct {
	id      string
	dst     sim.RemotePort
	rspTo   string
	dstMask switching.PortMask
	known   bool
}

// TaskID returns the ID of the transaction.
func (t *lookupTransaction) TaskID() string {
	return t.id
}

// Tick runs the dispatcher for one cycle.
func (c *Comp) Tick() bool {
	return c.MiddlewareHolder.Tick()
}
