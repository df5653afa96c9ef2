package switching

import (
	"github.com/lumisim/macswitch/sim"
)

// A TableEntry is one valid row of the forwarding table, as seen through
// the management interface.
type TableEntry struct {
	Addr     MACAddr
	Port     int
	LastSeen uint64
}

// A FrameSegment carries a portion of one frame's Ethernet header into the
// lookup engine. The assembled header bytes are destination MAC then source
// MAC, network order. A segment with Abort set discards the partially
// assembled frame of its source port.
type FrameSegment struct {
	sim.MsgMeta

	SrcPort    int
	Data       []byte
	EndOfFrame bool
	Abort      bool
}

// Meta returns the metadata of the message.
func (s *FrameSegment) Meta() *sim.MsgMeta {
	return &s.MsgMeta
}

// Clone returns a cloned FrameSegment with a different ID.
func (s *FrameSegment) Clone() sim.Msg {
	cloneMsg := *s
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// FrameSegmentBuilder can build frame segments.
type FrameSegmentBuilder struct {
	src, dst   sim.RemotePort
	srcPort    int
	data       []byte
	endOfFrame bool
	abort      bool
}

// WithSrc sets the source of the segment to build.
func (b FrameSegmentBuilder) WithSrc(src sim.RemotePort) FrameSegmentBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the segment to build.
func (b FrameSegmentBuilder) WithDst(dst sim.RemotePort) FrameSegmentBuilder {
	b.dst = dst
	return b
}

// WithSrcPort sets the ingress port index of the frame.
func (b FrameSegmentBuilder) WithSrcPort(port int) FrameSegmentBuilder {
	b.srcPort = port
	return b
}

// WithData sets the header bytes that the segment carries.
func (b FrameSegmentBuilder) WithData(data []byte) FrameSegmentBuilder {
	b.data = data
	return b
}

// WithEndOfFrame marks the segment as the last one of its frame.
func (b FrameSegmentBuilder) WithEndOfFrame() FrameSegmentBuilder {
	b.endOfFrame = true
	return b
}

// WithAbort marks the segment as aborting its frame.
func (b FrameSegmentBuilder) WithAbort() FrameSegmentBuilder {
	b.abort = true
	return b
}

// Build creates a new FrameSegment.
func (b FrameSegmentBuilder) Build() *FrameSegment {
	s := &FrameSegment{}
	s.ID = sim.GetIDGenerator().Generate()
	s.Src = b.src
	s.Dst = b.dst
	s.TrafficBytes = len(b.data)
	s.SrcPort = b.srcPort
	s.Data = b.data
	s.EndOfFrame = b.endOfFrame
	s.Abort = b.abort

	return s
}

// A LookupRsp reports the destination port set of one accepted frame.
// Known is false when the destination was not in the table and the miss
// mask was used.
type LookupRsp struct {
	sim.MsgMeta

	RspTo   string
	DstMask PortMask
	Known   bool
}

// Meta returns the metadata of the message.
func (r *LookupRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned LookupRsp with a different ID.
func (r *LookupRsp) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the end-of-frame segment being answered.
func (r *LookupRsp) GetRspTo() string {
	return r.RspTo
}

// LookupRspBuilder can build lookup responses.
type LookupRspBuilder struct {
	src, dst sim.RemotePort
	rspTo    string
	dstMask  PortMask
	known    bool
}

// WithSrc sets the source of the response to build.
func (b LookupRspBuilder) WithSrc(src sim.RemotePort) LookupRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b LookupRspBuilder) WithDst(dst sim.RemotePort) LookupRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the end-of-frame segment being answered.
func (b LookupRspBuilder) WithRspTo(id string) LookupRspBuilder {
	b.rspTo = id
	return b
}

// WithDstMask sets the destination port mask.
func (b LookupRspBuilder) WithDstMask(mask PortMask) LookupRspBuilder {
	b.dstMask = mask
	return b
}

// WithKnown marks the destination as found in the table.
func (b LookupRspBuilder) WithKnown(known bool) LookupRspBuilder {
	b.known = known
	return b
}

// Build creates a new LookupRsp.
func (b LookupRspBuilder) Build() *LookupRsp {
	r := &LookupRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RspTo = b.rspTo
	r.DstMask = b.dstMask
	r.Known = b.known

	return r
}

// A ScrubReq asks the lookup engine to walk its table and remove every
// entry that has not matched traffic within the scrub timeout.
type ScrubReq struct {
	sim.MsgMeta
}

// Meta returns the metadata of the message.
func (r *ScrubReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned ScrubReq with a different ID.
func (r *ScrubReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// ScrubReqBuilder can build scrub requests.
type ScrubReqBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the request to build.
func (b ScrubReqBuilder) WithSrc(src sim.RemotePort) ScrubReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ScrubReqBuilder) WithDst(dst sim.RemotePort) ScrubReqBuilder {
	b.dst = dst
	return b
}

// Build creates a new ScrubReq.
func (b ScrubReqBuilder) Build() *ScrubReq {
	r := &ScrubReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}

// A ScrubRsp reports the completion of a scrub walk.
type ScrubRsp struct {
	sim.MsgMeta

	RspTo   string
	Removed int
}

// Meta returns the metadata of the message.
func (r *ScrubRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned ScrubRsp with a different ID.
func (r *ScrubRsp) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the scrub request being answered.
func (r *ScrubRsp) GetRspTo() string {
	return r.RspTo
}

// ScrubRspBuilder can build scrub responses.
type ScrubRspBuilder struct {
	src, dst sim.RemotePort
	rspTo    string
	removed  int
}

// WithSrc sets the source of the response to build.
func (b ScrubRspBuilder) WithSrc(src sim.RemotePort) ScrubRspBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the response to build.
func (b ScrubRspBuilder) WithDst(dst sim.RemotePort) ScrubRspBuilder {
	b.dst = dst
	return b
}

// WithRspTo sets the ID of the scrub request being answered.
func (b ScrubRspBuilder) WithRspTo(id string) ScrubRspBuilder {
	b.rspTo = id
	return b
}

// WithRemoved sets the number of entries the walk removed.
func (b ScrubRspBuilder) WithRemoved(n int) ScrubRspBuilder {
	b.removed = n
	return b
}

// Build creates a new ScrubRsp.
func (b ScrubRspBuilder) Build() *ScrubRsp {
	r := &ScrubRsp{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.RspTo = b.rspTo
	r.Removed = b.removed

	return r
}

// A ConfigReq updates the runtime configuration of the lookup engine. Only
// the fields with their Set flag raised are applied.
type ConfigReq struct {
	sim.MsgMeta

	SetPromiscuous bool
	Promiscuous    PortMask

	SetMissMask bool
	MissMask    PortMask

	SetLearn bool
	Learn    bool
}

// Meta returns the metadata of the message.
func (r *ConfigReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned ConfigReq with a different ID.
func (r *ConfigReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the acknowledgment for the request.
func (r *ConfigReq) GenerateRsp() sim.Rsp {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// ConfigReqBuilder can build configuration requests.
type ConfigReqBuilder struct {
	src, dst sim.RemotePort

	setPromiscuous bool
	promiscuous    PortMask
	setMissMask    bool
	missMask       PortMask
	setLearn       bool
	learn          bool
}

// WithSrc sets the source of the request to build.
func (b ConfigReqBuilder) WithSrc(src sim.RemotePort) ConfigReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ConfigReqBuilder) WithDst(dst sim.RemotePort) ConfigReqBuilder {
	b.dst = dst
	return b
}

// WithPromiscuous sets the promiscuous port mask.
func (b ConfigReqBuilder) WithPromiscuous(mask PortMask) ConfigReqBuilder {
	b.setPromiscuous = true
	b.promiscuous = mask
	return b
}

// WithMissMask sets the mask used for unknown unicast destinations.
func (b ConfigReqBuilder) WithMissMask(mask PortMask) ConfigReqBuilder {
	b.setMissMask = true
	b.missMask = mask
	return b
}

// WithLearn enables or disables source-address learning.
func (b ConfigReqBuilder) WithLearn(enable bool) ConfigReqBuilder {
	b.setLearn = true
	b.learn = enable
	return b
}

// Build creates a new ConfigReq.
func (b ConfigReqBuilder) Build() *ConfigReq {
	r := &ConfigReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.SetPromiscuous = b.setPromiscuous
	r.Promiscuous = b.promiscuous
	r.SetMissMask = b.setMissMask
	r.MissMask = b.missMask
	r.SetLearn = b.setLearn
	r.Learn = b.learn

	return r
}

// A TableReadReq asks for the current contents of the forwarding table.
type TableReadReq struct {
	sim.MsgMeta
}

// Meta returns the metadata of the message.
func (r *TableReadReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned TableReadReq with a different ID.
func (r *TableReadReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// TableReadReqBuilder can build table read requests.
type TableReadReqBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the request to build.
func (b TableReadReqBuilder) WithSrc(src sim.RemotePort) TableReadReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b TableReadReqBuilder) WithDst(dst sim.RemotePort) TableReadReqBuilder {
	b.dst = dst
	return b
}

// Build creates a new TableReadReq.
func (b TableReadReqBuilder) Build() *TableReadReq {
	r := &TableReadReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}

// A TableReadRsp carries the valid entries of the forwarding table.
type TableReadRsp struct {
	sim.MsgMeta

	RspTo   string
	Entries []TableEntry
}

// Meta returns the metadata of the message.
func (r *TableReadRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned TableReadRsp with a different ID.
func (r *TableReadRsp) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the read request being answered.
func (r *TableReadRsp) GetRspTo() string {
	return r.RspTo
}

// A TableWriteReq inserts a static entry through the management interface.
type TableWriteReq struct {
	sim.MsgMeta

	Addr MACAddr
	Port int
}

// Meta returns the metadata of the message.
func (r *TableWriteReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned TableWriteReq with a different ID.
func (r *TableWriteReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the acknowledgment for the request.
func (r *TableWriteReq) GenerateRsp() sim.Rsp {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// TableWriteReqBuilder can build table write requests.
type TableWriteReqBuilder struct {
	src, dst sim.RemotePort
	addr     MACAddr
	port     int
}

// WithSrc sets the source of the request to build.
func (b TableWriteReqBuilder) WithSrc(
	src sim.RemotePort,
) TableWriteReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b TableWriteReqBuilder) WithDst(
	dst sim.RemotePort,
) TableWriteReqBuilder {
	b.dst = dst
	return b
}

// WithAddr sets the address of the entry to write.
func (b TableWriteReqBuilder) WithAddr(addr MACAddr) TableWriteReqBuilder {
	b.addr = addr
	return b
}

// WithPort sets the port of the entry to write.
func (b TableWriteReqBuilder) WithPort(port int) TableWriteReqBuilder {
	b.port = port
	return b
}

// Build creates a new TableWriteReq.
func (b TableWriteReqBuilder) Build() *TableWriteReq {
	r := &TableWriteReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst
	r.Addr = b.addr
	r.Port = b.port

	return r
}

// A TableClearReq removes every entry from the forwarding table.
type TableClearReq struct {
	sim.MsgMeta
}

// Meta returns the metadata of the message.
func (r *TableClearReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned TableClearReq with a different ID.
func (r *TableClearReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the acknowledgment for the request.
func (r *TableClearReq) GenerateRsp() sim.Rsp {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// TableClearReqBuilder can build table clear requests.
type TableClearReqBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the request to build.
func (b TableClearReqBuilder) WithSrc(
	src sim.RemotePort,
) TableClearReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b TableClearReqBuilder) WithDst(
	dst sim.RemotePort,
) TableClearReqBuilder {
	b.dst = dst
	return b
}

// Build creates a new TableClearReq.
func (b TableClearReqBuilder) Build() *TableClearReq {
	r := &TableClearReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}

// A ResetReq returns the lookup engine to its power-on state: empty table,
// all usage states idle, cursor and counters zero.
type ResetReq struct {
	sim.MsgMeta
}

// Meta returns the metadata of the message.
func (r *ResetReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned ResetReq with a different ID.
func (r *ResetReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GenerateRsp creates the acknowledgment for the request.
func (r *ResetReq) GenerateRsp() sim.Rsp {
	return sim.GeneralRspBuilder{}.
		WithSrc(r.Dst).
		WithDst(r.Src).
		WithOriginalReq(r).
		Build()
}

// ResetReqBuilder can build reset requests.
type ResetReqBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the request to build.
func (b ResetReqBuilder) WithSrc(src sim.RemotePort) ResetReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b ResetReqBuilder) WithDst(dst sim.RemotePort) ResetReqBuilder {
	b.dst = dst
	return b
}

// Build creates a new ResetReq.
func (b ResetReqBuilder) Build() *ResetReq {
	r := &ResetReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}

// A StatusReq asks for the diagnostic counters of the lookup engine.
type StatusReq struct {
	sim.MsgMeta
}

// Meta returns the metadata of the message.
func (r *StatusReq) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned StatusReq with a different ID.
func (r *StatusReq) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// StatusReqBuilder can build status requests.
type StatusReqBuilder struct {
	src, dst sim.RemotePort
}

// WithSrc sets the source of the request to build.
func (b StatusReqBuilder) WithSrc(src sim.RemotePort) StatusReqBuilder {
	b.src = src
	return b
}

// WithDst sets the destination of the request to build.
func (b StatusReqBuilder) WithDst(dst sim.RemotePort) StatusReqBuilder {
	b.dst = dst
	return b
}

// Build creates a new StatusReq.
func (b StatusReqBuilder) Build() *StatusReq {
	r := &StatusReq{}
	r.ID = sim.GetIDGenerator().Generate()
	r.Src = b.src
	r.Dst = b.dst

	return r
}

// A StatusRsp carries the diagnostic state of the lookup engine. The error
// counters are advisory; the engine keeps serving lookups after raising
// them.
type StatusRsp struct {
	sim.MsgMeta

	RspTo string

	FrameCount   uint64
	Occupancy    int
	Capacity     int
	FullErrors   uint64
	TableErrors  uint64
	ScrubRemoved uint64
	ScrubBusy    bool
}

// Meta returns the metadata of the message.
func (r *StatusRsp) Meta() *sim.MsgMeta {
	return &r.MsgMeta
}

// Clone returns a cloned StatusRsp with a different ID.
func (r *StatusRsp) Clone() sim.Msg {
	cloneMsg := *r
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

// GetRspTo returns the ID of the status request being answered.
func (r *StatusRsp) GetRspTo() string {
	return r.RspTo
}
