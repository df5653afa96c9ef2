package lookup

import (
	"fmt"

	"github.com/lumisim/macswitch/pipelining"
	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
	"github.com/lumisim/macswitch/switching/table"
)

// A Builder can build lookup dispatchers.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq

	portCount    int
	tableSize    int
	scrubTimeout uint64
	walkWidth    int

	strategy string
	lanes    int
	noEvict  bool

	learnDisabled bool
	promiscMask   switching.PortMask
	missMask      switching.PortMask
	missMaskSet   bool
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:         1 * sim.GHz,
		portCount:    8,
		tableSize:    64,
		scrubTimeout: 1024,
		walkWidth:    1,
		strategy:     table.StrategyBrute,
		lanes:        4,
	}
}

// WithEngine sets the event engine to use.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the dispatcher.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithPortCount sets the number of switch ports.
func (b Builder) WithPortCount(n int) Builder {
	b.portCount = n
	return b
}

// WithTableSize sets the forwarding-table capacity.
func (b Builder) WithTableSize(n int) Builder {
	b.tableSize = n
	return b
}

// WithScrubTimeout sets the aging horizon in frames: a scrub removes every
// entry that has not matched traffic within this many frames.
func (b Builder) WithScrubTimeout(frames uint64) Builder {
	b.scrubTimeout = frames
	return b
}

// WithScrubWalkWidth sets the number of entries a scrub walk covers per
// cycle.
func (b Builder) WithScrubWalkWidth(n int) Builder {
	b.walkWidth = n
	return b
}

// WithStrategy selects the backend store strategy by name. Unknown names
// fail at Build time.
func (b Builder) WithStrategy(name string) Builder {
	b.strategy = name
	return b
}

// WithLanes sets the compare lane count of the parallel strategy.
func (b Builder) WithLanes(n int) Builder {
	b.lanes = n
	return b
}

// WithReplacementDisabled makes the table drop new addresses instead of
// evicting when full.
func (b Builder) WithReplacementDisabled() Builder {
	b.noEvict = true
	return b
}

// WithLearningDisabled starts the dispatcher with source learning off.
func (b Builder) WithLearningDisabled() Builder {
	b.learnDisabled = true
	return b
}

// WithPromiscuousMask sets the ports that receive every frame.
func (b Builder) WithPromiscuousMask(mask switching.PortMask) Builder {
	b.promiscMask = mask
	return b
}

// WithMissMask sets the mask used for unknown unicast destinations. The
// default floods all ports.
func (b Builder) WithMissMask(mask switching.PortMask) Builder {
	b.missMask = mask
	b.missMaskSet = true
	return b
}

// Build creates a lookup dispatcher.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		panic("lookup dispatcher requires an engine")
	}

	if b.portCount <= 0 || b.portCount > switching.MaxPorts {
		panic(fmt.Sprintf("port count %d out of range (0, %d]",
			b.portCount, switching.MaxPorts))
	}

	if b.walkWidth <= 0 {
		panic(fmt.Sprintf("scrub walk width must be positive, got %d",
			b.walkWidth))
	}

	c := &Comp{
		portCount:    b.portCount,
		scrubTimeout: b.scrubTimeout,
		walkWidth:    b.walkWidth,
		learnEnabled: !b.learnDisabled,
		promiscMask:  b.promiscMask,
		assembly:     make([]headerAssembly, b.portCount),
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	storeBuilder := table.MakeBuilder().
		WithStrategy(b.strategy).
		WithCapacity(b.tableSize).
		WithLanes(b.lanes).
		WithPortCount(b.portCount)
	if b.noEvict {
		storeBuilder = storeBuilder.WithReplacementDisabled()
	}
	c.store = storeBuilder.Build()

	c.missMask = switching.AllPorts(b.portCount)
	if b.missMaskSet {
		c.missMask = b.missMask
	}

	c.postPipelineBuf = sim.NewBuffer(name+".PostPipelineBuf", 4)
	c.lookupPipeline = pipelining.MakeBuilder().
		WithPipelineWidth(1).
		WithNumStage(c.store.SearchLatency()).
		WithCyclePerStage(1).
		WithPostPipelineBuffer(c.postPipelineBuf).
		Build(name + ".LookupPipeline")

	c.FramePort = sim.NewPort(c, 16, 16, name+".FramePort")
	c.CtrlPort = sim.NewPort(c, 4, 4, name+".CtrlPort")
	c.AddPort("Frame", c.FramePort)
	c.AddPort("Ctrl", c.CtrlPort)

	c.AddMiddleware(&middleware{Comp: c})

	return c
}
