package trafficgen

import (
	"fmt"
	"math/rand"

	"github.com/lumisim/macswitch/recording"
	"github.com/lumisim/macswitch/sim"
	"github.com/lumisim/macswitch/switching"
)

// A Builder can build traffic generators.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq

	lookupFrame sim.RemotePort
	lookupCtrl  sim.RemotePort

	numFrames    uint64
	portCount    int
	numStations  int
	segmentBytes int
	abortRate    float64
	scrubEvery   uint64
	seed         int64

	recorder recording.DataRecorder
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq:         1 * sim.GHz,
		numFrames:    1024,
		portCount:    8,
		numStations:  16,
		segmentBytes: 4,
		abortRate:    0.02,
		seed:         1,
	}
}

// WithEngine sets the event engine to use.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the agent.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLookupFrame sets the frame port of the dispatcher under test.
func (b Builder) WithLookupFrame(remote sim.RemotePort) Builder {
	b.lookupFrame = remote
	return b
}

// WithLookupCtrl sets the control port of the dispatcher under test.
func (b Builder) WithLookupCtrl(remote sim.RemotePort) Builder {
	b.lookupCtrl = remote
	return b
}

// WithNumFrames sets the number of frames to generate.
func (b Builder) WithNumFrames(n uint64) Builder {
	b.numFrames = n
	return b
}

// WithPortCount sets the number of switch ports to spread traffic over.
func (b Builder) WithPortCount(n int) Builder {
	b.portCount = n
	return b
}

// WithNumStations sets the size of the MAC address pool.
func (b Builder) WithNumStations(n int) Builder {
	b.numStations = n
	return b
}

// WithSegmentBytes sets the number of header bytes per segment.
func (b Builder) WithSegmentBytes(n int) Builder {
	b.segmentBytes = n
	return b
}

// WithAbortRate sets the fraction of frames aborted mid-header.
func (b Builder) WithAbortRate(rate float64) Builder {
	b.abortRate = rate
	return b
}

// WithScrubInterval makes the agent issue a scrub request every n committed
// frames. Zero disables scrubbing.
func (b Builder) WithScrubInterval(n uint64) Builder {
	b.scrubEvery = n
	return b
}

// WithSeed sets the random seed of the agent.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRecorder makes the agent record one row per answered frame.
func (b Builder) WithRecorder(r recording.DataRecorder) Builder {
	b.recorder = r
	return b
}

// Build creates a traffic generator.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		panic("traffic generator requires an engine")
	}

	if b.lookupFrame == "" || b.lookupCtrl == "" {
		panic("traffic generator requires the dispatcher ports")
	}

	if b.segmentBytes <= 0 || b.segmentBytes > 2*switching.AddrBytes {
		panic(fmt.Sprintf("segment bytes %d out of range (0, %d]",
			b.segmentBytes, 2*switching.AddrBytes))
	}

	if b.numStations <= 0 {
		panic(fmt.Sprintf("station count must be positive, got %d",
			b.numStations))
	}

	c := &Comp{
		lookupFrame:  b.lookupFrame,
		lookupCtrl:   b.lookupCtrl,
		rand:         rand.New(rand.NewSource(b.seed)),
		numFrames:    b.numFrames,
		portCount:    b.portCount,
		segmentBytes: b.segmentBytes,
		abortRate:    b.abortRate,
		scrubEvery:   b.scrubEvery,
		nextScrubAt:  b.scrubEvery,
		recorder:     b.recorder,
		pending:      make(map[string]pendingFrame),
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	c.addrPool = make([]switching.MACAddr, b.numStations)
	for i := range c.addrPool {
		c.addrPool[i] = switching.MACAddr(0x0200_0000_0000 + i + 1)
	}

	if c.recorder != nil {
		c.recorder.CreateTable(frameTable, frameRecord{})
	}

	c.FramePort = sim.NewPort(c, 4, 4, name+".FramePort")
	c.CtrlPort = sim.NewPort(c, 4, 4, name+".CtrlPort")
	c.AddPort("Frame", c.FramePort)
	c.AddPort("Ctrl", c.CtrlPort)

	c.AddMiddleware(&middleware{Comp: c})

	return c
}
