package directconnection

import "github.com/lumisim/macswitch/sim"

// Builder can build direct connections.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// WithEngine sets the engine that the connection uses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency that the connection delivers messages at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates a new direct connection.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		panic("engine is not specified")
	}

	c := new(Comp)
	c.TickingComponent = sim.NewSecondaryTickingComponent(
		name, b.engine, b.freq, c)
	c.ends = make(map[sim.RemotePort]sim.Port)

	c.AddMiddleware(&middleware{Comp: c})

	return c
}
