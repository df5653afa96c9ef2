package table

import "fmt"

// Strategy names accepted by the builder.
const (
	StrategyBinary   = "binary"
	StrategyBrute    = "brute"
	StrategyHashed   = "hashed"
	StrategyParallel = "parallel"
	StrategySimple   = "simple"
	StrategyStream   = "stream"
)

// Strategies lists the registered strategy names.
func Strategies() []string {
	return []string{
		StrategyBinary,
		StrategyBrute,
		StrategyHashed,
		StrategyParallel,
		StrategySimple,
		StrategyStream,
	}
}

// A Builder can build stores.
type Builder struct {
	strategy  string
	capacity  int
	lanes     int
	portCount int
	noEvict   bool
}

// MakeBuilder creates a default builder.
func MakeBuilder() Builder {
	return Builder{
		strategy:  StrategyBrute,
		capacity:  32,
		lanes:     4,
		portCount: 8,
	}
}

// WithStrategy sets the strategy to build. Unknown names fail at Build
// time.
func (b Builder) WithStrategy(name string) Builder {
	b.strategy = name
	return b
}

// WithCapacity sets the slot count of the store to build. The stream
// strategy ignores it and uses the port count instead.
func (b Builder) WithCapacity(n int) Builder {
	b.capacity = n
	return b
}

// WithLanes sets the compare lane count of the parallel strategy.
func (b Builder) WithLanes(n int) Builder {
	b.lanes = n
	return b
}

// WithPortCount sets the number of switch ports.
func (b Builder) WithPortCount(n int) Builder {
	b.portCount = n
	return b
}

// WithReplacementDisabled makes the store drop new addresses instead of
// evicting when full.
func (b Builder) WithReplacementDisabled() Builder {
	b.noEvict = true
	return b
}

// Build creates the store for the configured strategy.
func (b Builder) Build() Store {
	if b.capacity <= 0 {
		panic(fmt.Sprintf("store capacity must be positive, got %d",
			b.capacity))
	}

	switch b.strategy {
	case StrategyBinary:
		return NewBinaryStore(b.capacity, b.noEvict)
	case StrategyBrute:
		return NewBruteStore(b.capacity, b.noEvict)
	case StrategyHashed:
		return NewHashedStore(b.capacity, b.noEvict)
	case StrategyParallel:
		return NewParallelStore(b.capacity, b.lanes, b.noEvict)
	case StrategySimple:
		return NewSimpleStore(b.capacity, b.noEvict)
	case StrategyStream:
		return NewStreamStore(b.portCount)
	default:
		panic(fmt.Sprintf("unknown table strategy %q", b.strategy))
	}
}
