package switching

import (
	"fmt"
	"math/bits"
)

// A PortMask is a bitset over the ports of a switch. Bit i selects port i.
type PortMask uint64

// MaxPorts is the largest supported port count.
const MaxPorts = 64

// MaskForPort returns the one-hot mask selecting the given port.
func MaskForPort(port int) PortMask {
	if port < 0 || port >= MaxPorts {
		panic(fmt.Sprintf("port index %d out of range", port))
	}

	return 1 << uint(port)
}

// AllPorts returns the mask selecting every one of n ports.
func AllPorts(n int) PortMask {
	if n < 0 || n > MaxPorts {
		panic(fmt.Sprintf("port count %d out of range", n))
	}

	if n == MaxPorts {
		return ^PortMask(0)
	}

	return PortMask(1)<<uint(n) - 1
}

// Has reports whether the mask selects the given port.
func (m PortMask) Has(port int) bool {
	return m&MaskForPort(port) != 0
}

// With returns the mask with the given port added.
func (m PortMask) With(port int) PortMask {
	return m | MaskForPort(port)
}

// Without returns the mask with the given port removed.
func (m PortMask) Without(port int) PortMask {
	return m &^ MaskForPort(port)
}

// Count returns the number of ports the mask selects.
func (m PortMask) Count() int {
	return bits.OnesCount64(uint64(m))
}

func (m PortMask) String() string {
	return fmt.Sprintf("%016x", uint64(m))
}
