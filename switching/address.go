// Package switching defines the domain types and the message protocol of
// the switch forwarding core.
package switching

import (
	"fmt"
	"strconv"
	"strings"
)

// A MACAddr is a 48-bit Ethernet MAC address stored in the lower 48 bits of
// a uint64, first wire octet in the most significant position.
type MACAddr uint64

// Special addresses.
const (
	AddrNone      MACAddr = 0
	AddrBroadcast MACAddr = 0xFFFF_FFFF_FFFF

	// addrMulticastBit is the individual/group bit, the LSB of the first
	// octet on the wire.
	addrMulticastBit MACAddr = 1 << 40

	// AddrBytes is the number of bytes in a MAC address.
	AddrBytes = 6
)

// AddrFromBytes assembles a MAC address from 6 bytes in network order.
func AddrFromBytes(b []byte) MACAddr {
	if len(b) != AddrBytes {
		panic(fmt.Sprintf("MAC address must be %d bytes, got %d",
			AddrBytes, len(b)))
	}

	var a MACAddr
	for _, octet := range b {
		a = a<<8 | MACAddr(octet)
	}

	return a
}

// ParseAddr parses an address of the form "aa:bb:cc:dd:ee:ff".
func ParseAddr(s string) (MACAddr, error) {
	parts := strings.Split(s, ":")
	if len(parts) != AddrBytes {
		return 0, fmt.Errorf("malformed MAC address %q", s)
	}

	var a MACAddr
	for _, p := range parts {
		octet, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("malformed MAC address %q: %w", s, err)
		}

		a = a<<8 | MACAddr(octet)
	}

	return a, nil
}

// Bytes returns the 6 bytes of the address in network order.
func (a MACAddr) Bytes() []byte {
	b := make([]byte, AddrBytes)
	for i := AddrBytes - 1; i >= 0; i-- {
		b[i] = byte(a)
		a >>= 8
	}

	return b
}

// IsZero reports whether the address is the all-zero address.
func (a MACAddr) IsZero() bool {
	return a == AddrNone
}

// IsBroadcast reports whether the address is the all-ones address.
func (a MACAddr) IsBroadcast() bool {
	return a == AddrBroadcast
}

// IsMulticast reports whether the group bit of the address is set. The
// broadcast address is a multicast address.
func (a MACAddr) IsMulticast() bool {
	return a&addrMulticastBit != 0
}

// IsUnicast reports whether the address can be learned as a source: not
// zero and not a group address.
func (a MACAddr) IsUnicast() bool {
	return !a.IsZero() && !a.IsMulticast()
}

func (a MACAddr) String() string {
	b := a.Bytes()

	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		b[0], b[1], b[2], b[3], b[4], b[5])
}
