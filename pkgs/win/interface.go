package win

import "fmt"

// LUID is the NET_LUID_LH value identifying an interface on this host.
// Bits 0-23 are reserved, 24-47 hold the per-type index, 48-63 the IANA ifType.
type LUID uint64

func (l LUID) IfType() uint32 {
	return uint32(l >> 48)
}

func (l LUID) NetLuidIndex() uint32 {
	return uint32(l>>24) & 0xFFFFFF
}

func (l LUID) String() string {
	return fmt.Sprintf("LUID{IfType: %d, Index: %d}", l.IfType(), l.NetLuidIndex())
}
