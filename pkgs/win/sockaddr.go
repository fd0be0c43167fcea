package win

import (
	"encoding/binary"
	"net/netip"
	"strconv"
)

// Sizes and field offsets of SOCKADDR_IN and SOCKADDR_IN6.
const (
	SockaddrFamilyOffset = 0
	SockaddrPortOffset   = 2

	SockaddrInetLen        = 16
	SockaddrInetAddrOffset = 4

	SockaddrInet6Len           = 28
	SockaddrInet6FlowOffset    = 4
	SockaddrInet6AddrOffset    = 8
	SockaddrInet6ScopeIDOffset = 24
)

// PutSockaddr encodes ap as a SOCKADDR_IN or SOCKADDR_IN6 at the start of b
// and returns the number of bytes written. The zone of an IPv6 address must
// be numeric; it becomes the scope id.
func PutSockaddr(b []byte, ap netip.AddrPort) (int, error) {
	addr := ap.Addr()
	le := binary.LittleEndian
	if addr.Is4() {
		if len(b) < SockaddrInetLen {
			return 0, ErrorInvalidParameter
		}
		clear(b[:SockaddrInetLen])
		le.PutUint16(b[SockaddrFamilyOffset:], AfInet)
		le.PutUint16(b[SockaddrPortOffset:], htons(ap.Port()))
		a4 := addr.As4()
		copy(b[SockaddrInetAddrOffset:], a4[:])
		return SockaddrInetLen, nil
	} else if addr.Is6() {
		if len(b) < SockaddrInet6Len {
			return 0, ErrorInvalidParameter
		}
		clear(b[:SockaddrInet6Len])
		le.PutUint16(b[SockaddrFamilyOffset:], AfInet6)
		le.PutUint16(b[SockaddrPortOffset:], htons(ap.Port()))
		a16 := addr.As16()
		copy(b[SockaddrInet6AddrOffset:], a16[:])
		scopeID := uint32(0)
		if z := addr.Zone(); z != "" {
			if s, err := strconv.ParseUint(z, 10, 32); err == nil {
				scopeID = uint32(s)
			}
		}
		le.PutUint32(b[SockaddrInet6ScopeIDOffset:], scopeID)
		return SockaddrInet6Len, nil
	}
	return 0, ErrorInvalidParameter
}
