package adapter

import (
	"encoding/binary"
	"net/netip"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/wlynxg/ipconfig/pkgs/win"
	"github.com/wlynxg/ipconfig/pkgs/xpool"
)

// maxStringUnits bounds every string read from the buffer. Interface strings
// are limited to IF_MAX_STRING_SIZE (256) characters by the OS.
const maxStringUnits = 1024

// Decoders keep transformer state and are not safe for concurrent use.
var utf16Decoders = xpool.NewWithReset(func() *encoding.Decoder {
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
}, func(d *encoding.Decoder) {
	d.Reset()
})

// decodeSocketAddress converts a SOCKADDR_IN or SOCKADDR_IN6 to an address.
// The IPv6 scope id, when set, becomes the numeric zone.
func decodeSocketAddress(blob []byte) (netip.Addr, error) {
	if len(blob) < win.SockaddrPortOffset {
		return netip.Addr{}, ErrTruncated
	}

	le := binary.LittleEndian
	switch family := le.Uint16(blob[win.SockaddrFamilyOffset:]); family {
	case win.AfInet:
		end := win.SockaddrInetAddrOffset + 4
		if len(blob) < end {
			return netip.Addr{}, errors.Wrapf(ErrTruncated, "AF_INET sockaddr of %d bytes", len(blob))
		}
		return netip.AddrFrom4([4]byte(blob[win.SockaddrInetAddrOffset:end])), nil
	case win.AfInet6:
		if len(blob) < win.SockaddrInet6Len {
			return netip.Addr{}, errors.Wrapf(ErrTruncated, "AF_INET6 sockaddr of %d bytes", len(blob))
		}
		addr := netip.AddrFrom16([16]byte(blob[win.SockaddrInet6AddrOffset:win.SockaddrInet6ScopeIDOffset]))
		if scope := le.Uint32(blob[win.SockaddrInet6ScopeIDOffset:]); scope != 0 {
			addr = addr.WithZone(strconv.FormatUint(uint64(scope), 10))
		}
		return addr, nil
	default:
		return netip.Addr{}, errors.Wrapf(ErrUnknownAddressFamily, "family %d", family)
	}
}

// decodeWideString reads a NUL terminated UTF-16LE string of at most maxLen
// code units. Unpaired surrogates become U+FFFD.
func decodeWideString(buf *RawBuffer, ptr uintptr, maxLen int) (string, error) {
	off, err := buf.offset(ptr, 2)
	if err != nil {
		return "", err
	}

	end := off
	for n := 0; n < maxLen; n++ {
		if end+2 > buf.Len() {
			return "", errors.Wrap(ErrOutOfBounds, "unterminated string")
		}
		if buf.u16(end) == 0 {
			break
		}
		end += 2
	}
	if end == off {
		return "", nil
	}

	dec := utf16Decoders.Get()
	defer utf16Decoders.Put(dec)
	out, err := dec.Bytes(buf.data[off:end])
	if err != nil {
		return "", errors.Wrap(err, "decode utf-16")
	}
	return string(out), nil
}

// decodeCString reads a NUL terminated ANSI string such as AdapterName.
func decodeCString(buf *RawBuffer, ptr uintptr, maxLen int) (string, error) {
	off, err := buf.offset(ptr, 1)
	if err != nil {
		return "", err
	}

	end := off
	for n := 0; n < maxLen; n++ {
		if end >= buf.Len() {
			return "", errors.Wrap(ErrOutOfBounds, "unterminated string")
		}
		if buf.data[end] == 0 {
			break
		}
		end++
	}
	return strings.ToValidUTF8(string(buf.data[off:end]), "\uFFFD"), nil
}

func decodeAdapterType(code uint32) AdapterType {
	kind := KindOther
	switch code {
	case win.IfTypeEthernetCsmacd:
		kind = KindEthernet
	case win.IfTypeSoftwareLoopback:
		kind = KindLoopback
	case win.IfTypeTunnel:
		kind = KindTunnel
	case win.IfTypeIEEE80211:
		kind = KindWireless
	case win.IfTypePPP:
		kind = KindPPP
	case win.IfTypeIso88025Tokenring:
		kind = KindTokenRing
	case win.IfTypeATM:
		kind = KindATM
	case win.IfTypeIEEE1394:
		kind = KindIEEE1394
	}
	return AdapterType{Kind: kind, Code: code}
}

func decodeStatus(code uint32) OperStatus {
	switch win.IfOperStatus(code) {
	case win.IfOperStatusUp:
		return OperStatusUp
	case win.IfOperStatusDown, win.IfOperStatusNotPresent, win.IfOperStatusLowerLayerDown:
		return OperStatusDown
	default:
		return OperStatusUnknown
	}
}

// decodeGUID converts a Windows GUID, whose first three groups are little
// endian, to RFC 4122 byte order.
func decodeGUID(b []byte) uuid.UUID {
	var u uuid.UUID
	if len(b) < len(u) {
		return uuid.Nil
	}
	le, be := binary.LittleEndian, binary.BigEndian
	be.PutUint32(u[0:], le.Uint32(b[0:]))
	be.PutUint16(u[4:], le.Uint16(b[4:]))
	be.PutUint16(u[6:], le.Uint16(b[6:]))
	copy(u[8:], b[8:16])
	return u
}
