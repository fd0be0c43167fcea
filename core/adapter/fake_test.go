package adapter

import (
	"encoding/binary"
	"net/netip"
	"unicode/utf16"

	"github.com/wlynxg/ipconfig/pkgs/win"
)

// fakeBase is where synthetic buffers pretend to live. Any non-zero value
// works as long as pointers are written relative to it.
const fakeBase uintptr = 0x10000

type fakeUnicast struct {
	addr netip.Addr
	bits uint8
}

type fakeAdapter struct {
	name, friendlyName, description, dnsSuffix string

	ifIndex, ipv6IfIndex uint32
	ifType, operStatus   uint32
	mtu                  uint32
	mac                  []byte
	luid                 uint64
	guid                 [16]byte
	speed                uint64
	metric               uint32

	unicast  []fakeUnicast
	prefixes []netip.Prefix
	dns      []netip.Addr
	gateways []netip.Addr
}

// image is a synthetic GetAdaptersAddresses result laid out like the OS
// does: the adapter records first, strings and sub-lists behind them.
type image struct {
	layout *win.Layout
	base   uintptr
	data   []byte

	records []int
	// unicast holds the offset of every unicast entry, per adapter.
	unicast [][]int
	// sockaddrs holds the offset of every unicast sockaddr, per adapter.
	sockaddrs [][]int
}

func newImage(layout *win.Layout, base uintptr, adapters []fakeAdapter) *image {
	img := &image{layout: layout, base: base}
	for range adapters {
		img.records = append(img.records, img.alloc(layout.AdapterSize))
	}

	l := layout
	for i, a := range adapters {
		rec := img.records[i]
		img.putU32(rec+l.AdapterLength, uint32(l.AdapterSize))
		img.putU32(rec+l.AdapterIfIndex, a.ifIndex)
		if i+1 < len(adapters) {
			img.putPtr(rec+l.AdapterNext, img.ptrTo(img.records[i+1]))
		}
		img.putPtr(rec+l.AdapterName, img.cstring(a.name))
		img.putPtr(rec+l.AdapterFriendlyName, img.wstring(a.friendlyName))
		img.putPtr(rec+l.AdapterDescription, img.wstring(a.description))
		if a.dnsSuffix != "" {
			img.putPtr(rec+l.AdapterDNSSuffix, img.wstring(a.dnsSuffix))
		}
		copy(img.data[rec+l.AdapterPhysicalAddress:], a.mac)
		img.putU32(rec+l.AdapterPhysicalAddressLength, uint32(len(a.mac)))
		img.putU32(rec+l.AdapterMTU, a.mtu)
		img.putU32(rec+l.AdapterIfType, a.ifType)
		img.putU32(rec+l.AdapterOperStatus, a.operStatus)
		img.putU32(rec+l.AdapterIPv6IfIndex, a.ipv6IfIndex)
		img.putU64(rec+l.AdapterTransmitLinkSpeed, a.speed)
		img.putU64(rec+l.AdapterReceiveLinkSpeed, a.speed)
		img.putU32(rec+l.AdapterIPv4Metric, a.metric)
		img.putU32(rec+l.AdapterIPv6Metric, a.metric)
		img.putU64(rec+l.AdapterLUID, a.luid)
		copy(img.data[rec+l.AdapterNetworkGUID:], a.guid[:])

		var unicast, sockaddrs []int
		addrs := make([]netip.Addr, len(a.unicast))
		for j, u := range a.unicast {
			addrs[j] = u.addr
		}
		img.list(rec+l.AdapterFirstUnicast, l.UnicastSize, addrs, func(off, j int) {
			img.data[off+l.UnicastOnLinkPrefixLength] = a.unicast[j].bits
			unicast = append(unicast, off)
			sockaddrs = append(sockaddrs, int(img.ptrAt(off+l.EntrySockaddr)-img.base))
		})
		img.unicast = append(img.unicast, unicast)
		img.sockaddrs = append(img.sockaddrs, sockaddrs)

		prefixes := make([]netip.Addr, len(a.prefixes))
		for j, p := range a.prefixes {
			prefixes[j] = p.Addr()
		}
		img.list(rec+l.AdapterFirstPrefix, l.PrefixSize, prefixes, func(off, j int) {
			img.putU32(off+l.PrefixLength, uint32(a.prefixes[j].Bits()))
		})
		img.list(rec+l.AdapterFirstDNSServer, l.DNSServerSize, a.dns, nil)
		img.list(rec+l.AdapterFirstGateway, l.GatewaySize, a.gateways, nil)
	}
	return img
}

// list writes one entry per address and links them from the head pointer at headAt.
func (img *image) list(headAt, size int, addrs []netip.Addr, extra func(off, i int)) {
	l := img.layout
	link := headAt
	for i, addr := range addrs {
		off := img.alloc(size)
		img.putU32(off+l.EntryLength, uint32(size))
		sa, n := img.sockaddr(addr)
		img.putPtr(off+l.EntrySockaddr, sa)
		img.putU32(off+l.EntrySockaddrLength, uint32(n))
		img.putPtr(link, img.ptrTo(off))
		link = off + l.EntryNext
		if extra != nil {
			extra(off, i)
		}
	}
}

func (img *image) alloc(n int) int {
	for len(img.data)%8 != 0 {
		img.data = append(img.data, 0)
	}
	off := len(img.data)
	img.data = append(img.data, make([]byte, n)...)
	return off
}

func (img *image) ptrTo(off int) uintptr {
	return img.base + uintptr(off)
}

func (img *image) putU32(off int, v uint32) {
	binary.LittleEndian.PutUint32(img.data[off:], v)
}

func (img *image) putU64(off int, v uint64) {
	binary.LittleEndian.PutUint64(img.data[off:], v)
}

func (img *image) putPtr(off int, p uintptr) {
	if img.layout.PtrSize == 4 {
		img.putU32(off, uint32(p))
		return
	}
	img.putU64(off, uint64(p))
}

func (img *image) ptrAt(off int) uintptr {
	if img.layout.PtrSize == 4 {
		return uintptr(binary.LittleEndian.Uint32(img.data[off:]))
	}
	return uintptr(binary.LittleEndian.Uint64(img.data[off:]))
}

func (img *image) wstring(s string) uintptr {
	u := utf16.Encode([]rune(s))
	off := img.alloc(2 * (len(u) + 1))
	for i, c := range u {
		binary.LittleEndian.PutUint16(img.data[off+2*i:], c)
	}
	return img.ptrTo(off)
}

// rawWstring writes code units verbatim, unpaired surrogates included.
func (img *image) rawWstring(units ...uint16) uintptr {
	off := img.alloc(2 * (len(units) + 1))
	for i, c := range units {
		binary.LittleEndian.PutUint16(img.data[off+2*i:], c)
	}
	return img.ptrTo(off)
}

func (img *image) cstring(s string) uintptr {
	off := img.alloc(len(s) + 1)
	copy(img.data[off:], s)
	return img.ptrTo(off)
}

func (img *image) sockaddr(addr netip.Addr) (uintptr, int) {
	var b [win.SockaddrInet6Len]byte
	n, err := win.PutSockaddr(b[:], netip.AddrPortFrom(addr, 0))
	if err != nil {
		panic(err)
	}
	off := img.alloc(n)
	copy(img.data[off:], b[:n])
	return img.ptrTo(off), n
}

// buffer wraps the image; frees counts Release calls reaching the free func.
func (img *image) buffer(frees *int) *RawBuffer {
	return NewRawBuffer(img.data, img.base, img.layout, func() error {
		if frees != nil {
			*frees++
		}
		return nil
	})
}

// fakeOS answers GetAdaptersAddresses with an image of adapters. extra[i]
// adds bytes to the size required by call i, probe included, to simulate
// adapters appearing between calls.
type fakeOS struct {
	layout   *win.Layout
	adapters []fakeAdapter
	extra    []uint32

	calls []int
	flags []uint32
}

func (f *fakeOS) GetAdaptersAddresses(family, flags uint32, buf []byte, size *uint32) error {
	call := len(f.calls)
	f.calls = append(f.calls, len(buf))
	f.flags = append(f.flags, flags)

	imageSize := uint32(len(newImage(f.layout, 0, f.adapters).data))
	if imageSize == 0 {
		return win.ErrorNoData
	}
	need := imageSize
	if call < len(f.extra) {
		need += f.extra[call]
	} else if len(f.extra) > 0 {
		need += f.extra[len(f.extra)-1]
	}
	if *size < need || uint32(len(buf)) < need {
		*size = need
		return win.ErrorBufferOverflow
	}

	img := newImage(f.layout, addressOf(buf), f.adapters)
	copy(buf, img.data)
	*size = imageSize
	return nil
}

// countingAllocator is a Go heap allocator that records every call.
type countingAllocator struct {
	sizes []uint32
	frees int
	err   error
}

func (c *countingAllocator) Alloc(size uint32) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.sizes = append(c.sizes, size)
	return make([]byte, size), nil
}

func (c *countingAllocator) Free(b []byte) error {
	c.frees++
	return nil
}

func (c *countingAllocator) allocs() int {
	return len(c.sizes)
}

func sampleAdapters() []fakeAdapter {
	return []fakeAdapter{
		{
			name:         "{4D36E972-E325-11CE-BFC1-08002BE10318}",
			friendlyName: "Ethernet",
			description:  "Realtek PCIe GbE Family Controller",
			dnsSuffix:    "lan",
			ifIndex:      12,
			ipv6IfIndex:  12,
			ifType:       win.IfTypeEthernetCsmacd,
			operStatus:   uint32(win.IfOperStatusUp),
			mtu:          1500,
			mac:          []byte{0x00, 0x1a, 0x2b, 0x3c, 0x4d, 0x5e},
			luid:         uint64(win.IfTypeEthernetCsmacd)<<48 | 3<<24,
			guid:         [16]byte{0x72, 0xe9, 0x36, 0x4d, 0x25, 0xe3, 0xce, 0x11, 0xbf, 0xc1, 0x08, 0x00, 0x2b, 0xe1, 0x03, 0x18},
			speed:        1_000_000_000,
			metric:       25,
			unicast: []fakeUnicast{
				{addr: netip.MustParseAddr("192.168.1.20"), bits: 24},
				{addr: netip.MustParseAddr("fe80::1c2b:3c4d").WithZone("12"), bits: 64},
			},
			prefixes: []netip.Prefix{
				netip.MustParsePrefix("192.168.1.0/24"),
				netip.MustParsePrefix("192.168.1.20/32"),
			},
			dns:      []netip.Addr{netip.MustParseAddr("192.168.1.1"), netip.MustParseAddr("1.1.1.1")},
			gateways: []netip.Addr{netip.MustParseAddr("192.168.1.1")},
		},
		{
			name:         "{2A8C3D11-0F4A-4C1B-9E36-6B1A0C6E5F10}",
			friendlyName: "Loopback Pseudo-Interface 1",
			description:  "Software Loopback Interface 1",
			ifIndex:      1,
			ipv6IfIndex:  1,
			ifType:       win.IfTypeSoftwareLoopback,
			operStatus:   uint32(win.IfOperStatusUp),
			mtu:          0xffffffff,
			unicast: []fakeUnicast{
				{addr: netip.MustParseAddr("::1"), bits: 128},
				{addr: netip.MustParseAddr("127.0.0.1"), bits: 8},
			},
		},
		{
			name:         "{9F2B7E80-51C3-4E7A-8D0C-2F5B6A1C3D4E}",
			friendlyName: "Wi-Fi",
			description:  "Intel(R) Wi-Fi 6 AX201 160MHz",
			ifIndex:      18,
			ipv6IfIndex:  18,
			ifType:       win.IfTypeIEEE80211,
			operStatus:   uint32(win.IfOperStatusDown),
			mtu:          1500,
			mac:          []byte{0x8c, 0x55, 0x4a, 0x01, 0x02, 0x03},
		},
	}
}
