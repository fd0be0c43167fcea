package adapter

import (
	"net"
	"net/netip"

	"github.com/google/uuid"

	"github.com/wlynxg/ipconfig/pkgs/win"
)

// List returns a snapshot of every adapter on the host, in the order the OS
// reports them.
func List(opts ...Option) ([]Adapter, error) {
	o := newOptions(opts)
	buf, err := acquire(o)
	if err != nil {
		o.log.Warnf("list adapters: %v", err)
		return nil, &SnapshotError{Err: err}
	}
	return build(buf, o)
}

// Build decodes every adapter in buf and releases buf before returning,
// whatever the outcome. A single malformed field fails the whole snapshot.
func Build(buf *RawBuffer, opts ...Option) ([]Adapter, error) {
	return build(buf, newOptions(opts))
}

func build(buf *RawBuffer, o *options) ([]Adapter, error) {
	var adapters []Adapter
	err := withBuffer(buf, func(buf *RawBuffer) error {
		var err error
		adapters, err = decodeAdapters(buf, o)
		return err
	})
	if err != nil {
		o.log.Warnf("build adapter snapshot: %v", err)
		return nil, &SnapshotError{Err: err}
	}
	o.log.Debugf("decoded %d adapters", len(adapters))
	return adapters, nil
}

func decodeAdapters(buf *RawBuffer, o *options) ([]Adapter, error) {
	l := buf.layout
	var adapters []Adapter
	w := newWalker(buf, buf.first(), "adapter", l.AdapterHeader, l.AdapterNext)
	for w.Next() {
		a, err := decodeAdapter(recordView{buf: buf, off: w.Offset(), length: w.Length()}, o)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}
	if err := w.Err(); err != nil {
		return nil, err
	}
	return adapters, nil
}

func decodeAdapter(r recordView, o *options) (Adapter, error) {
	l := r.buf.layout
	a := Adapter{
		LUID:              win.LUID(r.u64(l.AdapterLUID)),
		NetworkGUID:       decodeGUID(r.bytes(l.AdapterNetworkGUID, 16)),
		IfIndex:           r.u32(l.AdapterIfIndex),
		IPv6IfIndex:       r.u32(l.AdapterIPv6IfIndex),
		MTU:               r.u32(l.AdapterMTU),
		Type:              decodeAdapterType(r.u32(l.AdapterIfType)),
		OperStatus:        decodeStatus(r.u32(l.AdapterOperStatus)),
		TransmitLinkSpeed: r.u64(l.AdapterTransmitLinkSpeed),
		ReceiveLinkSpeed:  r.u64(l.AdapterReceiveLinkSpeed),
		IPv4Metric:        r.u32(l.AdapterIPv4Metric),
		IPv6Metric:        r.u32(l.AdapterIPv6Metric),
	}

	var err error
	if a.Name, err = r.cstring(l.AdapterName, "AdapterName"); err != nil {
		return Adapter{}, err
	}
	if id, err := uuid.Parse(a.Name); err == nil {
		a.InterfaceGUID = id
	}
	if a.FriendlyName, err = r.wstring(l.AdapterFriendlyName, "FriendlyName"); err != nil {
		return Adapter{}, err
	}
	if a.Description, err = r.wstring(l.AdapterDescription, "Description"); err != nil {
		return Adapter{}, err
	}
	if r.ptr(l.AdapterDNSSuffix) != 0 {
		if a.DNSSuffix, err = r.wstring(l.AdapterDNSSuffix, "DnsSuffix"); err != nil {
			return Adapter{}, err
		}
	}
	if n := min(int(r.u32(l.AdapterPhysicalAddressLength)), win.MaxAdapterAddressLength); n > 0 {
		a.PhysicalAddress = net.HardwareAddr(append([]byte(nil), r.bytes(l.AdapterPhysicalAddress, n)...))
	}

	err = r.entries(l.AdapterFirstUnicast, "FirstUnicastAddress", func(e recordView) error {
		addr, err := e.address("FirstUnicastAddress")
		if err != nil {
			return err
		}
		a.IPAddresses = append(a.IPAddresses, addr)
		a.Subnets = append(a.Subnets, onLinkSubnet(addr, e))
		return nil
	})
	if err != nil {
		return Adapter{}, err
	}

	if o.includePrefixes {
		err = r.entries(l.AdapterFirstPrefix, "FirstPrefix", func(e recordView) error {
			addr, err := e.address("FirstPrefix")
			if err != nil {
				return err
			}
			p, err := addr.WithZone("").Prefix(int(e.u32(l.PrefixLength)))
			if err != nil {
				return decodeErr("FirstPrefix", e.off+l.PrefixLength, err)
			}
			a.Prefixes = append(a.Prefixes, p)
			return nil
		})
		if err != nil {
			return Adapter{}, err
		}
	}

	if o.includeDNS {
		if a.DNSServers, err = r.addresses(l.AdapterFirstDNSServer, "FirstDnsServerAddress"); err != nil {
			return Adapter{}, err
		}
	}
	if o.includeGateways {
		if a.Gateways, err = r.addresses(l.AdapterFirstGateway, "FirstGatewayAddress"); err != nil {
			return Adapter{}, err
		}
	}
	return a, nil
}

// addresses collects the SOCKET_ADDRESS of every entry of a sub-list.
func (r recordView) addresses(field int, name string) ([]netip.Addr, error) {
	var addrs []netip.Addr
	err := r.entries(field, name, func(e recordView) error {
		addr, err := e.address(name)
		if err != nil {
			return err
		}
		addrs = append(addrs, addr)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return addrs, nil
}

func onLinkSubnet(addr netip.Addr, e recordView) netip.Prefix {
	field := e.buf.layout.UnicastOnLinkPrefixLength
	if !e.has(field, 1) {
		return netip.Prefix{}
	}
	p, err := addr.WithZone("").Prefix(int(e.u8(field)))
	if err != nil {
		return netip.Prefix{}
	}
	return p
}
