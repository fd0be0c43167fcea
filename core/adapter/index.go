package adapter

import (
	"net"
	"net/netip"
	"sort"

	"github.com/libp2p/go-cidranger"
	"github.com/pkg/errors"
)

// FindInterfaceIndex returns the interface index of the adapter whose friendly
// name or adapter name equals name. Adapters without an index for the
// requested family are skipped.
func FindInterfaceIndex(adapters []Adapter, name string, ipv6 bool) (uint32, bool) {
	for _, a := range adapters {
		index := a.IfIndex
		if ipv6 {
			index = a.IPv6IfIndex
		}
		if index == 0 {
			continue
		}
		if a.FriendlyName == name || a.Name == name {
			return index, true
		}
	}
	return 0, false
}

// AddressIndex answers which adapters are on-link for an address.
type AddressIndex struct {
	ranger   cidranger.Ranger
	adapters []Adapter
}

// subnetEntry lists every adapter sharing one subnet; the ranger keeps a
// single entry per network.
type subnetEntry struct {
	network  net.IPNet
	bits     int
	adapters []int
}

func (e *subnetEntry) Network() net.IPNet {
	return e.network
}

// NewAddressIndex indexes the on-link subnets of adapters.
func NewAddressIndex(adapters []Adapter) (*AddressIndex, error) {
	var (
		order   []netip.Prefix
		subnets = make(map[netip.Prefix]*subnetEntry)
	)
	for i, a := range adapters {
		for _, p := range a.Subnets {
			if !p.IsValid() {
				continue
			}
			p = p.Masked()
			entry, ok := subnets[p]
			if !ok {
				entry = &subnetEntry{
					network: net.IPNet{
						IP:   p.Addr().AsSlice(),
						Mask: net.CIDRMask(p.Bits(), p.Addr().BitLen()),
					},
					bits: p.Bits(),
				}
				subnets[p] = entry
				order = append(order, p)
			}
			if n := len(entry.adapters); n == 0 || entry.adapters[n-1] != i {
				entry.adapters = append(entry.adapters, i)
			}
		}
	}

	idx := &AddressIndex{
		ranger:   cidranger.NewPCTrieRanger(),
		adapters: adapters,
	}
	for _, p := range order {
		if err := idx.ranger.Insert(subnets[p]); err != nil {
			return nil, errors.Wrapf(err, "index subnet %s", p)
		}
	}
	return idx, nil
}

// Lookup returns the adapters with a subnet containing addr, most specific
// subnet first. Each adapter appears once.
func (idx *AddressIndex) Lookup(addr netip.Addr) ([]Adapter, error) {
	addr = addr.WithZone("").Unmap()
	if !addr.IsValid() {
		return nil, nil
	}
	entries, err := idx.ranger.ContainingNetworks(net.IP(addr.AsSlice()))
	if err != nil {
		return nil, errors.Wrapf(err, "lookup %s", addr)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].(*subnetEntry).bits > entries[j].(*subnetEntry).bits
	})

	var (
		out  []Adapter
		seen = make(map[int]struct{})
	)
	for _, e := range entries {
		for _, i := range e.(*subnetEntry).adapters {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			out = append(out, idx.adapters[i])
		}
	}
	return out, nil
}
