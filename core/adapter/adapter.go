// Package adapter enumerates the host's network adapters through
// GetAdaptersAddresses and turns the returned record graph into owned values.
package adapter

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/google/uuid"

	"github.com/wlynxg/ipconfig/pkgs/win"
)

// Adapter is one network interface. It holds no reference into the buffer it
// was decoded from.
type Adapter struct {
	// Name is the permanent adapter name, the interface GUID in braces.
	Name          string
	InterfaceGUID uuid.UUID
	NetworkGUID   uuid.UUID
	LUID          win.LUID
	IfIndex       uint32
	IPv6IfIndex   uint32

	FriendlyName    string
	Description     string
	DNSSuffix       string
	PhysicalAddress net.HardwareAddr
	MTU             uint32
	Type            AdapterType
	OperStatus      OperStatus

	IPAddresses []netip.Addr
	// Subnets holds the on-link prefix of each entry of IPAddresses, in the
	// same order. It is the zero Prefix when the OS reports no valid length.
	Subnets    []netip.Prefix
	Prefixes   []netip.Prefix
	DNSServers []netip.Addr
	Gateways   []netip.Addr

	TransmitLinkSpeed uint64
	ReceiveLinkSpeed  uint64
	IPv4Metric        uint32
	IPv6Metric        uint32
}

type AdapterKind int

const (
	KindOther AdapterKind = iota
	KindEthernet
	KindLoopback
	KindTunnel
	KindWireless
	KindPPP
	KindTokenRing
	KindATM
	KindIEEE1394
)

var kindNames = [...]string{
	KindOther:     "other",
	KindEthernet:  "ethernet",
	KindLoopback:  "loopback",
	KindTunnel:    "tunnel",
	KindWireless:  "wireless",
	KindPPP:       "ppp",
	KindTokenRing: "tokenring",
	KindATM:       "atm",
	KindIEEE1394:  "ieee1394",
}

func (k AdapterKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

// AdapterType is the decoded IANA ifType. Code keeps the raw value so types
// without a Kind of their own stay distinguishable.
type AdapterType struct {
	Kind AdapterKind
	Code uint32
}

func (t AdapterType) String() string {
	if t.Kind == KindOther {
		return fmt.Sprintf("other(%d)", t.Code)
	}
	return t.Kind.String()
}

type OperStatus int

const (
	OperStatusUnknown OperStatus = iota
	OperStatusUp
	OperStatusDown
)

func (s OperStatus) String() string {
	switch s {
	case OperStatusUp:
		return "up"
	case OperStatusDown:
		return "down"
	default:
		return "unknown"
	}
}
