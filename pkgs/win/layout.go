package win

import "unsafe"

// Layout holds the byte offsets of the IP_ADAPTER_ADDRESSES_LH family of
// structures for one pointer size. Offsets are relative to the start of the
// structure they belong to.
// https://learn.microsoft.com/en-us/windows/win32/api/iptypes/ns-iptypes-ip_adapter_addresses_lh
type Layout struct {
	PtrSize int

	// IP_ADAPTER_ADDRESSES_LH
	AdapterSize                  int
	AdapterHeader                int
	AdapterLength                int
	AdapterIfIndex               int
	AdapterNext                  int
	AdapterName                  int
	AdapterFirstUnicast          int
	AdapterFirstDNSServer        int
	AdapterDNSSuffix             int
	AdapterDescription           int
	AdapterFriendlyName          int
	AdapterPhysicalAddress       int
	AdapterPhysicalAddressLength int
	AdapterFlags                 int
	AdapterMTU                   int
	AdapterIfType                int
	AdapterOperStatus            int
	AdapterIPv6IfIndex           int
	AdapterFirstPrefix           int
	AdapterTransmitLinkSpeed     int
	AdapterReceiveLinkSpeed      int
	AdapterFirstGateway          int
	AdapterIPv4Metric            int
	AdapterIPv6Metric            int
	AdapterLUID                  int
	AdapterNetworkGUID           int

	// Header shared by IP_ADAPTER_UNICAST_ADDRESS_LH, IP_ADAPTER_PREFIX_XP,
	// IP_ADAPTER_DNS_SERVER_ADDRESS_XP and IP_ADAPTER_GATEWAY_ADDRESS_LH:
	// {Length, Flags/Reserved, Next, SOCKET_ADDRESS}.
	EntryLength         int
	EntryNext           int
	EntrySockaddr       int
	EntrySockaddrLength int
	EntryHeader         int

	UnicastSize               int
	UnicastOnLinkPrefixLength int
	PrefixSize                int
	PrefixLength              int
	DNSServerSize             int
	GatewaySize               int
}

// Layout64 is the layout used by amd64 and arm64 Windows.
var Layout64 = Layout{
	PtrSize: 8,

	AdapterSize:                  448,
	AdapterHeader:                16,
	AdapterLength:                0,
	AdapterIfIndex:               4,
	AdapterNext:                  8,
	AdapterName:                  16,
	AdapterFirstUnicast:          24,
	AdapterFirstDNSServer:        48,
	AdapterDNSSuffix:             56,
	AdapterDescription:           64,
	AdapterFriendlyName:          72,
	AdapterPhysicalAddress:       80,
	AdapterPhysicalAddressLength: 88,
	AdapterFlags:                 92,
	AdapterMTU:                   96,
	AdapterIfType:                100,
	AdapterOperStatus:            104,
	AdapterIPv6IfIndex:           108,
	AdapterFirstPrefix:           176,
	AdapterTransmitLinkSpeed:     184,
	AdapterReceiveLinkSpeed:      192,
	AdapterFirstGateway:          208,
	AdapterIPv4Metric:            216,
	AdapterIPv6Metric:            220,
	AdapterLUID:                  224,
	AdapterNetworkGUID:           252,

	EntryLength:         0,
	EntryNext:           8,
	EntrySockaddr:       16,
	EntrySockaddrLength: 24,
	EntryHeader:         32,

	UnicastSize:               64,
	UnicastOnLinkPrefixLength: 56,
	PrefixSize:                40,
	PrefixLength:              32,
	DNSServerSize:             32,
	GatewaySize:               32,
}

// Layout32 is the layout used by 386 and arm Windows.
var Layout32 = Layout{
	PtrSize: 4,

	AdapterSize:                  376,
	AdapterHeader:                12,
	AdapterLength:                0,
	AdapterIfIndex:               4,
	AdapterNext:                  8,
	AdapterName:                  12,
	AdapterFirstUnicast:          16,
	AdapterFirstDNSServer:        28,
	AdapterDNSSuffix:             32,
	AdapterDescription:           36,
	AdapterFriendlyName:          40,
	AdapterPhysicalAddress:       44,
	AdapterPhysicalAddressLength: 52,
	AdapterFlags:                 56,
	AdapterMTU:                   60,
	AdapterIfType:                64,
	AdapterOperStatus:            68,
	AdapterIPv6IfIndex:           72,
	AdapterFirstPrefix:           140,
	AdapterTransmitLinkSpeed:     144,
	AdapterReceiveLinkSpeed:      152,
	AdapterFirstGateway:          164,
	AdapterIPv4Metric:            168,
	AdapterIPv6Metric:            172,
	AdapterLUID:                  176,
	AdapterNetworkGUID:           196,

	EntryLength:         0,
	EntryNext:           8,
	EntrySockaddr:       12,
	EntrySockaddrLength: 16,
	EntryHeader:         20,

	UnicastSize:               48,
	UnicastOnLinkPrefixLength: 44,
	PrefixSize:                24,
	PrefixLength:              20,
	DNSServerSize:             24,
	GatewaySize:               24,
}

// NativeLayout returns the layout matching the pointer size of the running binary.
func NativeLayout() *Layout {
	if unsafe.Sizeof(uintptr(0)) == 4 {
		return &Layout32
	}
	return &Layout64
}
