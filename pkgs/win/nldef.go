package win

// Address families as numbered by winsock. AF_INET6 differs from most unix
// systems.
const (
	AfUnspec uint16 = 0
	AfInet   uint16 = 2
	AfInet6  uint16 = 23
)

// GetAdaptersAddresses flags.
const (
	GaaFlagSkipUnicast      uint32 = 0x0001
	GaaFlagSkipAnycast      uint32 = 0x0002
	GaaFlagSkipMulticast    uint32 = 0x0004
	GaaFlagSkipDNSServer    uint32 = 0x0008
	GaaFlagIncludePrefix    uint32 = 0x0010
	GaaFlagSkipFriendlyName uint32 = 0x0020
	GaaFlagIncludeGateways  uint32 = 0x0080
)

// IfOperStatus is the RFC 2863 operational state reported in OperStatus.
type IfOperStatus uint32

const (
	IfOperStatusUp IfOperStatus = iota + 1
	IfOperStatusDown
	IfOperStatusTesting
	IfOperStatusUnknown
	IfOperStatusDormant
	IfOperStatusNotPresent
	IfOperStatusLowerLayerDown
)

// IANA ifType values reported in IfType.
// https://www.iana.org/assignments/ianaiftype-mib/ianaiftype-mib
const (
	IfTypeOther             uint32 = 1
	IfTypeEthernetCsmacd    uint32 = 6
	IfTypeIso88025Tokenring uint32 = 9
	IfTypePPP               uint32 = 23
	IfTypeSoftwareLoopback  uint32 = 24
	IfTypeATM               uint32 = 37
	IfTypeIEEE80211         uint32 = 71
	IfTypeTunnel            uint32 = 131
	IfTypeIEEE1394          uint32 = 144
)

// MaxAdapterAddressLength is the size of the PhysicalAddress array.
const MaxAdapterAddressLength = 8
