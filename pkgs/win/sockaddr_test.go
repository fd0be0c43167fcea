package win

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSockaddr(t *testing.T) {
	tests := []struct {
		name string
		ap   netip.AddrPort
		want []byte
	}{
		{
			name: "inet",
			ap:   netip.MustParseAddrPort("192.168.1.20:53"),
			want: []byte{
				0x02, 0x00, 0x00, 0x35, 192, 168, 1, 20,
				0, 0, 0, 0, 0, 0, 0, 0,
			},
		},
		{
			name: "inet6 with scope",
			ap:   netip.MustParseAddrPort("[fe80::1%12]:443"),
			want: []byte{
				0x17, 0x00, 0x01, 0xbb, 0, 0, 0, 0,
				0xfe, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01,
				0x0c, 0x00, 0x00, 0x00,
			},
		},
		{
			name: "inet6 named zone",
			ap:   netip.MustParseAddrPort("[fe80::1%eth0]:0"),
			want: []byte{
				0x17, 0x00, 0x00, 0x00, 0, 0, 0, 0,
				0xfe, 0x80, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01,
				0, 0, 0, 0,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := make([]byte, SockaddrInet6Len)
			for i := range b {
				b[i] = 0xff
			}
			n, err := PutSockaddr(b, tc.ap)
			require.NoError(t, err)
			assert.Equal(t, tc.want, b[:n])
		})
	}
}

func TestPutSockaddrErrors(t *testing.T) {
	_, err := PutSockaddr(make([]byte, SockaddrInetLen-1), netip.MustParseAddrPort("10.0.0.1:80"))
	assert.ErrorIs(t, err, ErrorInvalidParameter)

	_, err = PutSockaddr(make([]byte, SockaddrInetLen), netip.MustParseAddrPort("[::1]:80"))
	assert.ErrorIs(t, err, ErrorInvalidParameter)

	_, err = PutSockaddr(make([]byte, SockaddrInet6Len), netip.AddrPort{})
	assert.ErrorIs(t, err, ErrorInvalidParameter)
}

func TestLUID(t *testing.T) {
	luid := LUID(uint64(IfTypeIEEE80211)<<48 | 0x000102<<24)
	assert.Equal(t, IfTypeIEEE80211, luid.IfType())
	assert.Equal(t, uint32(0x000102), luid.NetLuidIndex())
	assert.Equal(t, "LUID{IfType: 71, Index: 258}", luid.String())
}
