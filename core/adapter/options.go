package adapter

import (
	"sync"

	mlog "github.com/wlynxg/ipconfig/pkgs/log"
	"github.com/wlynxg/ipconfig/pkgs/win"
)

// DefaultMaxAttempts bounds the allocate-and-query calls made after the size
// probe.
const DefaultMaxAttempts = 3

type options struct {
	includeDNS      bool
	includeGateways bool
	includePrefixes bool
	maxAttempts     int

	querier   Querier
	allocator Allocator
	layout    *win.Layout
	log       *mlog.Logger
}

// Option overrides a default of List, Acquire or Build.
type Option func(*options)

var defaultLogger = sync.OnceValue(func() *mlog.Logger {
	return mlog.New("adapter")
})

func newOptions(opts []Option) *options {
	o := &options{
		includeDNS:      true,
		includeGateways: true,
		includePrefixes: true,
		maxAttempts:     DefaultMaxAttempts,
		querier:         QuerierFunc(win.GetAdaptersAddresses),
		allocator:       localAllocator{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.layout == nil {
		o.layout = win.NativeLayout()
	}
	if o.log == nil {
		o.log = defaultLogger()
	}
	if o.maxAttempts < 1 {
		o.maxAttempts = 1
	}
	return o
}

// WithDNS selects whether DNS server addresses are requested and decoded.
func WithDNS(include bool) Option {
	return func(o *options) {
		o.includeDNS = include
	}
}

// WithGateways selects whether gateway addresses are requested and decoded.
func WithGateways(include bool) Option {
	return func(o *options) {
		o.includeGateways = include
	}
}

// WithPrefixes selects whether the adapter prefix list is requested and decoded.
func WithPrefixes(include bool) Option {
	return func(o *options) {
		o.includePrefixes = include
	}
}

// WithMaxAttempts sets how many allocate-and-query calls follow the size probe.
func WithMaxAttempts(n int) Option {
	return func(o *options) {
		o.maxAttempts = n
	}
}

func WithQuerier(q Querier) Option {
	return func(o *options) {
		o.querier = q
	}
}

func WithAllocator(a Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithLayout decodes buffers laid out for another pointer size.
func WithLayout(l *win.Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

func WithLogger(l *mlog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// flags returns the GetAdaptersAddresses flags for the selected options.
func (o *options) flags() uint32 {
	flags := win.GaaFlagSkipAnycast | win.GaaFlagSkipMulticast
	if !o.includeDNS {
		flags |= win.GaaFlagSkipDNSServer
	}
	if o.includeGateways {
		flags |= win.GaaFlagIncludeGateways
	}
	if o.includePrefixes {
		flags |= win.GaaFlagIncludePrefix
	}
	return flags
}
