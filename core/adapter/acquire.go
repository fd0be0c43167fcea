package adapter

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	mlog "github.com/wlynxg/ipconfig/pkgs/log"
	"github.com/wlynxg/ipconfig/pkgs/win"
)

// Querier performs GetAdaptersAddresses. An empty buf asks only for the
// required size, which is reported through size along with
// win.ErrorBufferOverflow.
type Querier interface {
	GetAdaptersAddresses(family, flags uint32, buf []byte, size *uint32) error
}

type QuerierFunc func(family, flags uint32, buf []byte, size *uint32) error

func (f QuerierFunc) GetAdaptersAddresses(family, flags uint32, buf []byte, size *uint32) error {
	return f(family, flags, buf, size)
}

type acquireState int

const (
	stateProbing acquireState = iota
	stateAllocated
	stateRetrying
	stateDone
	stateFailed
)

// acquirer runs the probe, allocate, query and retry protocol. It owns at
// most one allocation at a time and frees it before moving on.
type acquirer struct {
	q      Querier
	alloc  Allocator
	layout *win.Layout
	log    *mlog.Logger
	flags  uint32
	max    int

	state    acquireState
	size     uint32
	attempts int
	mem      []byte
	result   *RawBuffer
	err      error
}

// Acquire fetches the adapter buffer. The caller owns the result and must
// Release it; Build does that itself.
func Acquire(opts ...Option) (*RawBuffer, error) {
	return acquire(newOptions(opts))
}

func acquire(o *options) (*RawBuffer, error) {
	a := &acquirer{
		q:      o.querier,
		alloc:  o.allocator,
		layout: o.layout,
		log:    o.log,
		flags:  o.flags(),
		max:    o.maxAttempts,
	}
	return a.run()
}

func (a *acquirer) run() (*RawBuffer, error) {
	for a.state != stateDone && a.state != stateFailed {
		switch a.state {
		case stateProbing:
			a.probe()
		case stateAllocated:
			a.query()
		case stateRetrying:
			a.allocate()
		}
	}
	if a.state == stateFailed {
		return nil, a.err
	}
	return a.result, nil
}

func (a *acquirer) probe() {
	err := a.q.GetAdaptersAddresses(uint32(win.AfUnspec), a.flags, nil, &a.size)
	switch {
	case errors.Is(err, win.ErrorNoData), err == nil && a.size == 0:
		a.empty()
	case err == nil, errors.Is(err, win.ErrorBufferOverflow):
		if a.size == 0 {
			a.fail("probe", errors.Wrap(err, "no size reported"))
			return
		}
		a.log.Debugf("probe reports %d bytes", a.size)
		a.allocate()
	default:
		a.fail("probe", err)
	}
}

func (a *acquirer) allocate() {
	if a.attempts >= a.max {
		a.fail("query", ErrTooManyAttempts)
		return
	}
	mem, err := a.alloc.Alloc(a.size)
	if err != nil {
		a.fail("alloc", errors.Wrapf(err, "allocate %d bytes", a.size))
		return
	}
	a.mem = mem
	a.state = stateAllocated
}

func (a *acquirer) query() {
	a.attempts++
	size := uint32(len(a.mem))
	err := a.q.GetAdaptersAddresses(uint32(win.AfUnspec), a.flags, a.mem, &size)
	if err == nil {
		a.done(size)
		return
	}

	if ferr := a.release(); ferr != nil {
		a.fail("free", multierr.Append(err, ferr))
		return
	}
	switch {
	case errors.Is(err, win.ErrorNoData):
		a.empty()
	case errors.Is(err, win.ErrorBufferOverflow):
		if size <= a.size {
			a.fail("query", errors.Wrapf(err, "required size %d does not exceed %d", size, a.size))
			return
		}
		a.log.Debugf("buffer of %d bytes too small, retrying with %d", a.size, size)
		a.size = size
		a.state = stateRetrying
	default:
		a.fail("query", err)
	}
}

func (a *acquirer) done(size uint32) {
	mem := a.mem
	a.mem = nil
	n := len(mem)
	if size > 0 && int(size) < n {
		n = int(size)
	}
	a.result = NewRawBuffer(mem[:n], addressOf(mem), a.layout, func() error {
		return a.alloc.Free(mem)
	})
	a.state = stateDone
}

func (a *acquirer) empty() {
	a.result = NewRawBuffer(nil, 0, a.layout, nil)
	a.state = stateDone
}

func (a *acquirer) release() error {
	mem := a.mem
	a.mem = nil
	return a.alloc.Free(mem)
}

func (a *acquirer) fail(op string, err error) {
	a.err = &AcquireError{Op: op, Attempts: a.attempts, Err: err}
	a.state = stateFailed
}
