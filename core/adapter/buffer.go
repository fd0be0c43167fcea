package adapter

import (
	"encoding/binary"
	"unsafe"

	"go.uber.org/multierr"

	"github.com/wlynxg/ipconfig/pkgs/win"
)

// Allocator hands out the memory GetAdaptersAddresses writes into.
type Allocator interface {
	Alloc(size uint32) ([]byte, error)
	Free(b []byte) error
}

type localAllocator struct{}

func (localAllocator) Alloc(size uint32) ([]byte, error) {
	return win.LocalAlloc(size)
}

func (localAllocator) Free(b []byte) error {
	return win.LocalFree(b)
}

// RawBuffer is the region filled by one GetAdaptersAddresses call. Pointers
// stored inside it are absolute addresses; base is the address the OS saw for
// data[0], so a pointer p refers to offset p-base.
type RawBuffer struct {
	data   []byte
	base   uintptr
	layout *win.Layout
	free   func() error
	freed  bool
}

// NewRawBuffer wraps data that the OS addressed at base. free is called once
// by Release and may be nil.
func NewRawBuffer(data []byte, base uintptr, layout *win.Layout, free func() error) *RawBuffer {
	if layout == nil {
		layout = win.NativeLayout()
	}
	return &RawBuffer{data: data, base: base, layout: layout, free: free}
}

func (b *RawBuffer) Len() int {
	return len(b.data)
}

// Release frees the buffer. Only the first call reaches the free function;
// later calls return ErrReleased.
func (b *RawBuffer) Release() error {
	if b.freed {
		return ErrReleased
	}
	b.freed = true
	b.data = nil
	if b.free == nil {
		return nil
	}
	return b.free()
}

// first returns the pointer to the record at offset 0, or 0 for an empty buffer.
func (b *RawBuffer) first() uintptr {
	if len(b.data) == 0 {
		return 0
	}
	return b.base
}

// offset translates ptr to an offset with at least need bytes behind it.
func (b *RawBuffer) offset(ptr uintptr, need int) (int, error) {
	if b.freed {
		return 0, ErrReleased
	}
	if ptr == 0 {
		return 0, ErrNullPointer
	}
	if ptr < b.base || ptr-b.base >= uintptr(len(b.data)) {
		return 0, ErrOutOfBounds
	}
	off := int(ptr - b.base)
	if need > len(b.data)-off {
		return 0, ErrOutOfBounds
	}
	return off, nil
}

// The readers below take offsets that the walker has already bounds-checked.

func (b *RawBuffer) u16(off int) uint16 {
	return binary.LittleEndian.Uint16(b.data[off:])
}

func (b *RawBuffer) u32(off int) uint32 {
	return binary.LittleEndian.Uint32(b.data[off:])
}

func (b *RawBuffer) u64(off int) uint64 {
	return binary.LittleEndian.Uint64(b.data[off:])
}

func (b *RawBuffer) ptr(off int) uintptr {
	if b.layout.PtrSize == 4 {
		return uintptr(b.u32(off))
	}
	return uintptr(b.u64(off))
}

// withBuffer runs fn and releases buf on every way out of it, panics included.
func withBuffer(buf *RawBuffer, fn func(*RawBuffer) error) (err error) {
	defer func() {
		err = multierr.Append(err, buf.Release())
	}()
	return fn(buf)
}

func addressOf(b []byte) uintptr {
	if len(b) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b[0]))
}
