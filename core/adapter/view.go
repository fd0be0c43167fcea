package adapter

import "net/netip"

// recordView is a cursor over one record of the buffer. Reads of fields that
// lie past the record's declared Length return zero, which is what older
// systems that write shorter records mean.
type recordView struct {
	buf    *RawBuffer
	off    int
	length int
}

func (r recordView) has(field, n int) bool {
	return field+n <= r.length
}

func (r recordView) u8(field int) uint8 {
	if !r.has(field, 1) {
		return 0
	}
	return r.buf.data[r.off+field]
}

func (r recordView) u32(field int) uint32 {
	if !r.has(field, 4) {
		return 0
	}
	return r.buf.u32(r.off + field)
}

func (r recordView) u64(field int) uint64 {
	if !r.has(field, 8) {
		return 0
	}
	return r.buf.u64(r.off + field)
}

func (r recordView) ptr(field int) uintptr {
	if !r.has(field, r.buf.layout.PtrSize) {
		return 0
	}
	return r.buf.ptr(r.off + field)
}

// bytes returns n bytes of the record in place; callers copy what they keep.
func (r recordView) bytes(field, n int) []byte {
	if !r.has(field, n) {
		return nil
	}
	return r.buf.data[r.off+field : r.off+field+n]
}

// sockaddr decodes the SOCKET_ADDRESS embedded at field.
func (r recordView) sockaddr(field, lengthField int, name string) (netip.Addr, error) {
	p := r.ptr(field)
	n := int(int32(r.u32(lengthField)))
	if n < 0 {
		return netip.Addr{}, decodeErr(name, r.off+lengthField, ErrOutOfBounds)
	}
	off, err := r.buf.offset(p, n)
	if err != nil {
		return netip.Addr{}, decodeErr(name, r.off+field, err)
	}
	addr, err := decodeSocketAddress(r.buf.data[off : off+n])
	if err != nil {
		return netip.Addr{}, decodeErr(name, off, err)
	}
	return addr, nil
}

// entries walks the sub-list whose head pointer is stored at field.
func (r recordView) entries(field int, name string, fn func(e recordView) error) error {
	l := r.buf.layout
	w := newWalker(r.buf, r.ptr(field), name, l.EntryHeader, l.EntryNext)
	for w.Next() {
		if err := fn(recordView{buf: r.buf, off: w.Offset(), length: w.Length()}); err != nil {
			return err
		}
	}
	return w.Err()
}

// address decodes the SOCKET_ADDRESS every sub-list entry starts with.
func (r recordView) address(name string) (netip.Addr, error) {
	l := r.buf.layout
	return r.sockaddr(l.EntrySockaddr, l.EntrySockaddrLength, name)
}

func (r recordView) wstring(field int, name string) (string, error) {
	s, err := decodeWideString(r.buf, r.ptr(field), maxStringUnits)
	if err != nil {
		return "", decodeErr(name, r.off+field, err)
	}
	return s, nil
}

func (r recordView) cstring(field int, name string) (string, error) {
	s, err := decodeCString(r.buf, r.ptr(field), maxStringUnits)
	if err != nil {
		return "", decodeErr(name, r.off+field, err)
	}
	return s, nil
}
