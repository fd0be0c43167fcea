package adapter

// walker follows a Next chain through a RawBuffer. Every record it yields lies
// entirely inside the buffer, declares a Length of at least header bytes and
// has not been visited before, so a corrupt chain ends in an error instead of
// a loop.
//
//	w := newWalker(buf, buf.first(), "adapter", layout.AdapterHeader, layout.AdapterNext)
//	for w.Next() {
//		... w.Offset(), w.Length()
//	}
//	if err := w.Err(); err != nil {
type walker struct {
	buf     *RawBuffer
	field   string
	header  int
	nextOff int

	next   uintptr
	prev   int
	off    int
	length int
	seen   map[int]struct{}
	err    error
}

func newWalker(buf *RawBuffer, first uintptr, field string, header, nextOff int) *walker {
	return &walker{
		buf:     buf,
		field:   field,
		header:  header,
		nextOff: nextOff,
		next:    first,
		prev:    -1,
		seen:    make(map[int]struct{}),
	}
}

func (w *walker) Next() bool {
	if w.err != nil || w.next == 0 {
		return false
	}

	off, err := w.buf.offset(w.next, w.header)
	if err != nil {
		w.fail(w.prev, err)
		return false
	}
	if _, ok := w.seen[off]; ok {
		w.fail(w.prev, ErrCycle)
		return false
	}
	w.seen[off] = struct{}{}

	// Length is the first field of every record in the graph.
	length := int(w.buf.u32(off))
	if length < w.header {
		w.fail(off, ErrTruncated)
		return false
	}
	if length > w.buf.Len()-off {
		w.fail(off, ErrOutOfBounds)
		return false
	}

	w.prev, w.off, w.length = off, off, length
	w.next = w.buf.ptr(off + w.nextOff)
	return true
}

func (w *walker) fail(off int, err error) {
	if off < 0 {
		off = 0
	}
	w.err = decodeErr(w.field, off, err)
}

func (w *walker) Offset() int {
	return w.off
}

func (w *walker) Length() int {
	return w.length
}

func (w *walker) Err() error {
	return w.err
}
