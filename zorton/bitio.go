package zorton

import (
	"encoding/binary"
	"fmt"
)

// fieldReader decodes big-endian fields from a fixed record window. The first
// short read sticks in err so callers check once at the end.
type fieldReader struct {
	data []byte
	pos  int
	err  error
}

func newFieldReader(b []byte) *fieldReader { return &fieldReader{data: b} }

func (r *fieldReader) need(n int) bool {
	if r.err != nil {
		return false
	}
	if r.pos+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at +0x%02x, have %d", ErrShortRecord, n, r.pos, len(r.data)-r.pos)
		return false
	}
	return true
}

func (r *fieldReader) u8() uint8 {
	if !r.need(1) {
		return 0
	}
	v := r.data[r.pos]
	r.pos++
	return v
}

func (r *fieldReader) u32() uint32 {
	if !r.need(4) {
		return 0
	}
	v := binary.BigEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *fieldReader) i32() int32 { return int32(r.u32()) }

func (r *fieldReader) ptr() Pointer { return Pointer(r.u32()) }

func (r *fieldReader) bytes(dst []byte) {
	if !r.need(len(dst)) {
		return
	}
	copy(dst, r.data[r.pos:])
	r.pos += len(dst)
}

type fieldWriter struct {
	buf []byte
}

func newFieldWriter(size int) *fieldWriter { return &fieldWriter{buf: make([]byte, 0, size)} }

func (w *fieldWriter) u8(v uint8) { w.buf = append(w.buf, v) }
func (w *fieldWriter) u32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }
func (w *fieldWriter) i32(v int32) { w.u32(uint32(v)) }
func (w *fieldWriter) ptr(p Pointer) { w.u32(uint32(p)) }
func (w *fieldWriter) raw(b []byte) { w.buf = append(w.buf, b...) }
func (w *fieldWriter) bytes() []byte { return w.buf }

// readU32At reads one big-endian word, reporting false when out of range.
func readU32At(data []byte, off int) (uint32, bool) {
	if off < 0 || off+4 > len(data) {
		return 0, false
	}
	return binary.BigEndian.Uint32(data[off:]), true
}
