package zorton

import "fmt"

// Builder lays out a synthetic dump front to back. It is used to produce
// fixtures and sample data; addresses are computed against base.
type Builder struct {
	base uint32
	buf  []byte
}

func NewBuilder(base uint32) *Builder { return &Builder{base: base} }

func (b *Builder) Offset() int { return len(b.buf) }
func (b *Builder) Addr() Pointer { return PointerAt(len(b.buf), b.base) }
func (b *Builder) Bytes() []byte { return b.buf }
func (b *Builder) Raw(p []byte) { b.buf = append(b.buf, p...) }
func (b *Builder) Word(v uint32) { b.Raw(newFieldWriterU32(v)) }
func (b *Builder) AddrOf(off int) Pointer { return PointerAt(off, b.base) }

// Pad appends n copies of fill.
func (b *Builder) Pad(n int, fill byte) {
	for i := 0; i < n; i++ {
		b.buf = append(b.buf, fill)
	}
}

// Hitboxes writes a chain so that its head ends up last, right before
// whatever is written next, and returns the head address. Next pointers are
// filled in.
func (b *Builder) Hitboxes(hbs ...HitboxRecord) Pointer {
	if len(hbs) == 0 {
		return 0
	}
	start := len(b.buf)
	n := len(hbs)
	// hbs[i] is stored at slot n-1-i.
	addr := func(i int) Pointer { return PointerAt(start+(n-1-i)*HitboxSize, b.base) }
	for slot := 0; slot < n; slot++ {
		i := n - 1 - slot
		h := hbs[i]
		h.Next = 0
		if i+1 < n {
			h.Next = addr(i + 1)
		}
		b.Raw(h.Encode())
	}
	return addr(0)
}

// ReserveNode appends a zeroed record of the given kind and returns its offset.
func (b *Builder) ReserveNode(k Kind) int {
	off := len(b.buf)
	b.Pad(k.Size(), 0)
	return off
}

// PutNode writes n at off. For kinds 0..6 the discriminant is set from the
// kind, and a zero InitStruct becomes the record's own address.
func (b *Builder) PutNode(off int, n TreeLogicNode) error {
	if !n.Kind.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(n.Kind))
	}
	if n.Kind <= Kind6 {
		n.TypeChunk = byte(n.Kind)
	}
	if n.InitStruct.IsNull() {
		n.InitStruct = PointerAt(off, b.base)
	}
	enc := n.Encode()
	if off < 0 || off+len(enc) > len(b.buf) {
		return fmt.Errorf("node at %s does not fit", hexOffset(off))
	}
	copy(b.buf[off:], enc)
	return nil
}

// Header appends a header chunk and returns its offset.
func (b *Builder) Header(h HeaderChunk) int {
	off := len(b.buf)
	b.Raw(h.Encode())
	return off
}

// PutHeader overwrites a header chunk previously written at off.
func (b *Builder) PutHeader(off int, h HeaderChunk) error {
	if off < 0 || off+HeaderChunkSize > len(b.buf) {
		return fmt.Errorf("header chunk at %s does not fit", hexOffset(off))
	}
	copy(b.buf[off:], h.Encode())
	return nil
}

// Frames appends labels as "%05d\x00" and returns their addresses.
func (b *Builder) Frames(frames ...int) []Pointer {
	out := make([]Pointer, len(frames))
	for i, f := range frames {
		out[i] = b.Addr()
		b.Raw([]byte(fmt.Sprintf("%05d\x00", f%100000)))
	}
	return out
}

func newFieldWriterU32(v uint32) []byte {
	w := newFieldWriter(4)
	w.u32(v)
	return w.bytes()
}
