package zorton

// HitboxSize is the on-disk size of a HitboxRecord.
const HitboxSize = 24

// HitboxRecord is one axis-aligned hit region with its score. Next links to
// the following record of the same node; it does not own it.
type HitboxRecord struct {
	Y0    int32
	Y1    int32
	X0    int32
	X1    int32
	Next  Pointer
	Score int32
}

// DecodeHitbox reads a HitboxRecord from the start of b.
func DecodeHitbox(b []byte) (HitboxRecord, error) {
	r := newFieldReader(b)
	h := HitboxRecord{
		Y0:    r.i32(),
		Y1:    r.i32(),
		X0:    r.i32(),
		X1:    r.i32(),
		Next:  r.ptr(),
		Score: r.i32(),
	}
	if r.err != nil {
		return HitboxRecord{}, r.err
	}
	return h, nil
}

// Encode returns the 24-byte big-endian form.
func (h HitboxRecord) Encode() []byte {
	w := newFieldWriter(HitboxSize)
	w.i32(h.Y0)
	w.i32(h.Y1)
	w.i32(h.X0)
	w.i32(h.X1)
	w.ptr(h.Next)
	w.i32(h.Score)
	return w.bytes()
}

func (h HitboxRecord) Width() int32  { return h.X1 - h.X0 }
func (h HitboxRecord) Height() int32 { return h.Y1 - h.Y0 }

// Contains reports whether (x, y) lies inside the region, edges included.
func (h HitboxRecord) Contains(x, y int32) bool {
	return x >= h.X0 && x <= h.X1 && y >= h.Y0 && y <= h.Y1
}
