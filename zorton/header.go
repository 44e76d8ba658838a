package zorton

// HeaderChunkSize is the on-disk size of a HeaderChunk (0x2A).
const HeaderChunkSize = 42

// HeaderChunk is the per-scene block that closes a legacy backwards walk: the
// general and KO frame ranges, four unidentified pointers, six bytes of
// unknown meaning and a callback.
type HeaderChunk struct {
	FrameInit Pointer
	FrameEnd  Pointer
	KOInit    Pointer
	KOEnd     Pointer
	Unknown   [4]Pointer
	Fields    [6]byte
	Callback  Pointer
}

func DecodeHeaderChunk(b []byte) (HeaderChunk, error) {
	r := newFieldReader(b)
	var h HeaderChunk
	h.FrameInit = r.ptr()
	h.FrameEnd = r.ptr()
	h.KOInit = r.ptr()
	h.KOEnd = r.ptr()
	for i := range h.Unknown {
		h.Unknown[i] = r.ptr()
	}
	r.bytes(h.Fields[:])
	h.Callback = r.ptr()
	if r.err != nil {
		return HeaderChunk{}, r.err
	}
	return h, nil
}

func (h HeaderChunk) Encode() []byte {
	w := newFieldWriter(HeaderChunkSize)
	w.ptr(h.FrameInit)
	w.ptr(h.FrameEnd)
	w.ptr(h.KOInit)
	w.ptr(h.KOEnd)
	for _, p := range h.Unknown {
		w.ptr(p)
	}
	w.raw(h.Fields[:])
	w.ptr(h.Callback)
	return w.bytes()
}
