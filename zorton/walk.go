package zorton

import (
	"fmt"
	"io"
	"log"
)

// Strategy selects how a walk recognises the record that ends at the cursor.
type Strategy string

const (
	// StrategyDiscriminator reads the type_chunk byte of the node tail.
	StrategyDiscriminator Strategy = "discriminator"
	// StrategySelfPointer derives the record size from ptr_init_struct,
	// which points back at the start of its own record.
	StrategySelfPointer Strategy = "self-pointer"
)

func (s Strategy) Valid() bool {
	return s == StrategyDiscriminator || s == StrategySelfPointer
}

// Options controls a scan.
type Options struct {
	Base     uint32
	MinRun   int
	Strategy Strategy
	Logger   *log.Logger
}

func DefaultOptions() Options {
	return Options{
		Base:     MemoryOffset,
		MinRun:   DefaultMinRun,
		Strategy: StrategyDiscriminator,
	}
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// HitboxEntry is a decoded hitbox with its file offset.
type HitboxEntry struct {
	Offset int
	HitboxRecord
}

// Record is one record found by a walk. Exactly one of Node and Header is set.
type Record struct {
	Offset   int // file offset of the record
	Start    int // cursor after the record (and any inline hitboxes) was consumed
	Node     *TreeLogicNode
	Header   *HeaderChunk
	Hitboxes []HitboxEntry
}

// walkRun collects the records stored immediately before a frame run.
func walkRun(data []byte, run []FrameLabel, opts Options) ([]Record, error) {
	if len(run) == 0 {
		return nil, nil
	}
	switch opts.Strategy {
	case StrategySelfPointer:
		return walkSelfPointer(data, run[0].Offset, opts)
	default:
		return walkDiscriminator(data, run[0].Offset, opts)
	}
}

func walkDiscriminator(data []byte, cursor int, opts Options) ([]Record, error) {
	var recs []Record
	for {
		tc, ok := peekDiscriminant(data, cursor)
		if !ok {
			return recs, nil
		}
		k, err := KindFromDiscriminant(tc)
		if err != nil {
			if tc < 10 {
				opts.logger().Printf("possible unknown node kind %d ending at %s", tc, PointerAt(cursor, opts.Base))
			}
			return recs, nil
		}
		start := cursor - k.Size()
		if start < 0 {
			return recs, nil
		}
		n, err := DecodeNode(k, data[start:cursor])
		if err != nil {
			return recs, fmt.Errorf("node at %s: %w", hexOffset(start), err)
		}
		rec, err := attachHitboxes(data, Record{Offset: start, Start: start, Node: &n}, opts.Base)
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
		if rec.Start >= cursor {
			return recs, nil
		}
		cursor = rec.Start
	}
}

func walkSelfPointer(data []byte, cursor int, opts Options) ([]Record, error) {
	var recs []Record
	for {
		init, ok := readU32At(data, cursor-4)
		if !ok {
			return recs, nil
		}
		size := HeaderChunkSize
		if init != 0 {
			size = cursor - Pointer(init).FileOffset(opts.Base)
		}
		var k Kind
		switch size {
		case Kind2.Size():
			k = Kind2
		case KindNoHitbox.Size():
			k = KindNoHitbox
		case HeaderChunkSize:
			start := cursor - HeaderChunkSize
			if start < 0 {
				return recs, nil
			}
			h, err := DecodeHeaderChunk(data[start:cursor])
			if err != nil {
				return recs, fmt.Errorf("header chunk at %s: %w", hexOffset(start), err)
			}
			return append(recs, Record{Offset: start, Start: start, Header: &h}), nil
		default:
			return recs, fmt.Errorf("%w: %d bytes ending at %s", ErrUnknownSize, size, hexOffset(cursor))
		}
		start := cursor - size
		if start < 0 {
			return recs, nil
		}
		n, err := DecodeNode(k, data[start:cursor])
		if err != nil {
			return recs, fmt.Errorf("node at %s: %w", hexOffset(start), err)
		}
		rec, err := attachHitboxes(data, Record{Offset: start, Start: start, Node: &n}, opts.Base)
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
		if rec.Start >= cursor {
			return recs, nil
		}
		cursor = rec.Start
	}
}

// attachHitboxes decodes the node's hitbox chain. When the word before the
// node has a zero upper half the chain was stored inline in front of the
// node, and the walk continues from the last hitbox instead.
func attachHitboxes(data []byte, rec Record, base uint32) (Record, error) {
	if rec.Node.Hitbox.IsNull() {
		return rec, nil
	}
	hbs, err := FollowHitboxes(data, rec.Node.Hitbox, base)
	if err != nil {
		return rec, fmt.Errorf("node at %s: %w", hexOffset(rec.Offset), err)
	}
	if len(hbs) == 0 {
		return rec, nil
	}
	rec.Hitboxes = hbs
	prev, ok := readU32At(data, rec.Offset-4)
	if ok && prev&0xffff0000 == 0 {
		if last := hbs[len(hbs)-1].Offset; last < rec.Offset {
			rec.Start = last
		}
	}
	return rec, nil
}

// FollowHitboxes decodes the linked list starting at p. A head pointer
// outside the dump yields no hitboxes; a next pointer outside the dump or a
// loop in the list is an error.
func FollowHitboxes(data []byte, p Pointer, base uint32) ([]HitboxEntry, error) {
	inRange := func(off int) bool { return off >= 0 && off < len(data)-HitboxSize }
	off := p.FileOffset(base)
	if !inRange(off) {
		return nil, nil
	}
	var out []HitboxEntry
	seen := make(map[int]bool)
	for {
		seen[off] = true
		h, err := DecodeHitbox(data[off:])
		if err != nil {
			return out, fmt.Errorf("%w: %v", ErrHitboxChain, err)
		}
		out = append(out, HitboxEntry{Offset: off, HitboxRecord: h})
		if h.Next.IsNull() {
			return out, nil
		}
		next := h.Next.FileOffset(base)
		if !inRange(next) {
			return out, fmt.Errorf("%w: next %s outside dump", ErrHitboxChain, h.Next)
		}
		if seen[next] {
			return out, fmt.Errorf("%w: loop back to %s", ErrHitboxChain, h.Next)
		}
		off = next
	}
}
