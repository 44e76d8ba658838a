package zorton

import "fmt"

// Kind selects the TreeLogicNode variant. Kinds 0..6 are stored in the
// type_chunk byte of the record; KindNoHitbox only comes out of the legacy
// size-based walk.
type Kind uint8

const (
	Kind0 Kind = iota
	Kind1
	Kind2
	Kind3
	Kind4
	Kind5
	Kind6

	KindNoHitbox Kind = 0xFF
)

func (k Kind) String() string {
	if k == KindNoHitbox {
		return "tree_logic_node_no_hitbox"
	}
	return fmt.Sprintf("tree_logic_node_%d", uint8(k))
}

// Slot names one pointer position in a node record.
type Slot uint8

const (
	SlotDato Slot = iota
	SlotHitOK
	SlotKOInit
	SlotKOEnd
	SlotHitboxInit
	SlotHitboxEnd
	SlotExtra
	SlotHitbox
)

var slotNames = [...]string{
	SlotDato:       "ptr_frame_dato",
	SlotHitOK:      "ptr_hit_ok",
	SlotKOInit:     "ptr_frame_ko_init",
	SlotKOEnd:      "ptr_frame_ko_end",
	SlotHitboxInit: "ptr_frame_hitbox_init",
	SlotHitboxEnd:  "ptr_frame_hitbox_end",
	SlotExtra:      "ptr_frame_extra",
	SlotHitbox:     "ptr_hitbox",
}

func (s Slot) String() string { return slotNames[s] }

// IsFrame reports whether the slot normally points at a frame label.
func (s Slot) IsFrame() bool { return s != SlotHitbox }

const (
	// nodeTailSize covers end_chunk[10], the four type bytes, callback and
	// init pointers shared by every variant.
	nodeTailSize = 22
	// discriminantFromEnd is the distance from the end of a node record
	// back to its type_chunk byte.
	discriminantFromEnd = 10
	endChunkSize        = 10
)

var (
	baseSlots  = []Slot{SlotHitOK, SlotKOInit, SlotKOEnd, SlotHitboxInit, SlotHitboxEnd}
	datoSlots  = []Slot{SlotDato, SlotHitOK, SlotKOInit, SlotKOEnd, SlotHitboxInit, SlotHitboxEnd}
	kindSlots  = map[Kind][]Slot{}
	knownKinds = []Kind{Kind0, Kind1, Kind2, Kind3, Kind4, Kind5, Kind6, KindNoHitbox}
)

func init() {
	kindSlots[Kind0] = baseSlots
	kindSlots[Kind1] = appendSlots(baseSlots, SlotExtra)
	for k := Kind2; k <= Kind6; k++ {
		s := append([]Slot(nil), datoSlots...)
		for i := Kind2; i < k; i++ {
			s = append(s, SlotExtra)
		}
		kindSlots[k] = append(s, SlotHitbox)
	}
	kindSlots[KindNoHitbox] = appendSlots(baseSlots, SlotHitbox)
}

func appendSlots(base []Slot, extra ...Slot) []Slot {
	out := make([]Slot, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}

// Slots returns the pointer slots of the variant in record order.
func (k Kind) Slots() []Slot { return kindSlots[k] }

// Size is the on-disk size of the variant.
func (k Kind) Size() int { return 4*len(kindSlots[k]) + nodeTailSize }

func (k Kind) Valid() bool {
	_, ok := kindSlots[k]
	return ok
}

// KindFromDiscriminant maps a type_chunk byte to a variant.
func KindFromDiscriminant(b byte) (Kind, error) {
	k := Kind(b)
	if k > Kind6 {
		return 0, fmt.Errorf("%w: type_chunk %d", ErrUnknownKind, b)
	}
	return k, nil
}

// TreeLogicNode is one node of the animation decision tree. All variants
// share this shape; Kind decides which pointer fields are present on disk.
type TreeLogicNode struct {
	Kind       Kind
	Dato       Pointer
	HitOK      Pointer
	KOInit     Pointer
	KOEnd      Pointer
	HitboxInit Pointer
	HitboxEnd  Pointer
	Extra      []Pointer
	Hitbox     Pointer
	EndChunk   [endChunkSize]byte
	TypeA      byte
	TypeB      byte
	TypeChunk  byte
	TypeD      byte
	Callback   Pointer
	InitStruct Pointer
}

// SlotValue is a pointer together with the slot it was read from.
type SlotValue struct {
	Slot  Slot
	Index int // position among SlotExtra slots, 0 otherwise
	Ptr   Pointer
}

func (v SlotValue) Name() string {
	if v.Slot == SlotExtra {
		return fmt.Sprintf("%s%d", v.Slot, v.Index+1)
	}
	return v.Slot.String()
}

func (n *TreeLogicNode) field(s Slot) *Pointer {
	switch s {
	case SlotDato:
		return &n.Dato
	case SlotHitOK:
		return &n.HitOK
	case SlotKOInit:
		return &n.KOInit
	case SlotKOEnd:
		return &n.KOEnd
	case SlotHitboxInit:
		return &n.HitboxInit
	case SlotHitboxEnd:
		return &n.HitboxEnd
	case SlotHitbox:
		return &n.Hitbox
	}
	return nil
}

// Pointers lists the slot values present in this variant, in record order.
func (n *TreeLogicNode) Pointers() []SlotValue {
	slots := n.Kind.Slots()
	out := make([]SlotValue, 0, len(slots))
	extra := 0
	for _, s := range slots {
		if s == SlotExtra {
			var p Pointer
			if extra < len(n.Extra) {
				p = n.Extra[extra]
			}
			out = append(out, SlotValue{Slot: s, Index: extra, Ptr: p})
			extra++
			continue
		}
		out = append(out, SlotValue{Slot: s, Ptr: *n.field(s)})
	}
	return out
}

func (n *TreeLogicNode) Size() int { return n.Kind.Size() }

// DecodeNode reads a node of the given kind from the start of b.
func DecodeNode(k Kind, b []byte) (TreeLogicNode, error) {
	if !k.Valid() {
		return TreeLogicNode{}, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	r := newFieldReader(b)
	n := TreeLogicNode{Kind: k}
	for _, s := range k.Slots() {
		p := r.ptr()
		if s == SlotExtra {
			n.Extra = append(n.Extra, p)
			continue
		}
		*n.field(s) = p
	}
	r.bytes(n.EndChunk[:])
	n.TypeA = r.u8()
	n.TypeB = r.u8()
	n.TypeChunk = r.u8()
	n.TypeD = r.u8()
	n.Callback = r.ptr()
	n.InitStruct = r.ptr()
	if r.err != nil {
		return TreeLogicNode{}, fmt.Errorf("%s: %w", k, r.err)
	}
	return n, nil
}

// Encode writes the node in its variant's layout. Missing extra slots are
// written as zero.
func (n *TreeLogicNode) Encode() []byte {
	w := newFieldWriter(n.Size())
	for _, v := range n.Pointers() {
		w.ptr(v.Ptr)
	}
	w.raw(n.EndChunk[:])
	w.u8(n.TypeA)
	w.u8(n.TypeB)
	w.u8(n.TypeChunk)
	w.u8(n.TypeD)
	w.ptr(n.Callback)
	w.ptr(n.InitStruct)
	return w.bytes()
}

// peekDiscriminant returns the type_chunk byte of a node that would end at
// end, or false when the tail does not fit in data.
func peekDiscriminant(data []byte, end int) (byte, bool) {
	if end-nodeTailSize < 0 || end > len(data) {
		return 0, false
	}
	return data[end-discriminantFromEnd], true
}
