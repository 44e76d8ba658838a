package zorton

import "testing"

// sceneFixture is a dump with one scene:
//
//	pad | header chunk | 2 hitboxes | kind 2 node | second node | 3 labels | pad
//
// The second node is kind 0 for the discriminator walk and the no-hitbox
// record for the size-based walk.
type sceneFixture struct {
	data    []byte
	header  int
	hitbox  int
	first   int
	second  int
	frames  []Pointer
	hbFirst Pointer
}

func buildFixture(t *testing.T, second Kind) sceneFixture {
	t.Helper()
	b := NewBuilder(MemoryOffset)
	b.Pad(8, 0xEE)
	f := sceneFixture{header: b.Header(HeaderChunk{Fields: [6]byte{0x20}})}
	f.hitbox = b.Offset()
	f.hbFirst = b.Hitboxes(
		HitboxRecord{Y0: 10, Y1: 20, X0: 30, X1: 40, Score: 100},
		HitboxRecord{Y0: 50, Y1: 60, X0: 70, X1: 80, Score: 200},
	)
	f.first = b.ReserveNode(Kind2)
	f.second = b.ReserveNode(second)
	f.frames = b.Frames(100, 101, 102)
	b.Pad(8, 0xEE)

	if err := b.PutNode(f.first, TreeLogicNode{
		Kind:       Kind2,
		Dato:       f.frames[0],
		HitOK:      b.AddrOf(f.second),
		KOInit:     f.frames[0],
		KOEnd:      f.frames[1],
		HitboxInit: f.frames[1],
		HitboxEnd:  f.frames[2],
		Hitbox:     f.hbFirst,
		Callback:   0x00012340,
	}); err != nil {
		t.Fatalf("PutNode first: %v", err)
	}
	if err := b.PutNode(f.second, TreeLogicNode{
		Kind:   second,
		KOInit: f.frames[1],
		KOEnd:  f.frames[2],
	}); err != nil {
		t.Fatalf("PutNode second: %v", err)
	}
	f.data = b.Bytes()
	return f
}
