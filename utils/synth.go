package utils

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/zorton"
)

// GenerateSynthetic lays out a dump with the given number of scenes. Each
// scene is a header chunk, a chain of nodes with inline hitboxes, and the
// frame run that anchors it. The first node always carries hitboxes; the
// other kinds are picked so the chosen strategy can walk them, since the
// size-based walk only knows kind 2 and the no-hitbox record.
func GenerateSynthetic(r *rand.Rand, scenes int, base uint32, strategy zorton.Strategy) ([]byte, error) {
	b := zorton.NewBuilder(base)
	frame := r.Intn(500)
	for s := 0; s < scenes; s++ {
		b.Pad(8+r.Intn(24), 0xEE)
		hdrOff := b.Offset()
		b.Pad(zorton.HeaderChunkSize, 0)

		type slot struct {
			off    int
			kind   zorton.Kind
			hitbox zorton.Pointer
		}
		nodes := make([]slot, 2+r.Intn(5))
		for i := range nodes {
			k := zorton.Kind2
			if i > 0 {
				k = pickKind(r, strategy)
			}
			var hb zorton.Pointer
			if hasHitboxSlot(k) && k != zorton.KindNoHitbox {
				hb = b.Hitboxes(randomHitboxes(r, 1+r.Intn(3))...)
			}
			nodes[i] = slot{off: b.ReserveNode(k), kind: k, hitbox: hb}
		}

		labels := make([]int, 2*len(nodes)+1)
		for i := range labels {
			frame += 1 + r.Intn(4)
			labels[i] = frame
		}
		frames := b.Frames(labels...)

		for i, sl := range nodes {
			n := zorton.TreeLogicNode{
				Kind:       sl.kind,
				KOInit:     frames[2*i],
				KOEnd:      frames[2*i+1],
				HitboxInit: frames[2*i],
				HitboxEnd:  frames[2*i+2],
				Hitbox:     sl.hitbox,
				Callback:   zorton.Pointer(0x00010000 + uint32(r.Intn(0x4000))*2),
			}
			if i+1 < len(nodes) {
				n.HitOK = b.AddrOf(nodes[i+1].off)
			}
			if sl.kind >= zorton.Kind2 && sl.kind <= zorton.Kind6 {
				n.Dato = frames[2*i+1]
				if i+2 < len(nodes) && r.Intn(2) == 0 {
					n.Dato = b.AddrOf(nodes[i+2].off)
				}
			}
			for _, sv := range sl.kind.Slots() {
				if sv == zorton.SlotExtra {
					n.Extra = append(n.Extra, frames[r.Intn(len(frames))])
				}
			}
			if sl.kind == zorton.KindNoHitbox {
				n.TypeChunk = 0xFF
			}
			for j := range n.EndChunk {
				n.EndChunk[j] = byte(0x80 + r.Intn(0x80))
			}
			if err := b.PutNode(sl.off, n); err != nil {
				return nil, err
			}
		}

		hdr := zorton.HeaderChunk{
			FrameInit: frames[0],
			FrameEnd:  frames[len(frames)-1],
			KOInit:    frames[0],
			KOEnd:     frames[1],
			Fields:    [6]byte{0x20, 0, 0, 1, 0, 0},
		}
		if err := b.PutHeader(hdrOff, hdr); err != nil {
			return nil, err
		}
	}
	b.Pad(16, 0xEE)
	return b.Bytes(), nil
}

func pickKind(r *rand.Rand, strategy zorton.Strategy) zorton.Kind {
	if strategy == zorton.StrategySelfPointer {
		if r.Intn(3) == 0 {
			return zorton.KindNoHitbox
		}
		return zorton.Kind2
	}
	return zorton.Kind(r.Intn(int(zorton.Kind6) + 1))
}

func hasHitboxSlot(k zorton.Kind) bool {
	for _, s := range k.Slots() {
		if s == zorton.SlotHitbox {
			return true
		}
	}
	return false
}

// randomHitboxes returns rectangles inside the 320x200 playfield.
func randomHitboxes(r *rand.Rand, n int) []zorton.HitboxRecord {
	out := make([]zorton.HitboxRecord, n)
	for i := range out {
		x0 := int32(r.Intn(280))
		y0 := int32(r.Intn(160))
		out[i] = zorton.HitboxRecord{
			X0:    x0,
			Y0:    y0,
			X1:    x0 + 4 + int32(r.Intn(36)),
			Y1:    y0 + 4 + int32(r.Intn(36)),
			Score: int32(10 * (1 + r.Intn(50))),
		}
	}
	return out
}

// RunGenerateSynthetic writes a synthetic dump to outPath. A zero seed uses
// the current time.
func RunGenerateSynthetic(scenes int, seed int64, outPath string, cfg *config.Config) error {
	if scenes <= 0 {
		return fmt.Errorf("scene count must be positive, got %d", scenes)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := rand.New(rand.NewSource(seed))
	data, err := GenerateSynthetic(r, scenes, uint32(cfg.MemoryOffset), zorton.Strategy(cfg.Strategy))
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Generated %d scenes (%d bytes, seed %d) -> %s\n", scenes, len(data), seed, outPath)
	return nil
}
