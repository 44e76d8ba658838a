package zorton

import (
	"encoding/hex"
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"
)

const (
	TypeHeaderChunk = "header_chunk"

	// NoFrame marks a Ref whose pointer does not land on a label of the scene.
	NoFrame = -1
)

// Report is the JSON form of a parsed dump. Pointers are kept for reference
// but every one that could be resolved also carries what it points at.
type Report struct {
	Source       string        `json:"source"`
	Size         int           `json:"size"`
	Checksum     string        `json:"xxhash64"`
	Strategy     Strategy      `json:"strategy"`
	MemoryOffset Pointer       `json:"memory_offset"`
	Scenes       []SceneReport `json:"scenes"`
}

type SceneReport struct {
	ID         int          `json:"id"`
	FileOffset string       `json:"file_offset"`
	MemOffset  Pointer      `json:"mem_offset"`
	Frames     []FrameEntry `json:"frames"`
	Nodes      []NodeReport `json:"nodes"`
}

type FrameEntry struct {
	FileOffset string  `json:"file_offset"`
	MemOffset  Pointer `json:"mem_offset"`
	Frame      string  `json:"frame"`
}

// Ref is one pointer field of a record. Frame is an index into the scene's
// frame table or NoFrame; Node is the address of another record of the same
// scene, zero when the pointer does not target one.
type Ref struct {
	Name  string  `json:"name"`
	Ptr   Pointer `json:"ptr"`
	Frame int     `json:"frame_index"`
	Label string  `json:"label,omitempty"`
	Node  Pointer `json:"node,omitempty"`
}

type HitboxReport struct {
	FileOffset string  `json:"file_offset"`
	MemOffset  Pointer `json:"mem_offset"`
	Y0         int32   `json:"y0"`
	Y1         int32   `json:"y1"`
	X0         int32   `json:"x0"`
	X1         int32   `json:"x1"`
	Next       Pointer `json:"ptr_next_hitbox"`
	Score      int32   `json:"score"`
}

type NodeReport struct {
	Type        string         `json:"type"`
	FileOffset  string         `json:"file_offset"`
	MemOffset   Pointer        `json:"mem_offset"`
	Size        int            `json:"size"`
	Refs        []Ref          `json:"refs"`
	Hitboxes    []HitboxReport `json:"hitboxes,omitempty"`
	Fields      string         `json:"fields"`
	Raw         string         `json:"raw"`
	TypeBytes   *[4]byte       `json:"type_bytes,omitempty"`
	Callback    Pointer        `json:"ptr_callback"`
	InitStruct  Pointer        `json:"ptr_init_struct,omitempty"`
	Fingerprint string         `json:"fingerprint"`
}

// Ref returns the named pointer field, if present.
func (n *NodeReport) Ref(name string) (Ref, bool) {
	for _, r := range n.Refs {
		if r.Name == name {
			return r, true
		}
	}
	return Ref{}, false
}

// Parse scans data and builds its report.
func Parse(source string, data []byte, opts Options) (*Report, error) {
	scenes, err := Scan(data, opts)
	if err != nil {
		return nil, err
	}
	return BuildReport(source, data, scenes, opts), nil
}

func BuildReport(source string, data []byte, scenes []Scene, opts Options) *Report {
	r := &Report{
		Source:       source,
		Size:         len(data),
		Checksum:     fmt.Sprintf("%016x", xxhash.Sum64(data)),
		Strategy:     opts.Strategy,
		MemoryOffset: Pointer(opts.Base),
		Scenes:       make([]SceneReport, 0, len(scenes)),
	}
	for _, s := range scenes {
		r.Scenes = append(r.Scenes, buildScene(s, opts.Base))
	}
	return r
}

func buildScene(s Scene, base uint32) SceneReport {
	sr := SceneReport{
		ID:         s.ID,
		FileOffset: hexOffset(s.Offset),
		MemOffset:  PointerAt(s.Offset, base),
		Frames:     make([]FrameEntry, len(s.Frames)),
	}
	frameIdx := make(map[int]int, len(s.Frames))
	for i, f := range s.Frames {
		frameIdx[f.Offset] = i
		sr.Frames[i] = FrameEntry{FileOffset: hexOffset(f.Offset), MemOffset: PointerAt(f.Offset, base), Frame: f.Label}
	}
	nodeAt := make(map[int]bool, len(s.Records))
	for _, rec := range s.Records {
		nodeAt[rec.Offset] = true
	}
	resolve := func(name string, p Pointer, self int) Ref {
		ref := Ref{Name: name, Ptr: p, Frame: NoFrame}
		if p.IsNull() {
			return ref
		}
		off := p.FileOffset(base)
		if i, ok := frameIdx[off]; ok {
			ref.Frame = i
			ref.Label = s.Frames[i].Label
		}
		if off != self && nodeAt[off] {
			ref.Node = p
		}
		return ref
	}

	for _, rec := range s.Records {
		nr := NodeReport{
			FileOffset: hexOffset(rec.Offset),
			MemOffset:  PointerAt(rec.Offset, base),
		}
		var raw []byte
		switch {
		case rec.Node != nil:
			n := rec.Node
			raw = n.Encode()
			nr.Type = n.Kind.String()
			nr.Size = n.Size()
			for _, v := range n.Pointers() {
				nr.Refs = append(nr.Refs, resolve(v.Name(), v.Ptr, rec.Offset))
			}
			nr.Fields = hex.EncodeToString(n.EndChunk[:])
			nr.TypeBytes = &[4]byte{n.TypeA, n.TypeB, n.TypeChunk, n.TypeD}
			nr.Callback = n.Callback
			nr.InitStruct = n.InitStruct
		case rec.Header != nil:
			h := rec.Header
			raw = h.Encode()
			nr.Type = TypeHeaderChunk
			nr.Size = HeaderChunkSize
			names := []string{"ptr_frame_init", "ptr_frame_end", "ptr_frame_ko_init", "ptr_frame_ko_end"}
			for i, p := range []Pointer{h.FrameInit, h.FrameEnd, h.KOInit, h.KOEnd} {
				nr.Refs = append(nr.Refs, resolve(names[i], p, rec.Offset))
			}
			for i, p := range h.Unknown {
				nr.Refs = append(nr.Refs, resolve(fmt.Sprintf("ptr_unk%d", i+1), p, rec.Offset))
			}
			nr.Fields = hex.EncodeToString(h.Fields[:])
			nr.Callback = h.Callback
		}
		for _, hb := range rec.Hitboxes {
			nr.Hitboxes = append(nr.Hitboxes, HitboxReport{
				FileOffset: hexOffset(hb.Offset),
				MemOffset:  PointerAt(hb.Offset, base),
				Y0:         hb.Y0,
				Y1:         hb.Y1,
				X0:         hb.X0,
				X1:         hb.X1,
				Next:       hb.Next,
				Score:      hb.Score,
			})
		}
		nr.Raw = hex.EncodeToString(raw)
		nr.Fingerprint = fmt.Sprintf("%016x", xxhash.Sum64(raw))
		sr.Nodes = append(sr.Nodes, nr)
	}
	return sr
}

// UniqueShapes counts distinct record fingerprints across all scenes.
func (r *Report) UniqueShapes() int {
	seen := make(map[string]struct{})
	for _, s := range r.Scenes {
		for _, n := range s.Nodes {
			seen[n.Fingerprint] = struct{}{}
		}
	}
	return len(seen)
}
