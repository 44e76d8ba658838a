package api

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/zbanalyzer/zbparse/zorton"
)

// twoNodeDump is one scene: a kind 2 node with a hitbox linking to a kind 0
// node, anchored by three labels.
func twoNodeDump(t *testing.T) []byte {
	t.Helper()
	b := zorton.NewBuilder(zorton.MemoryOffset)
	b.Pad(8, 0xEE)
	b.Header(zorton.HeaderChunk{Fields: [6]byte{0x20}})
	hb := b.Hitboxes(zorton.HitboxRecord{X0: 4, Y0: 4, X1: 20, Y1: 30, Score: 100})
	first := b.ReserveNode(zorton.Kind2)
	second := b.ReserveNode(zorton.Kind0)
	frames := b.Frames(40, 41, 42)
	b.Pad(8, 0xEE)
	if err := b.PutNode(first, zorton.TreeLogicNode{
		Kind: zorton.Kind2, HitOK: b.AddrOf(second), KOInit: frames[0], KOEnd: frames[1],
		HitboxInit: frames[0], HitboxEnd: frames[1], Hitbox: hb,
	}); err != nil {
		t.Fatalf("PutNode: %v", err)
	}
	if err := b.PutNode(second, zorton.TreeLogicNode{Kind: zorton.Kind0, KOInit: frames[1], KOEnd: frames[2]}); err != nil {
		t.Fatalf("PutNode: %v", err)
	}
	return b.Bytes()
}

func TestParseDumpAndAnalyze(t *testing.T) {
	out, err := ParseDumpToJSON("dump.bin", twoNodeDump(t), zorton.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseDumpToJSON: %v", err)
	}
	var r zorton.Report
	if err := json.Unmarshal(out, &r); err != nil {
		t.Fatalf("report is not JSON: %v", err)
	}
	if r.Source != "dump.bin" || len(r.Scenes) != 1 || len(r.Scenes[0].Nodes) != 2 {
		t.Fatalf("report %+v", r)
	}
	analyses, err := AnalyzeReport(out, nil, 0)
	if err != nil {
		t.Fatalf("AnalyzeReport: %v", err)
	}
	if len(analyses) != 1 || len(analyses[0].Paths) != 1 || analyses[0].Paths[0].TotalFrames != 4 {
		t.Fatalf("analyses %+v", analyses)
	}
	if _, err := MarshalAnalyses(analyses); err != nil {
		t.Fatalf("MarshalAnalyses: %v", err)
	}
}

func TestRepackReport(t *testing.T) {
	dump := twoNodeDump(t)
	packed, err := ParseDumpToPacked("dump.bin", dump, zorton.DefaultOptions(), zorton.PackCompZlib)
	if err != nil {
		t.Fatalf("ParseDumpToPacked: %v", err)
	}
	if !zorton.IsPacked(packed) {
		t.Fatalf("missing container magic")
	}
	js, err := RepackReport(packed, zorton.PackCompZstd)
	if err != nil {
		t.Fatalf("RepackReport unpack: %v", err)
	}
	want, _ := ParseDumpToJSON("dump.bin", dump, zorton.DefaultOptions())
	if !bytes.Equal(js, want) {
		t.Fatalf("unpacked JSON differs from direct parse")
	}
	again, err := RepackReport(js, zorton.PackCompZstd)
	if err != nil || !zorton.IsPacked(again) {
		t.Fatalf("RepackReport pack: %v", err)
	}
	if _, err := RepackReport([]byte("{}"), zorton.PackCompZstd); err == nil {
		t.Fatalf("empty report should be rejected")
	}
	if _, err := RepackReport([]byte("not json"), zorton.PackCompZstd); err == nil {
		t.Fatalf("garbage should be rejected")
	}
}

func TestReportToGLB(t *testing.T) {
	report, err := ParseDumpToJSON("dump.bin", twoNodeDump(t), zorton.DefaultOptions())
	if err != nil {
		t.Fatalf("ParseDumpToJSON: %v", err)
	}
	glb, err := ReportToGLB(report)
	if err != nil {
		t.Fatalf("ReportToGLB: %v", err)
	}
	if len(glb) < 12 || string(glb[:4]) != "glTF" {
		t.Fatalf("output is not a GLB container")
	}

	r, _ := zorton.LoadReportFromBytes(report)
	doc, err := BuildHitboxDocument(r)
	if err != nil {
		t.Fatalf("BuildHitboxDocument: %v", err)
	}
	if len(doc.Meshes) != 1 || len(doc.Nodes) != 1 || len(doc.Scenes[0].Nodes) != 1 {
		t.Fatalf("document has %d meshes %d nodes", len(doc.Meshes), len(doc.Nodes))
	}

	r.Scenes[0].Nodes[1].Hitboxes = nil
	if _, err := BuildHitboxDocument(r); err == nil {
		t.Fatalf("report without hitboxes should fail")
	}
}

func TestHitboxDocumentScenesDoNotOverlap(t *testing.T) {
	scene := func(id int, x0, x1, y0, y1 int32) zorton.SceneReport {
		return zorton.SceneReport{ID: id, Nodes: []zorton.NodeReport{{
			Hitboxes: []zorton.HitboxReport{{X0: x0, X1: x1, Y0: y0, Y1: y1}},
		}}}
	}
	r := &zorton.Report{Scenes: []zorton.SceneReport{
		scene(0, 150, 230, 100, 140),
		scene(1, 0, 80, 0, 40),
		scene(2, 200, 260, 10, 90),
	}}
	doc, err := BuildHitboxDocument(r)
	if err != nil {
		t.Fatalf("BuildHitboxDocument: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(doc.Nodes))
	}

	type box struct{ minX, minY, maxX, maxY float32 }
	boxes := make([]box, len(r.Scenes))
	for i := range r.Scenes {
		minX, minY, maxX, maxY := bounds(zorton.GenerateHitboxMesh(&r.Scenes[i]))
		tr := doc.Nodes[i].Translation
		boxes[i] = box{minX + tr[0], minY + tr[1], maxX + tr[0], maxY + tr[1]}
	}
	for i := range boxes {
		for j := i + 1; j < len(boxes); j++ {
			a, b := boxes[i], boxes[j]
			if a.minX < b.maxX && b.minX < a.maxX && a.minY < b.maxY && b.minY < a.maxY {
				t.Fatalf("scene %d %+v overlaps scene %d %+v", i, a, j, b)
			}
		}
	}
}
