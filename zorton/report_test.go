package zorton

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestParseResolvesReferences(t *testing.T) {
	f := buildFixture(t, Kind0)
	r, err := Parse("fixture.bin", f.data, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.Size != len(f.data) || len(r.Checksum) != 16 || r.MemoryOffset != MemoryOffset {
		t.Fatalf("header fields %+v", r)
	}
	if len(r.Scenes) != 1 {
		t.Fatalf("got %d scenes", len(r.Scenes))
	}
	s := r.Scenes[0]
	if s.MemOffset != PointerAt(f.hitbox, MemoryOffset) || len(s.Frames) != 3 || s.Frames[2].Frame != "00102" {
		t.Fatalf("scene %+v", s)
	}
	first := s.Nodes[1]
	if first.Type != "tree_logic_node_2" || first.Size != 50 || first.MemOffset != PointerAt(f.first, MemoryOffset) {
		t.Fatalf("node %+v", first)
	}
	hitOK, ok := first.Ref("ptr_hit_ok")
	if !ok || hitOK.Node != PointerAt(f.second, MemoryOffset) || hitOK.Frame != NoFrame {
		t.Fatalf("ptr_hit_ok %+v", hitOK)
	}
	ko, _ := first.Ref("ptr_frame_ko_end")
	if ko.Frame != 1 || ko.Label != "00101" || !ko.Node.IsNull() {
		t.Fatalf("ptr_frame_ko_end %+v", ko)
	}
	if len(first.Hitboxes) != 2 || first.Hitboxes[0].Score != 100 || first.Hitboxes[0].Next != PointerAt(f.hitbox, MemoryOffset) {
		t.Fatalf("hitboxes %+v", first.Hitboxes)
	}
	if len(first.Raw) != 2*Kind2.Size() {
		t.Fatalf("raw holds %d hex digits", len(first.Raw))
	}
	if first.TypeBytes == nil || first.TypeBytes[2] != 2 {
		t.Fatalf("type bytes %v", first.TypeBytes)
	}
	if first.Fingerprint == s.Nodes[0].Fingerprint {
		t.Fatalf("different records share fingerprint %s", first.Fingerprint)
	}
}

func TestReportJSONShape(t *testing.T) {
	f := buildFixture(t, KindNoHitbox)
	opts := DefaultOptions()
	opts.Strategy = StrategySelfPointer
	r, err := Parse("fixture.bin", f.data, opts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var raw struct {
		Strategy string `json:"strategy"`
		Scenes   []struct {
			MemOffset string `json:"mem_offset"`
			Nodes     []struct {
				Type string `json:"type"`
			} `json:"nodes"`
		} `json:"scenes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if raw.Strategy != "self-pointer" || raw.Scenes[0].MemOffset != "0x0003fe08" {
		t.Fatalf("unexpected JSON %s", data)
	}
	if got := raw.Scenes[0].Nodes[2].Type; got != TypeHeaderChunk {
		t.Fatalf("last record type %q", got)
	}
	if r.UniqueShapes() != 3 {
		t.Fatalf("UniqueShapes = %d", r.UniqueShapes())
	}
}

func TestSaveAndLoadReport(t *testing.T) {
	f := buildFixture(t, Kind0)
	r, err := Parse("fixture.bin", f.data, DefaultOptions())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want, _ := json.Marshal(r)
	dir := t.TempDir()
	for _, name := range []string{"report.json", "report" + PackedExt} {
		path := filepath.Join(dir, name)
		if err := SaveReport(r, path, PackCompZstd); err != nil {
			t.Fatalf("SaveReport %s: %v", name, err)
		}
		back, err := LoadReport(path)
		if err != nil {
			t.Fatalf("LoadReport %s: %v", name, err)
		}
		got, _ := json.Marshal(back)
		if string(got) != string(want) {
			t.Fatalf("%s: report changed on reload", name)
		}
	}
}
