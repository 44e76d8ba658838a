package zorton

import "testing"

func TestGenerateHitboxMesh(t *testing.T) {
	s := &SceneReport{Nodes: []NodeReport{
		{Hitboxes: []HitboxReport{{X0: 0, X1: 10, Y0: 0, Y1: 5}, {X0: 3, X1: 3, Y0: 0, Y1: 5}}},
		{Hitboxes: []HitboxReport{{X0: 1, X1: 2, Y0: 1, Y1: 2}}},
	}}
	m := GenerateHitboxMesh(s)
	if len(m.Vertices) != 8 || len(m.Indices) != 12 {
		t.Fatalf("got %d vertices %d indices, want 8 and 12", len(m.Vertices), len(m.Indices))
	}
	if m.Vertices[2].Position != [3]float32{10, -5, 0} {
		t.Fatalf("corner %v", m.Vertices[2].Position)
	}
	if m.Vertices[4].Position[2] != 1 {
		t.Fatalf("second node should sit on layer 1, got %v", m.Vertices[4].Position)
	}
	for _, i := range m.Indices {
		if int(i) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}
}
