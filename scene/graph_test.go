package scene

import (
	"testing"

	"github.com/zbanalyzer/zbparse/zorton"
)

// testNode makes a record at mem whose KO range is labelled ko0..ko1 and
// whose ptr_hit_ok fields point at the given records.
func testNode(mem zorton.Pointer, ko0, ko1 string, to ...zorton.Pointer) zorton.NodeReport {
	n := zorton.NodeReport{
		Type:      "tree_logic_node_2",
		MemOffset: mem,
		Refs: []zorton.Ref{
			{Name: "ptr_frame_ko_init", Frame: 0, Label: ko0},
			{Name: "ptr_frame_ko_end", Frame: 1, Label: ko1},
		},
	}
	if ko0 == "" {
		n.Refs[0].Frame = zorton.NoFrame
	}
	for _, p := range to {
		n.Refs = append(n.Refs, zorton.Ref{Name: "ptr_hit_ok", Ptr: p, Frame: zorton.NoFrame, Node: p})
	}
	return n
}

const (
	a zorton.Pointer = 0x40000
	b zorton.Pointer = 0x40100
	c zorton.Pointer = 0x40200
	d zorton.Pointer = 0x40300
)

func TestDiamondPaths(t *testing.T) {
	s := &zorton.SceneReport{Nodes: []zorton.NodeReport{
		testNode(d, "00010", "00012"),
		testNode(c, "00006", "00009", d),
		testNode(b, "00003", "00005", d),
		testNode(a, "00000", "00002", b, c),
	}}
	gr := Build(s)
	roots := gr.Roots(0)
	if len(roots) != 1 || roots[0] != int64(a) {
		t.Fatalf("roots %v", roots)
	}
	paths := gr.AllPaths(roots, DefaultMaxDepth)
	if len(paths) != 2 {
		t.Fatalf("got %d paths, want 2", len(paths))
	}
	if paths[0][1] != int64(b) || paths[1][1] != int64(c) || paths[0][2] != int64(d) {
		t.Fatalf("paths %v", paths)
	}
	st := gr.Stats(0)
	if st.Nodes != 4 || st.Edges != 4 || !st.IsDAG || st.Cycles != 0 || st.Roots != 1 || st.Leaves != 1 {
		t.Fatalf("stats %+v", st)
	}
}

func TestSelfReferenceIgnored(t *testing.T) {
	s := &zorton.SceneReport{Nodes: []zorton.NodeReport{testNode(a, "00000", "00001", a, 0x99999)}}
	st := Build(s).Stats(0)
	if st.Edges != 0 || !st.IsDAG {
		t.Fatalf("stats %+v", st)
	}
}

func TestCycle(t *testing.T) {
	s := &zorton.SceneReport{Nodes: []zorton.NodeReport{
		testNode(a, "00000", "00001", b),
		testNode(b, "00002", "00003", a),
	}}
	gr := Build(s)
	st := gr.Stats(0)
	if st.IsDAG || st.Cycles != 1 || st.Roots != 1 || st.Leaves != 0 {
		t.Fatalf("stats %+v", st)
	}
	paths := gr.AllPaths(gr.Roots(0), DefaultMaxDepth)
	if len(paths) != 1 || len(paths[0]) != 1 || paths[0][0] != int64(a) {
		t.Fatalf("paths %v", paths)
	}
}

func TestMaxDepth(t *testing.T) {
	s := &zorton.SceneReport{Nodes: []zorton.NodeReport{
		testNode(a, "00000", "00001", b),
		testNode(b, "00002", "00003", c),
		testNode(c, "00004", "00005", d),
		testNode(d, "00006", "00007"),
	}}
	gr := Build(s)
	if paths := gr.AllPaths(gr.Roots(0), 2); len(paths) != 0 {
		t.Fatalf("depth 2: %v", paths)
	}
	if paths := gr.AllPaths(gr.Roots(0), 3); len(paths) != 1 || len(paths[0]) != 4 {
		t.Fatalf("depth 3: %v", paths)
	}
}

func TestRootsPriority(t *testing.T) {
	s := &zorton.SceneReport{Nodes: []zorton.NodeReport{
		testNode(a, "00000", "00001", b),
		testNode(b, "00002", "00003"),
		testNode(c, "00004", "00005"),
	}}
	roots := Build(s).Roots(b)
	if len(roots) != 3 || roots[0] != int64(b) || roots[1] != int64(a) || roots[2] != int64(c) {
		t.Fatalf("roots %v", roots)
	}
}
