package scene

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/zbanalyzer/zbparse/zorton"
)

// DefaultMaxDepth caps path enumeration, counted in edges.
const DefaultMaxDepth = 50

// Graph is the directed graph of one scene. Vertex IDs are record memory
// addresses; an edge means a pointer field of one record targets another.
type Graph struct {
	g     *simple.DirectedGraph
	order []int64
	nodes map[int64]*zorton.NodeReport
}

// Build creates the graph of s. Self references and pointers that leave the
// scene are ignored.
func Build(s *zorton.SceneReport) *Graph {
	gr := &Graph{
		g:     simple.NewDirectedGraph(),
		nodes: make(map[int64]*zorton.NodeReport, len(s.Nodes)),
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		id := int64(n.MemOffset)
		if _, dup := gr.nodes[id]; dup {
			continue
		}
		gr.g.AddNode(simple.Node(id))
		gr.order = append(gr.order, id)
		gr.nodes[id] = n
	}
	for _, id := range gr.order {
		for _, ref := range gr.nodes[id].Refs {
			to := int64(ref.Node)
			if ref.Node.IsNull() || to == id {
				continue
			}
			if _, ok := gr.nodes[to]; !ok {
				continue
			}
			gr.g.SetEdge(gr.g.NewEdge(simple.Node(id), simple.Node(to)))
		}
	}
	return gr
}

// Node returns the record behind a vertex.
func (gr *Graph) Node(id int64) *zorton.NodeReport { return gr.nodes[id] }

// IDs lists vertices in scene order.
func (gr *Graph) IDs() []int64 { return append([]int64(nil), gr.order...) }

func (gr *Graph) successors(id int64) []int64 {
	nodes := graph.NodesOf(gr.g.From(id))
	out := make([]int64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (gr *Graph) inDegree(id int64) int { return gr.g.To(id).Len() }
func (gr *Graph) outDegree(id int64) int { return gr.g.From(id).Len() }

// Roots returns vertices without predecessors. priority, when it is a vertex,
// comes first even if it has predecessors. A graph without roots falls back
// to its first vertex.
func (gr *Graph) Roots(priority zorton.Pointer) []int64 {
	var roots []int64
	for _, id := range gr.order {
		if gr.inDegree(id) == 0 {
			roots = append(roots, id)
		}
	}
	pid := int64(priority)
	if _, ok := gr.nodes[pid]; ok && !priority.IsNull() {
		found := false
		for _, r := range roots {
			if r == pid {
				found = true
				break
			}
		}
		if !found {
			roots = append([]int64{pid}, roots...)
		}
	}
	if len(roots) == 0 && len(gr.order) > 0 {
		roots = []int64{gr.order[0]}
	}
	return roots
}

// Leaves returns vertices without successors, in scene order.
func (gr *Graph) Leaves() []int64 {
	var leaves []int64
	for _, id := range gr.order {
		if gr.outDegree(id) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// AllPaths enumerates simple paths from each root to any leaf using at most
// maxDepth edges. A root that is itself a leaf, or any root of a graph with
// no leaves, gives a one-vertex path.
func (gr *Graph) AllPaths(roots []int64, maxDepth int) [][]int64 {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	hasLeaves := len(gr.Leaves()) > 0
	var out [][]int64
	for _, root := range roots {
		if _, ok := gr.nodes[root]; !ok {
			continue
		}
		if !hasLeaves || gr.outDegree(root) == 0 {
			out = append(out, []int64{root})
			continue
		}
		onPath := map[int64]bool{root: true}
		path := []int64{root}
		var visit func(id int64)
		visit = func(id int64) {
			if gr.outDegree(id) == 0 {
				out = append(out, append([]int64(nil), path...))
				return
			}
			if len(path)-1 >= maxDepth {
				return
			}
			for _, next := range gr.successors(id) {
				if onPath[next] {
					continue
				}
				onPath[next] = true
				path = append(path, next)
				visit(next)
				path = path[:len(path)-1]
				onPath[next] = false
			}
		}
		visit(root)
	}
	return out
}

// Stats summarises the graph shape.
type Stats struct {
	Nodes  int  `json:"num_nodes"`
	Edges  int  `json:"num_edges"`
	IsDAG  bool `json:"is_dag"`
	Cycles int  `json:"num_cycles"`
	Roots  int  `json:"num_roots"`
	Leaves int  `json:"num_leaves"`
}

func (gr *Graph) Stats(priority zorton.Pointer) Stats {
	st := Stats{
		Nodes:  len(gr.order),
		Roots:  len(gr.Roots(priority)),
		Leaves: len(gr.Leaves()),
	}
	for _, id := range gr.order {
		st.Edges += gr.outDegree(id)
	}
	if _, err := topo.Sort(gr.g); err == nil {
		st.IsDAG = true
	} else {
		st.Cycles = len(topo.DirectedCyclesIn(gr.g))
	}
	return st
}
