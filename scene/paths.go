package scene

import (
	"strconv"

	"github.com/zbanalyzer/zbparse/zorton"
)

// Hitbox is a hitbox as played back along a path, tagged with the frame
// range during which its node keeps it active.
type Hitbox struct {
	X0         int32 `json:"x0"`
	Y0         int32 `json:"y0"`
	X1         int32 `json:"x1"`
	Y1         int32 `json:"y1"`
	Points     int32 `json:"points"`
	FrameStart *int  `json:"frame_start"`
	FrameEnd   *int  `json:"frame_end"`
}

// Step is one node visited on a path.
type Step struct {
	Mem        zorton.Pointer `json:"mem"`
	Type       string         `json:"type"`
	FrameStart int            `json:"frame_start"`
	FrameEnd   int            `json:"frame_end"`
	Hitboxes   []Hitbox       `json:"hitboxes"`
}

type Path struct {
	Steps         []Step `json:"nodes"`
	TotalFrames   int    `json:"total_frames"`
	TotalHitboxes int    `json:"total_hitboxes"`
}

func refFrame(n *zorton.NodeReport, name string) (int, bool) {
	ref, ok := n.Ref(name)
	if !ok || ref.Frame == zorton.NoFrame || ref.Label == "" {
		return 0, false
	}
	v, err := strconv.Atoi(ref.Label)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Steps converts a vertex path to playback steps. A step spans the node's KO
// frame range; nodes whose KO range does not resolve to labels are skipped.
// The result is nil when no step remains.
func (gr *Graph) Steps(ids []int64) *Path {
	var p Path
	for _, id := range ids {
		n := gr.nodes[id]
		if n == nil {
			continue
		}
		start, ok1 := refFrame(n, "ptr_frame_ko_init")
		end, ok2 := refFrame(n, "ptr_frame_ko_end")
		if !ok1 || !ok2 {
			continue
		}
		step := Step{Mem: n.MemOffset, Type: n.Type, FrameStart: start, FrameEnd: end}
		var hbStart, hbEnd *int
		if v, ok := refFrame(n, "ptr_frame_hitbox_init"); ok {
			hbStart = &v
		}
		if v, ok := refFrame(n, "ptr_frame_hitbox_end"); ok {
			hbEnd = &v
		}
		for _, hb := range n.Hitboxes {
			step.Hitboxes = append(step.Hitboxes, Hitbox{
				X0:         hb.X0,
				Y0:         hb.Y0,
				X1:         hb.X1,
				Y1:         hb.Y1,
				Points:     hb.Score,
				FrameStart: hbStart,
				FrameEnd:   hbEnd,
			})
		}
		p.Steps = append(p.Steps, step)
		p.TotalFrames += end - start + 1
		p.TotalHitboxes += len(step.Hitboxes)
	}
	if len(p.Steps) == 0 {
		return nil
	}
	return &p
}

// Analysis is the graph view of one scene.
type Analysis struct {
	ID     int            `json:"id"`
	Offset zorton.Pointer `json:"offset"`
	Stats  Stats          `json:"stats"`
	Paths  []Path         `json:"graph_paths"`
}

// Analyze builds the graph of s and converts every root-to-leaf path.
// Paths keep discovery order (roots in Roots order, successors by address)
// and are not reversed.
func Analyze(s *zorton.SceneReport, maxDepth int) Analysis {
	gr := Build(s)
	a := Analysis{ID: s.ID, Offset: s.MemOffset, Stats: gr.Stats(s.MemOffset)}
	for _, ids := range gr.AllPaths(gr.Roots(s.MemOffset), maxDepth) {
		if p := gr.Steps(ids); p != nil {
			a.Paths = append(a.Paths, *p)
		}
	}
	return a
}
