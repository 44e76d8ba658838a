package scene

import "github.com/zbanalyzer/zbparse/zorton"

// Reorder sorts scenes into game order. order lists first-node addresses;
// scenes not reached through order keep their relative order at the end.
func Reorder(scenes []zorton.SceneReport, order []zorton.Pointer) []zorton.SceneReport {
	if len(order) == 0 {
		return scenes
	}
	byFirst := make(map[zorton.Pointer]int, len(scenes))
	for i, s := range scenes {
		if len(s.Nodes) > 0 {
			if _, dup := byFirst[s.Nodes[0].MemOffset]; !dup {
				byFirst[s.Nodes[0].MemOffset] = i
			}
		}
	}
	out := make([]zorton.SceneReport, 0, len(scenes))
	used := make([]bool, len(scenes))
	for _, mem := range order {
		if i, ok := byFirst[mem]; ok && !used[i] {
			out = append(out, scenes[i])
			used[i] = true
		}
	}
	for i, s := range scenes {
		if !used[i] {
			out = append(out, s)
		}
	}
	return out
}
