package zorton

import "strconv"

const (
	// FrameSize is one frame label: five ASCII digits and a NUL.
	FrameSize   = 6
	frameDigits = 5
	// DefaultMinRun is the shortest run of labels treated as a scene anchor.
	DefaultMinRun = 2
)

// FrameLabel is a video frame number stored as text in the dump.
type FrameLabel struct {
	Offset int
	Label  string
}

// Frame returns the numeric frame. Labels are always digits.
func (f FrameLabel) Frame() int {
	v, _ := strconv.Atoi(f.Label)
	return v
}

func isFrameLabel(b []byte) bool {
	if len(b) < FrameSize || b[frameDigits] != 0 {
		return false
	}
	for _, c := range b[:frameDigits] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FindFrameRuns returns every run of at least minRun back-to-back frame
// labels. When a shorter run breaks, scanning resumes one byte past its
// start so labels overlapping it are not missed. The last label slot of the
// data is tested too, and a run that reaches the end of the data is kept
// rather than dropped.
func FindFrameRuns(data []byte, minRun int) [][]FrameLabel {
	if minRun < 1 {
		minRun = DefaultMinRun
	}
	var runs [][]FrameLabel
	var cur []FrameLabel
	i := 0
	for i+FrameSize <= len(data) {
		if isFrameLabel(data[i:]) {
			cur = append(cur, FrameLabel{Offset: i, Label: string(data[i : i+frameDigits])})
			i += FrameSize
			continue
		}
		if len(cur) >= minRun {
			runs = append(runs, cur)
		} else {
			i -= len(cur) * FrameSize
		}
		cur = nil
		i++
	}
	if len(cur) >= minRun {
		runs = append(runs, cur)
	}
	return runs
}
