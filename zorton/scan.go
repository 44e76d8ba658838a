package zorton

import (
	"fmt"
	"sync"
)

// Scene is the set of records anchored by one frame-label run.
type Scene struct {
	ID      int
	Offset  int // lowest file offset attributed to the scene
	Frames  []FrameLabel
	Records []Record
}

// Scan finds every frame run in data and walks the records before each one.
// Runs are walked in parallel; scene IDs follow run order and runs that
// yield no record are dropped.
func Scan(data []byte, opts Options) ([]Scene, error) {
	if !opts.Strategy.Valid() {
		return nil, fmt.Errorf("unknown strategy %q", opts.Strategy)
	}
	runs := FindFrameRuns(data, opts.MinRun)
	opts.logger().Printf("found %d frame runs in %d bytes", len(runs), len(data))

	type result struct {
		recs []Record
		err  error
	}
	results := make([]result, len(runs))
	var wg sync.WaitGroup
	for i := range runs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			recs, err := walkRun(data, runs[i], opts)
			results[i] = result{recs: recs, err: err}
		}(i)
	}
	wg.Wait()

	scenes := make([]Scene, 0, len(runs))
	for i, res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("run at %s: %w", hexOffset(runs[i][0].Offset), res.err)
		}
		if len(res.recs) == 0 {
			opts.logger().Printf("run at %s (%s): no records", hexOffset(runs[i][0].Offset), runs[i][0].Label)
			continue
		}
		scenes = append(scenes, Scene{
			ID:      len(scenes),
			Offset:  res.recs[len(res.recs)-1].Start,
			Frames:  runs[i],
			Records: res.recs,
		})
		opts.logger().Printf("run at %s (%s): %d records", hexOffset(runs[i][0].Offset), runs[i][0].Label, len(res.recs))
	}
	return scenes, nil
}
