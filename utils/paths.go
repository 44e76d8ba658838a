package utils

import (
	"fmt"
	"io"
	"os"

	"github.com/zbanalyzer/zbparse/api"
	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/scene"
)

// RunPaths analyses every scene of a report (or dump) and writes the result
// as JSON to outPath. A summary per scene is printed to stdout.
func RunPaths(inPath, outPath string, cfg *config.Config) error {
	r, err := loadReportOrDump(inPath, cfg)
	if err != nil {
		return err
	}
	analyses := api.Analyze(r, cfg.Order(), cfg.MaxDepth)
	data, err := api.MarshalAnalyses(analyses)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	PrintAnalyses(os.Stdout, analyses)
	return nil
}

func PrintAnalyses(w io.Writer, analyses []scene.Analysis) {
	total := 0
	for _, a := range analyses {
		st := a.Stats
		fmt.Fprintf(w, "scene %d @ %s: %d nodes, %d edges, dag=%t", a.ID, a.Offset, st.Nodes, st.Edges, st.IsDAG)
		if st.Cycles > 0 {
			fmt.Fprintf(w, ", %d cycles", st.Cycles)
		}
		fmt.Fprintf(w, ", %d roots, %d leaves, %d paths\n", st.Roots, st.Leaves, len(a.Paths))
		total += len(a.Paths)
	}
	fmt.Fprintf(w, "%d scenes, %d paths\n", len(analyses), total)
}
