package utils

import (
	"fmt"

	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/zorton"
)

// RunParse parses a dump and writes the report to outPath (JSON, or a
// container when outPath ends in .zbr).
func RunParse(inPath, outPath string, cfg *config.Config) error {
	r, err := zorton.ParseFile(inPath, scanOptions(cfg))
	if err != nil {
		return err
	}
	if err := zorton.SaveReport(r, outPath, cfg.PackCompression()); err != nil {
		return err
	}
	nodes := 0
	for _, s := range r.Scenes {
		nodes += len(s.Nodes)
	}
	fmt.Printf("Parsed %s: %d scenes, %d records, %d unique shapes -> %s\n", inPath, len(r.Scenes), nodes, r.UniqueShapes(), outPath)
	return nil
}
