package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/zorton"
)

// RunPack stores a JSON report (or a freshly parsed dump) as a container.
func RunPack(inPath, outPath string, cfg *config.Config) error {
	r, err := loadReportOrDump(inPath, cfg)
	if err != nil {
		return err
	}
	comp := cfg.PackCompression()
	data, err := zorton.MarshalPacked(r, comp)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("Packed %d scenes (%s, %d bytes) -> %s\n", len(r.Scenes), comp, len(data), outPath)
	return nil
}

// RunUnpack verifies a container and writes its report as indented JSON.
func RunUnpack(inPath, outPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}
	r, comp, err := zorton.UnmarshalPacked(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	fmt.Printf("Unpacked %s (%s) -> %s\n", inPath, comp, outPath)
	return nil
}
