package utils

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/zbanalyzer/zbparse/config"
	"github.com/zbanalyzer/zbparse/zorton"
)

// isReportFile reports whether path names a saved report rather than a dump.
func isReportFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".json" || ext == zorton.PackedExt
}

func scanOptions(cfg *config.Config) zorton.Options {
	opts := cfg.ScanOptions()
	opts.Logger = log.Default()
	return opts
}

// loadReportOrDump loads a saved report, or parses path as a raw dump.
func loadReportOrDump(path string, cfg *config.Config) (*zorton.Report, error) {
	if isReportFile(path) {
		return zorton.LoadReport(path)
	}
	return zorton.ParseFile(path, scanOptions(cfg))
}
