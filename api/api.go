package api

import (
	"encoding/json"
	"fmt"

	"github.com/zbanalyzer/zbparse/scene"
	"github.com/zbanalyzer/zbparse/zorton"
)

// ParseDumpToJSON parses a raw dump and returns the indented JSON report.
func ParseDumpToJSON(name string, dump []byte, opts zorton.Options) ([]byte, error) {
	r, err := zorton.Parse(name, dump, opts)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(r, "", "  ")
}

// ParseDumpToPacked parses a raw dump and returns the report container.
func ParseDumpToPacked(name string, dump []byte, opts zorton.Options, comp zorton.PackCompression) ([]byte, error) {
	r, err := zorton.Parse(name, dump, opts)
	if err != nil {
		return nil, err
	}
	return zorton.MarshalPacked(r, comp)
}

// AnalyzeReport loads a report (JSON or container), optionally reorders its
// scenes and returns the per-scene graph analysis.
func AnalyzeReport(report []byte, order []zorton.Pointer, maxDepth int) ([]scene.Analysis, error) {
	r, err := zorton.LoadReportFromBytes(report)
	if err != nil {
		return nil, err
	}
	return Analyze(r, order, maxDepth), nil
}

func Analyze(r *zorton.Report, order []zorton.Pointer, maxDepth int) []scene.Analysis {
	scenes := scene.Reorder(r.Scenes, order)
	out := make([]scene.Analysis, 0, len(scenes))
	for i := range scenes {
		out = append(out, scene.Analyze(&scenes[i], maxDepth))
	}
	return out
}

// RepackReport converts between JSON and container forms. A container input
// is returned as JSON, JSON input is packed with comp.
func RepackReport(report []byte, comp zorton.PackCompression) ([]byte, error) {
	if zorton.IsPacked(report) {
		r, _, err := zorton.UnmarshalPacked(report)
		if err != nil {
			return nil, err
		}
		return json.MarshalIndent(r, "", "  ")
	}
	r, err := zorton.LoadReportFromBytes(report)
	if err != nil {
		return nil, err
	}
	if len(r.Scenes) == 0 && r.Source == "" {
		return nil, fmt.Errorf("report is empty")
	}
	return zorton.MarshalPacked(r, comp)
}

func MarshalAnalyses(analyses []scene.Analysis) ([]byte, error) {
	return json.MarshalIndent(analyses, "", "  ")
}
