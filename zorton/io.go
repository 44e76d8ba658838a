package zorton

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PackedExt is the file extension of a report container.
const PackedExt = ".zbr"

// ParseFile reads a dump from disk and parses it.
func ParseFile(filename string, opts Options) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filepath.Base(filename), data, opts)
}

// SaveReport writes r as indented JSON, or as a container when filename
// ends in PackedExt.
func SaveReport(r *Report, filename string, comp PackCompression) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(filename), PackedExt) {
		data, err = MarshalPacked(r, comp)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// LoadReport reads a report written by SaveReport, whatever its form.
func LoadReport(filename string) (*Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return LoadReportFromBytes(data)
}

func LoadReportFromBytes(data []byte) (*Report, error) {
	if IsPacked(data) {
		r, _, err := UnmarshalPacked(data)
		return r, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("invalid report JSON: %w", err)
	}
	return &r, nil
}
