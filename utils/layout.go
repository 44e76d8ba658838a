package utils

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/zbanalyzer/zbparse/zorton"
)

// RunLayout prints the record layout table as "text", "json" or "yaml".
func RunLayout(w io.Writer, format string) error {
	layouts := zorton.Layouts()
	switch format {
	case "", "text":
		for _, l := range layouts {
			fmt.Fprintf(w, "%s (%d bytes)\n", l.Name, l.Size)
			for _, f := range l.Fields {
				fmt.Fprintf(w, "  +%02d %-24s %d\n", f.Offset, f.Name, f.Size)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(layouts)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(layouts); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown layout format %q", format)
	}
}
