package utils

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/zbanalyzer/zbparse/api"
	"github.com/zbanalyzer/zbparse/config"
)

// RunHitbox2GLB exports the hitboxes of a report (or dump) to a .glb file,
// one node per scene.
func RunHitbox2GLB(inPath, outPath string, cfg *config.Config) error {
	r, err := loadReportOrDump(inPath, cfg)
	if err != nil {
		return err
	}
	doc, err := api.BuildHitboxDocument(r)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Exported %d scene meshes -> %s\n", len(doc.Meshes), outPath)
	return nil
}
