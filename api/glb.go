package api

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/zbanalyzer/zbparse/zorton"
)

// sceneSpacing is the gap between scene meshes, in game pixels.
const sceneSpacing = 32

// BuildHitboxDocument creates a glTF document with one mesh per scene that
// has hitboxes. Scenes are laid out on a grid of cells sized to the largest
// scene so they do not overlap.
func BuildHitboxDocument(r *zorton.Report) (*gltf.Document, error) {
	type built struct {
		name       string
		mesh       *zorton.Mesh
		minX, maxY float32
	}
	var meshes []built
	var cellW, cellH float32
	for i := range r.Scenes {
		s := &r.Scenes[i]
		m := zorton.GenerateHitboxMesh(s)
		if len(m.Vertices) == 0 {
			continue
		}
		minX, minY, maxX, maxY := bounds(m)
		cellW = max(cellW, maxX-minX)
		cellH = max(cellH, maxY-minY)
		meshes = append(meshes, built{name: fmt.Sprintf("scene_%d_%s", s.ID, s.MemOffset), mesh: m, minX: minX, maxY: maxY})
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("report has no hitboxes")
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "zbparse hitboxes -> GLB"
	pbr := &gltf.PBRMetallicRoughness{BaseColorFactor: &[4]float32{1, 1, 1, 1}, MetallicFactor: gltf.Float(0), RoughnessFactor: gltf.Float(1)}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaBlend, DoubleSided: true}}

	cols := int(math.Ceil(math.Sqrt(float64(len(meshes)))))
	for i, b := range meshes {
		positions := make([][3]float32, len(b.mesh.Vertices))
		colors := make([][4]float32, len(b.mesh.Vertices))
		for vi, v := range b.mesh.Vertices {
			positions[vi] = v.Position
			colors[vi] = zorton.HitboxPalette[int(v.Color)%len(zorton.HitboxPalette)]
		}
		indices := make([]uint32, len(b.mesh.Indices))
		copy(indices, b.mesh.Indices)

		posAccessor := modeler.WritePosition(doc, positions)
		colorAccessor := modeler.WriteColor(doc, colors)
		indicesAccessor := modeler.WriteIndices(doc, indices)
		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(posAccessor),
				gltf.COLOR_0:  uint32(colorAccessor),
			},
			Indices:  gltf.Index(uint32(indicesAccessor)),
			Material: gltf.Index(0),
		}
		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: b.name, Primitives: []*gltf.Primitive{prim}})

		row, col := i/cols, i%cols
		node := &gltf.Node{Name: b.name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))}
		// Move each mesh's top-left corner to the origin of its cell.
		node.Translation = [3]float32{
			float32(col)*(cellW+sceneSpacing) - b.minX,
			-float32(row)*(cellH+sceneSpacing) - b.maxY,
			0,
		}
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
	}
	return doc, nil
}

func bounds(m *zorton.Mesh) (minX, minY, maxX, maxY float32) {
	minX, minY = float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY = float32(math.Inf(-1)), float32(math.Inf(-1))
	for _, v := range m.Vertices {
		minX = min(minX, v.Position[0])
		minY = min(minY, v.Position[1])
		maxX = max(maxX, v.Position[0])
		maxY = max(maxY, v.Position[1])
	}
	return
}

// ReportToGLB renders the hitboxes of a report (JSON or container) as .glb.
func ReportToGLB(report []byte) ([]byte, error) {
	r, err := zorton.LoadReportFromBytes(report)
	if err != nil {
		return nil, err
	}
	doc, err := BuildHitboxDocument(r)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
