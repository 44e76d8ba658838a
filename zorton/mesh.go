package zorton

// Vertex is one mesh corner; Color indexes HitboxPalette.
type Vertex struct {
	Position [3]float32
	Color    uint8
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// HitboxPalette holds RGBA colours cycled over the hitboxes of a node.
var HitboxPalette = [][4]float32{
	{0.90, 0.10, 0.10, 0.6},
	{0.10, 0.70, 0.20, 0.6},
	{0.15, 0.35, 0.90, 0.6},
	{0.95, 0.75, 0.10, 0.6},
	{0.70, 0.20, 0.80, 0.6},
	{0.10, 0.80, 0.80, 0.6},
}

// addQuad appends a rectangle in the XY plane at depth z, screen Y pointing
// down, as two triangles facing +Z.
func addQuad(mesh *Mesh, h HitboxRecord, z float32, color uint8) {
	base := uint32(len(mesh.Vertices))
	x0, x1 := float32(h.X0), float32(h.X1)
	y0, y1 := -float32(h.Y0), -float32(h.Y1)
	mesh.Vertices = append(mesh.Vertices,
		Vertex{Position: [3]float32{x0, y0, z}, Color: color},
		Vertex{Position: [3]float32{x1, y0, z}, Color: color},
		Vertex{Position: [3]float32{x1, y1, z}, Color: color},
		Vertex{Position: [3]float32{x0, y1, z}, Color: color},
	)
	mesh.Indices = append(mesh.Indices, base, base+2, base+1, base, base+3, base+2)
}

// GenerateHitboxMesh builds one quad per hitbox of the scene. Each node sits
// on its own depth layer so overlapping regions stay distinguishable.
// Degenerate rectangles are skipped.
func GenerateHitboxMesh(s *SceneReport) *Mesh {
	mesh := &Mesh{}
	for ni, n := range s.Nodes {
		for hi, hb := range n.Hitboxes {
			h := HitboxRecord{Y0: hb.Y0, Y1: hb.Y1, X0: hb.X0, X1: hb.X1}
			if h.Width() == 0 || h.Height() == 0 {
				continue
			}
			addQuad(mesh, h, float32(ni), uint8(hi%len(HitboxPalette)))
		}
	}
	return mesh
}
