package scenegraph

// Mesh is triangle geometry with a flat base color. Positions and Normals are parallel;
// Indices may be empty, in which case every three positions form a triangle.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32
	Color     [4]float32
}

// TriangleCount returns the number of triangles the mesh draws.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}
