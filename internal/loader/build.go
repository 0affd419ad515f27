package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"ring-configurator/internal/scenegraph"
)

// maxDepth bounds node recursion so malformed documents with cycles cannot loop forever.
const maxDepth = 64

var defaultColor = [4]float32{0.8, 0.8, 0.8, 1}

// Build converts a decoded document into a scene node tree under a new root named name.
// The default scene is used, else scene 0, else every node that is not a child of another.
func Build(doc *gltf.Document, name string) (*scenegraph.Node, error) {
	roots := sceneRoots(doc)
	if len(roots) == 0 {
		return nil, ErrNoScene
	}
	b := &builder{doc: doc, meshes: make(map[int][]*scenegraph.Mesh)}
	root := scenegraph.NewNode(name)
	for _, idx := range roots {
		n, err := b.node(idx, 0)
		if err != nil {
			return nil, err
		}
		root.Add(n)
	}
	return root, nil
}

func sceneRoots(doc *gltf.Document) []int {
	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		return doc.Scenes[*doc.Scene].Nodes
	case len(doc.Scenes) > 0:
		return doc.Scenes[0].Nodes
	}
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var out []int
	for i := range doc.Nodes {
		if !isChild[i] {
			out = append(out, i)
		}
	}
	return out
}

type builder struct {
	doc *gltf.Document
	// glTF meshes may be instanced by several nodes; they share converted geometry.
	meshes map[int][]*scenegraph.Mesh
}

func (b *builder) node(idx, depth int) (*scenegraph.Node, error) {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("loader: node index %d out of range", idx)
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("loader: node hierarchy deeper than %d", maxDepth)
	}
	src := b.doc.Nodes[idx]
	n := scenegraph.NewNode(src.Name)
	applyTransform(n, src)
	if src.Mesh != nil {
		meshes, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		n.Meshes = meshes
	}
	for _, c := range src.Children {
		child, err := b.node(c, depth+1)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func applyTransform(n *scenegraph.Node, src *gltf.Node) {
	if src.Matrix != ([16]float64{}) && src.Matrix != identity {
		var m mgl32.Mat4
		for i, v := range src.Matrix {
			m[i] = float32(v)
		}
		n.Matrix = &m
		return
	}
	t := src.Translation
	n.Position = mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}
	if r := src.Rotation; r != ([4]float64{}) {
		n.Orientation = mgl32.Quat{
			W: float32(r[3]),
			V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
		}
	}
	if s := src.Scale; s != ([3]float64{}) {
		n.Scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}
}

func (b *builder) mesh(idx int) ([]*scenegraph.Mesh, error) {
	if cached, ok := b.meshes[idx]; ok {
		return cached, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("loader: mesh index %d out of range", idx)
	}
	src := b.doc.Meshes[idx]
	var out []*scenegraph.Mesh
	for i, prim := range src.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		m, err := b.primitive(prim, posIdx)
		if err != nil {
			return nil, fmt.Errorf("loader: mesh %q primitive %d: %w", src.Name, i, err)
		}
		m.Name = src.Name
		out = append(out, m)
	}
	b.meshes[idx] = out
	return out, nil
}

func (b *builder) primitive(prim *gltf.Primitive, posIdx int) (*scenegraph.Mesh, error) {
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}
	m := &scenegraph.Mesh{Positions: positions, Color: defaultColor}

	if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(nIdx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("normals: %w", err)
		}
		if len(normals) == len(positions) {
			m.Normals = normals
		}
	}
	if prim.Indices != nil {
		acr, err := b.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		indices, err := modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		for _, v := range indices {
			if int(v) >= len(positions) {
				return nil, fmt.Errorf("index %d out of range (%d vertices)", v, len(positions))
			}
		}
		m.Indices = indices
	}
	if m.Normals == nil {
		m.Normals = FlatNormals(m.Positions, m.Indices)
	}
	if prim.Material != nil && *prim.Material < len(b.doc.Materials) {
		m.Color = baseColor(b.doc.Materials[*prim.Material])
	}
	return m, nil
}

func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return b.doc.Accessors[idx], nil
}

func baseColor(mat *gltf.Material) [4]float32 {
	if mat == nil || mat.PBRMetallicRoughness == nil || mat.PBRMetallicRoughness.BaseColorFactor == nil {
		return defaultColor
	}
	f := mat.PBRMetallicRoughness.BaseColorFactor
	return [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
}

// FlatNormals computes per-vertex normals by accumulating face normals, for primitives
// exported without a NORMAL attribute.
func FlatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	tri := func(a, b, c int) {
		pa, pb, pc := mgl32.Vec3(positions[a]), mgl32.Vec3(positions[b]), mgl32.Vec3(positions[c])
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(face)
		acc[b] = acc[b].Add(face)
		acc[c] = acc[c].Add(face)
	}
	if len(indices) > 0 {
		for i := 0; i+2 < len(indices); i += 3 {
			tri(int(indices[i]), int(indices[i+1]), int(indices[i+2]))
		}
	} else {
		for i := 0; i+2 < len(positions); i += 3 {
			tri(i, i+1, i+2)
		}
	}
	out := make([][3]float32, len(acc))
	for i, v := range acc {
		if v.Len() > 0 {
			v = v.Normalize()
		} else {
			v = mgl32.Vec3{0, 1, 0}
		}
		out[i] = v
	}
	return out
}
