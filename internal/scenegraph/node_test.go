package scenegraph

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.Add(child)
	b.Add(child)

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.Same(t, b, child.Parent())
}

func TestRemove(t *testing.T) {
	root := NewNode("root")
	x, y, z := NewNode("x"), NewNode("y"), NewNode("z")
	root.Add(x)
	root.Add(y)
	root.Add(z)

	require.True(t, root.Remove(y))
	assert.False(t, root.Remove(y))
	assert.Nil(t, y.Parent())

	names := []string{}
	for _, c := range root.Children() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"x", "z"}, names)
}

func TestAddSelfIgnored(t *testing.T) {
	n := NewNode("n")
	n.Add(n)
	n.Add(nil)
	assert.Equal(t, 0, n.Len())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	root := NewNode("root")
	root.Position = mgl32.Vec3{1, 0, 0}
	child := NewNode("child")
	child.Position = mgl32.Vec3{0, 1.5, 0}
	child.SetScale([3]float32{0.4, 0.4, 0.4})
	root.Add(child)

	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 1.5, p.Y(), 1e-6)

	p = child.WorldMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 1.4, p.X(), 1e-6)
}

func TestYawRotatesAboutVerticalAxis(t *testing.T) {
	n := NewNode("n")
	n.Rotation[1] = math.Pi / 2
	p := n.LocalMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 0, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
	assert.InDelta(t, -1, p.Z(), 1e-6)
}

func TestMatrixOverridesTRS(t *testing.T) {
	n := NewNode("n")
	m := mgl32.Translate3D(0, 0, 7)
	n.Matrix = &m
	n.Position = mgl32.Vec3{100, 100, 100}
	assert.Equal(t, m, n.LocalMatrix())
}

func TestWalkAndMeshList(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	a.Meshes = []*Mesh{{Name: "m1"}}
	b := NewNode("b")
	b.Meshes = []*Mesh{{Name: "m2"}, {Name: "m3"}}
	root.Add(a)
	a.Add(b)

	assert.Len(t, root.MeshList(), 3)

	var visited []string
	root.Walk(func(n *Node, _ mgl32.Mat4) bool {
		visited = append(visited, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a"}, visited)
}

func TestTriangleCount(t *testing.T) {
	m := &Mesh{Positions: make([][3]float32, 6)}
	assert.Equal(t, 2, m.TriangleCount())
	m.Indices = []uint32{0, 1, 2}
	assert.Equal(t, 1, m.TriangleCount())
}
