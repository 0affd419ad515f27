package scenegraph

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is one element of the scene tree. Its local transform is
// Translate(Position) * Rotate(Rotation, XYZ order) * Orientation * Scale, unless Matrix is set,
// in which case Matrix is used as-is (imported glTF nodes that carry a full matrix).
type Node struct {
	Name        string
	Position    mgl32.Vec3
	Rotation    mgl32.Vec3 // Euler angles in radians; Rotation[1] is yaw.
	Orientation mgl32.Quat
	Scale       mgl32.Vec3
	Matrix      *mgl32.Mat4
	Meshes      []*Mesh

	parent   *Node
	children []*Node
}

// NewNode returns an empty node at the origin with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:        name,
		Orientation: mgl32.QuatIdent(),
		Scale:       mgl32.Vec3{1, 1, 1},
	}
}

// Add attaches child to n. A child that already has a parent is detached from it first,
// so a node is never listed under two parents.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. Returns false if child was not a direct child of n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.parent = nil
		return true
	}
	return false
}

// Parent returns the node n is attached to, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the direct children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// SetScale sets a non-uniform scale.
func (n *Node) SetScale(s [3]float32) {
	n.Scale = mgl32.Vec3{s[0], s[1], s[2]}
}

// LocalMatrix returns the node's transform relative to its parent.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	if n.Matrix != nil {
		return *n.Matrix
	}
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	o := n.Orientation
	if o.W == 0 && o.V == (mgl32.Vec3{}) {
		o = mgl32.QuatIdent()
	}
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(o.Mat4()).Mul4(s)
}

// WorldMatrix returns the node's transform relative to the root of its tree.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// Walk visits n and its descendants depth-first, passing each node's world matrix.
// Returning false from fn skips that node's subtree.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4) bool) {
	var parent mgl32.Mat4
	if n.parent != nil {
		parent = n.parent.WorldMatrix()
	} else {
		parent = mgl32.Ident4()
	}
	n.walk(parent, fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4) bool) {
	world := parent.Mul4(n.LocalMatrix())
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// MeshList returns every mesh in n's subtree.
func (n *Node) MeshList() []*Mesh {
	var out []*Mesh
	n.Walk(func(node *Node, _ mgl32.Mat4) bool {
		out = append(out, node.Meshes...)
		return true
	})
	return out
}
