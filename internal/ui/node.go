package ui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Node is a single UI element: a panel, label or button. Class may hold several
// space-separated classes; ID matches #id selectors. Stack is the node's position in a
// vertical column of same-styled nodes, offsetting it by (height + gap) per step.
type Node struct {
	Type   string // "panel", "label", "button"
	Class  string
	ID     string
	Text   string
	Stack  int
	Hidden bool
	// OnClick makes the node interactive; it runs on the UI thread when the node is clicked.
	OnClick func()

	Bounds rl.Rectangle // last laid-out rectangle, in screen pixels
}

// NewNode creates a node with type and optional class, id, and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{Type: typ, Class: class, ID: id, Text: text}
}

// NewButton creates a clickable node.
func NewButton(class, id, text string, onClick func()) *Node {
	return &Node{Type: "button", Class: class, ID: id, Text: text, OnClick: onClick}
}

// HasClass reports whether name is one of n's classes.
func (n *Node) HasClass(name string) bool {
	for _, c := range strings.Fields(n.Class) {
		if c == name {
			return true
		}
	}
	return false
}

// SetClass adds or removes a class.
func (n *Node) SetClass(name string, on bool) {
	if n.HasClass(name) == on {
		return
	}
	if on {
		n.Class = strings.TrimSpace(n.Class + " " + name)
		return
	}
	var keep []string
	for _, c := range strings.Fields(n.Class) {
		if c != name {
			keep = append(keep, c)
		}
	}
	n.Class = strings.Join(keep, " ")
}

// Interactive reports whether the node reacts to clicks.
func (n *Node) Interactive() bool {
	return n.OnClick != nil && !n.Hidden
}
