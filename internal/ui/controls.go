package ui

import (
	"ring-configurator/internal/config"
)

// Control IDs and classes the stylesheet targets.
const (
	RotateID     = "rotate"
	ClassButton  = "button"
	ClassActive  = "active"
	ClassPending = "pending"
)

// Controls is the configurator's button column: one button per catalog part, grouped by
// slot, then the rotate toggle.
type Controls struct {
	Parts  []*Node
	Rotate *Node

	bySlot map[string][]*Node
	byID   map[string]*Node
}

// BuildControls makes a button per part in catalog order with shank parts before head
// parts, followed by the rotate button. onPart and onRotate run on the UI thread.
func BuildControls(parts []config.Part, onPart func(config.Part), onRotate func()) *Controls {
	c := &Controls{bySlot: make(map[string][]*Node), byID: make(map[string]*Node)}
	stack := 0
	for _, slot := range []string{config.SlotShank, config.SlotHead} {
		for _, p := range parts {
			if p.Slot != slot {
				continue
			}
			label := p.Label
			if label == "" {
				label = p.ID
			}
			b := NewButton(ClassButton+" "+slot, p.ID, label, func() { onPart(p) })
			b.Stack = stack
			stack++
			c.Parts = append(c.Parts, b)
			c.bySlot[slot] = append(c.bySlot[slot], b)
			c.byID[p.ID] = b
		}
	}
	c.Rotate = NewButton(ClassButton+" "+RotateID, RotateID, "Rotate", onRotate)
	c.Rotate.Stack = stack
	return c
}

// Nodes returns every button in draw order.
func (c *Controls) Nodes() []*Node {
	out := make([]*Node, 0, len(c.Parts)+1)
	out = append(out, c.Parts...)
	return append(out, c.Rotate)
}

// Button returns the button for a part id, or nil.
func (c *Controls) Button(id string) *Node {
	return c.byID[id]
}

// MarkPending flags id's button as loading; other buttons of its slot lose the flag.
func (c *Controls) MarkPending(slot, id string) {
	for _, b := range c.bySlot[slot] {
		b.SetClass(ClassPending, b.ID == id)
	}
}

// MarkActive shows id as the part occupying slot and clears the pending flag of the slot.
func (c *Controls) MarkActive(slot, id string) {
	for _, b := range c.bySlot[slot] {
		b.SetClass(ClassActive, b.ID == id)
		b.SetClass(ClassPending, false)
	}
}

// ClearPending drops the loading flag for slot, e.g. after a failed load.
func (c *Controls) ClearPending(slot string) {
	for _, b := range c.bySlot[slot] {
		b.SetClass(ClassPending, false)
	}
}

// SetRotating reflects the auto-rotation state on the rotate button.
func (c *Controls) SetRotating(on bool) {
	c.Rotate.SetClass(ClassActive, on)
}
