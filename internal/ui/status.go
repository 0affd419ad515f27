package ui

import "fmt"

// Status is a small panel listing what each slot holds. It owns its nodes; Update refreshes
// their text in place so the engine's style cache stays valid.
type Status struct {
	panel   *Node
	shank   *Node
	head    *Node
	loading *Node
}

// StatusInfo is what the panel shows.
type StatusInfo struct {
	Shank    string
	Head     string
	Loading  int
	Rotating bool
}

// NewStatus creates the panel; the stylesheet styles it with .status and .status-line.
func NewStatus() *Status {
	s := &Status{
		panel:   NewNode("panel", "status", "", ""),
		shank:   NewNode("label", "status-line", "status-shank", ""),
		head:    NewNode("label", "status-line", "status-head", ""),
		loading: NewNode("label", "status-line", "status-loading", ""),
	}
	s.head.Stack = 1
	s.loading.Stack = 2
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Nodes returns the panel's nodes in draw order.
func (s *Status) Nodes() []*Node {
	return []*Node{s.panel, s.shank, s.head, s.loading}
}

// Update sets the panel text from info.
func (s *Status) Update(info StatusInfo) {
	s.shank.Text = "Shank: " + orDash(info.Shank)
	s.head.Text = "Head: " + orDash(info.Head)
	switch {
	case info.Loading > 0:
		s.loading.Text = fmt.Sprintf("Loading %d...", info.Loading)
	case info.Rotating:
		s.loading.Text = "Rotating"
	default:
		s.loading.Text = ""
	}
}
