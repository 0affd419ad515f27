package ui

import (
	"sort"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Selector is a compound selector: an optional #id plus classes, all of which must match.
type Selector struct {
	ID      string
	Classes []string
}

// Matches reports whether n satisfies every part of s.
func (s Selector) Matches(n *Node) bool {
	if s.ID != "" && s.ID != n.ID {
		return false
	}
	for _, c := range s.Classes {
		if !n.HasClass(c) {
			return false
		}
	}
	return s.ID != "" || len(s.Classes) > 0
}

// Specificity orders rules the CSS way: ids outweigh any number of classes.
func (s Selector) Specificity() int {
	n := len(s.Classes)
	if s.ID != "" {
		n += 100
	}
	return n
}

// String renders the selector back to CSS.
func (s Selector) String() string {
	var b strings.Builder
	if s.ID != "" {
		b.WriteString("#" + s.ID)
	}
	for _, c := range s.Classes {
		b.WriteString("." + c)
	}
	return b.String()
}

// Rule is one selector and its raw property values.
type Rule struct {
	Selector Selector
	Props    map[string]string
}

// Stylesheet is a list of rules in source order.
type Stylesheet struct {
	Rules []Rule
}

// Resolve merges the properties of every rule matching n, lower specificity first and
// source order breaking ties.
func (s *Stylesheet) Resolve(n *Node) map[string]string {
	merged := make(map[string]string)
	if s == nil {
		return merged
	}
	var matched []Rule
	for _, r := range s.Rules {
		if r.Selector.Matches(n) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Selector.Specificity() < matched[j].Selector.Specificity()
	})
	for _, r := range matched {
		for k, v := range r.Props {
			merged[k] = v
		}
	}
	return merged
}

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
type ComputedStyle struct {
	Background rl.Color
	Hover      rl.Color
	HasHover   bool
	Color      rl.Color
	Border     rl.Color
	HasBorder  bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32
	TopPct     int32
	Padding    int32
	Gap        int32
	FontSize   int32
}

// DefaultComputedStyle returns a transparent, borderless, zero-size style with white text.
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: rl.NewColor(0, 0, 0, 0),
		Color:      rl.White,
		Border:     rl.Black,
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   defaultFontSize,
	}
}

// ParseColor parses #RGB, #RRGGBB, #RRGGBBAA, rgb(r,g,b), rgba(r,g,b,a) with a in 0–1,
// and "transparent".
func ParseColor(s string) (rl.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "transparent":
		return rl.NewColor(0, 0, 0, 0), true
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGB(s)
	}
	return rl.Black, false
}

func parseHex(hex string) (rl.Color, bool) {
	var v []uint8
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			d, ok := hexDigit(hex[i])
			if !ok {
				return rl.Black, false
			}
			v = append(v, d*17)
		}
		v = append(v, 255)
	case 6, 8:
		for i := 0; i < len(hex); i += 2 {
			n, err := strconv.ParseUint(hex[i:i+2], 16, 8)
			if err != nil {
				return rl.Black, false
			}
			v = append(v, uint8(n))
		}
		if len(v) == 3 {
			v = append(v, 255)
		}
	default:
		return rl.Black, false
	}
	return rl.NewColor(v[0], v[1], v[2], v[3]), true
}

func hexDigit(c byte) (uint8, bool) {
	n, err := strconv.ParseUint(string(c), 16, 8)
	return uint8(n), err == nil
}

func parseRGB(s string) (rl.Color, bool) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open == -1 || end < open {
		return rl.Black, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return rl.Black, false
	}
	var c [4]uint8
	c[3] = 255
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return rl.Black, false
		}
		if i == 3 {
			f *= 255
		}
		if f < 0 {
			f = 0
		}
		if f > 255 {
			f = 255
		}
		c[i] = uint8(f + 0.5)
	}
	return rl.NewColor(c[0], c[1], c[2], c[3]), true
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// ParsePct parses "N%" to int32 (0–100).
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "%") {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ResolveProps builds a ComputedStyle from merged properties. Unknown properties and
// unparsable values are ignored.
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "hover-background":
			if c, ok := ParseColor(v); ok {
				out.Hover, out.HasHover = c, true
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(v); ok {
				out.Border, out.HasBorder = c, true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "gap":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Gap = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		}
	}
	return out
}
