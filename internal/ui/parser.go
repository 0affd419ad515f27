package ui

import (
	"fmt"
	"strings"
)

// ParseCSS parses a primitive stylesheet: rules of "selector { key: value; }" where a
// selector is a comma-separated list of compound .class/#id selectors (".button.active",
// "#rotate"). Anything else (element selectors, @rules) is skipped. Later rules override
// earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	s := stripCSSComments(content)
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			return sheet, nil
		}
		open := strings.IndexByte(s, '{')
		if open == -1 {
			return sheet, fmt.Errorf("ui: css: trailing text %q", abbreviate(s))
		}
		end := findMatchingBrace(s, open)
		if end == -1 {
			return sheet, fmt.Errorf("ui: css: unterminated block after %q", abbreviate(s[:open]))
		}
		props := parseDeclarations(s[open+1 : end])
		for _, raw := range strings.Split(s[:open], ",") {
			if sel, ok := parseSelector(raw); ok {
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
			}
		}
		s = s[end+1:]
	}
}

func abbreviate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 32 {
		return s[:29] + "..."
	}
	return s
}

func stripCSSComments(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, "/*")
		if i == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		j := strings.Index(s[i+2:], "*/")
		if j == -1 {
			return b.String()
		}
		s = s[i+2+j+2:]
	}
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		k, v = strings.ToLower(strings.TrimSpace(k)), strings.TrimSpace(v)
		if k != "" {
			props[k] = v
		}
	}
	return props
}

// parseSelector splits a compound selector like "#rotate.button.active" into its parts.
func parseSelector(raw string) (Selector, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || (raw[0] != '.' && raw[0] != '#') {
		return Selector{}, false
	}
	var sel Selector
	for raw != "" {
		kind := raw[0]
		rest := raw[1:]
		n := strings.IndexAny(rest, ".#")
		if n == -1 {
			n = len(rest)
		}
		name := rest[:n]
		if name == "" || strings.ContainsAny(name, " \t\n>+~:[") {
			return Selector{}, false
		}
		switch kind {
		case '.':
			sel.Classes = append(sel.Classes, name)
		case '#':
			if sel.ID != "" {
				return Selector{}, false
			}
			sel.ID = name
		default:
			return Selector{}, false
		}
		raw = rest[n:]
	}
	return sel, true
}
