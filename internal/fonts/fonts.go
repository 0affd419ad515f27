package fonts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the default font directory, relative to the working directory.
const Dir = "assets/fonts"

// ErrNotFound is returned by Find when no font file matches.
var ErrNotFound = errors.New("fonts: no matching font")

// Exts are the file extensions treated as fonts.
var Exts = []string{".ttf", ".otf"}

func isFont(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// Scan returns the slash-separated paths of all font files in fsys, in lexical order.
func Scan(fsys fs.FS) ([]string, error) {
	var out []string
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isFont(path) {
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

// normalize lowercases and removes spaces, dashes and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// Match picks the font in list whose path contains family (fuzzy; empty matches all),
// preferring a "Regular" face.
func Match(list []string, family string) (string, bool) {
	want := normalize(family)
	var first string
	for _, p := range list {
		if !strings.Contains(normalize(p), want) {
			continue
		}
		if strings.Contains(strings.ToLower(p), "regular") {
			return p, true
		}
		if first == "" {
			first = p
		}
	}
	return first, first != ""
}

// Find looks for family under dir and returns the font's path joined with dir. A missing
// directory is reported as ErrNotFound.
func Find(dir, family string) (string, error) {
	list, err := Scan(os.DirFS(dir))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	p, ok := Match(list, family)
	if !ok {
		return "", ErrNotFound
	}
	return filepath.Join(dir, filepath.FromSlash(p)), nil
}
