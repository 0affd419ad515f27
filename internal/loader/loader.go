package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"ring-configurator/internal/download"
	"ring-configurator/internal/scenegraph"
)

// ErrNoScene is returned for documents without any node to display.
var ErrNoScene = errors.New("loader: document has no scene")

// Loader resolves asset paths against AssetBase and parses binary glTF into scene nodes.
// AssetBase may be a directory or an http(s) base URL. Each Load call is independent and
// safe to run from its own goroutine.
type Loader struct {
	AssetBase string
	fetcher   *download.Fetcher
}

// New returns a Loader. A nil fetcher gets download.New().
func New(assetBase string, fetcher *download.Fetcher) *Loader {
	if fetcher == nil {
		fetcher = download.New()
	}
	return &Loader{AssetBase: assetBase, fetcher: fetcher}
}

// Resolve returns the location Load reads for p and whether it is remote.
func (l *Loader) Resolve(p string) (location string, remote bool) {
	if download.IsURL(p) {
		return p, true
	}
	if download.IsURL(l.AssetBase) {
		return download.JoinURL(l.AssetBase, filepath.ToSlash(p)), true
	}
	if filepath.IsAbs(p) || l.AssetBase == "" {
		return filepath.Clean(p), false
	}
	return filepath.Join(l.AssetBase, p), false
}

// Load reads and parses the asset at p. The returned root is a fresh group node named after
// the file; the document's scene nodes hang below it.
func (l *Loader) Load(ctx context.Context, p string) (*scenegraph.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	loc, remote := l.Resolve(p)
	name := baseName(loc, remote)

	if remote {
		data, err := l.fetcher.Fetch(ctx, loc)
		if err != nil {
			return nil, fmt.Errorf("loader: %s: %w", p, err)
		}
		return Decode(bytes.NewReader(data), nil, name)
	}

	f, err := os.Open(loc)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", p, err)
	}
	defer f.Close()
	root, err := Decode(f, os.DirFS(filepath.Dir(loc)), name)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// Decode parses a glTF or GLB stream. fsys resolves external buffers of .gltf files and
// may be nil for self-contained GLB data.
func Decode(r io.Reader, fsys fs.FS, name string) (*scenegraph.Node, error) {
	var dec *gltf.Decoder
	if fsys != nil {
		dec = gltf.NewDecoderFS(r, fsys)
	} else {
		dec = gltf.NewDecoder(r)
	}
	doc := new(gltf.Document)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("loader: decode %s: %w", name, err)
	}
	return Build(doc, name)
}

func baseName(loc string, remote bool) string {
	var b string
	if remote {
		if i := strings.IndexAny(loc, "?#"); i >= 0 {
			loc = loc[:i]
		}
		b = path.Base(loc)
	} else {
		b = filepath.Base(loc)
	}
	return strings.TrimSuffix(b, filepath.Ext(b))
}
