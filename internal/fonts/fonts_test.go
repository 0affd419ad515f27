package fonts

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	fsys := fstest.MapFS{
		"Inter/Inter-Bold.ttf":    {},
		"Inter/Inter-Regular.ttf": {},
		"Inter/OFL.txt":           {},
		"mono.OTF":                {},
	}
	list, err := Scan(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"Inter/Inter-Bold.ttf", "Inter/Inter-Regular.ttf", "mono.OTF"}, list)
}

func TestMatch(t *testing.T) {
	list := []string{"Google_Sans/GoogleSans-Bold.ttf", "Google_Sans/GoogleSans-Regular.ttf", "Inter/Inter-Bold.ttf"}
	p, ok := Match(list, "Google Sans")
	assert.True(t, ok)
	assert.Equal(t, "Google_Sans/GoogleSans-Regular.ttf", p)

	p, ok = Match(list, "inter")
	assert.True(t, ok)
	assert.Equal(t, "Inter/Inter-Bold.ttf", p)

	p, ok = Match(list, "")
	assert.True(t, ok)
	assert.Equal(t, "Google_Sans/GoogleSans-Regular.ttf", p)

	_, ok = Match(list, "roboto")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Inter"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Inter", "Inter-Regular.ttf"), nil, 0o644))

	p, err := Find(dir, "Inter")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Inter", "Inter-Regular.ttf"), p)

	_, err = Find(filepath.Join(dir, "missing"), "")
	assert.ErrorIs(t, err, ErrNotFound)
}
