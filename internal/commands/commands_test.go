package commands

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ring-configurator/internal/assembly"
	"ring-configurator/internal/config"
)

type call struct {
	slot  assembly.Slot
	path  string
	scale [3]float32
}

type fakeTarget struct {
	calls    []call
	rotating bool
	fps      []bool
	grid     []bool
	cfg      config.Config
	err      error
}

func (f *fakeTarget) SetPart(slot assembly.Slot, path string, scale [3]float32) error {
	f.calls = append(f.calls, call{slot, path, scale})
	return f.err
}

func (f *fakeTarget) ToggleRotation() bool {
	f.rotating = !f.rotating
	return f.rotating
}

func (f *fakeTarget) SetShowFPS(show bool)   { f.fps = append(f.fps, show) }
func (f *fakeTarget) SetShowGrid(show bool)  { f.grid = append(f.grid, show) }
func (f *fakeTarget) Catalog() config.Config { return f.cfg }

func setup(t *testing.T) (*Registry, *fakeTarget, *[]string) {
	t.Helper()
	r := NewRegistry()
	target := &fakeTarget{cfg: config.Default()}
	var out []string
	RegisterViewer(r, target, func(s string) { out = append(out, s) })
	return r, target, &out
}

func run(t *testing.T, r *Registry, line string) error {
	t.Helper()
	args, ok := Parse(line)
	require.True(t, ok, line)
	return r.Execute(args)
}

func TestParse(t *testing.T) {
	args, ok := Parse("cmd load --slot head")
	assert.True(t, ok)
	assert.Equal(t, []string{"load", "--slot", "head"}, args)

	args, ok = Parse("cmd")
	assert.True(t, ok)
	assert.Empty(t, args)

	_, ok = Parse("hello there")
	assert.False(t, ok)
	_, ok = Parse("command x")
	assert.False(t, ok)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	assert.ErrorIs(t, r.Execute(nil), ErrMissingSubcommand)
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command: nope")

	fs := flag.NewFlagSet("x", flag.ExitOnError)
	fs.Int("n", 0, "")
	r.Register("x", "", fs, func() error { return nil })
	assert.Error(t, r.Execute([]string{"x", "--n", "abc"}))
	assert.Error(t, r.Execute([]string{"x", "--bogus"}))
}

func TestFlagsResetBetweenRuns(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	name := fs.String("name", "def", "")
	var seen []string
	r.Register("x", "", fs, func() error {
		seen = append(seen, *name)
		return nil
	})
	require.NoError(t, r.Execute([]string{"x", "--name", "a"}))
	require.NoError(t, r.Execute([]string{"x"}))
	assert.Equal(t, []string{"a", "def"}, seen)
}

func TestLoad(t *testing.T) {
	r, target, _ := setup(t)
	require.NoError(t, run(t, r, "cmd load --slot head --path x.glb --scale 0.5,0.6,0.7"))
	require.NoError(t, run(t, r, "cmd load --slot shank --path y.glb"))
	require.NoError(t, run(t, r, "cmd load --slot head --path z.glb --scale 2"))
	require.NoError(t, run(t, r, "cmd load --slot head --path w.glb --scale 0"))
	require.NoError(t, run(t, r, "cmd load --slot shank --path v.glb --scale -1,1,1"))
	assert.Equal(t, []call{
		{assembly.Head, "x.glb", [3]float32{0.5, 0.6, 0.7}},
		{assembly.Shank, "y.glb", [3]float32{1, 1, 1}},
		{assembly.Head, "z.glb", [3]float32{2, 2, 2}},
		{assembly.Head, "w.glb", [3]float32{0, 0, 0}},
		{assembly.Shank, "v.glb", [3]float32{-1, 1, 1}},
	}, target.calls)
}

func TestLoadDefaultHeadScale(t *testing.T) {
	r, target, _ := setup(t)
	require.NoError(t, run(t, r, "cmd load --slot head --path x.glb"))
	assert.Equal(t, [3]float32{0.4, 0.4, 0.4}, target.calls[0].scale)
}

func TestLoadErrors(t *testing.T) {
	r, target, _ := setup(t)
	assert.ErrorIs(t, run(t, r, "cmd load --slot band --path x.glb"), assembly.ErrUnknownSlot)
	assert.Error(t, run(t, r, "cmd load --slot head"))
	assert.Error(t, run(t, r, "cmd load --slot head --path x.glb --scale 1,2"))
	assert.Empty(t, target.calls)

	target.err = errors.New("closed")
	assert.EqualError(t, run(t, r, "cmd load --slot head --path x.glb"), "closed")
}

func TestPart(t *testing.T) {
	r, target, _ := setup(t)
	require.NoError(t, run(t, r, "cmd part --id shank-design"))
	assert.Equal(t, []call{{assembly.Shank, "models/eye/shankdesign.glb", [3]float32{0.7, 0.7, 0.7}}}, target.calls)
	assert.ErrorIs(t, run(t, r, "cmd part --id nope"), config.ErrUnknownPart)
}

func TestParts(t *testing.T) {
	r, _, out := setup(t)
	require.NoError(t, run(t, r, "cmd parts"))
	require.Len(t, *out, 4)
	assert.Contains(t, (*out)[0], "shank-band")
	assert.Contains(t, (*out)[2], "scale=0.4,0.4,0.4")
}

func TestRotateAndFPS(t *testing.T) {
	r, target, out := setup(t)
	require.NoError(t, run(t, r, "cmd rotate"))
	require.NoError(t, run(t, r, "cmd rotate"))
	assert.Equal(t, []string{"rotation on", "rotation off"}, *out)
	assert.False(t, target.rotating)

	require.NoError(t, run(t, r, "cmd fps --show"))
	require.NoError(t, run(t, r, "cmd fps --hide"))
	assert.Error(t, run(t, r, "cmd fps"))
	assert.Error(t, run(t, r, "cmd fps --show --hide"))
	assert.Equal(t, []bool{true, false}, target.fps)

	require.NoError(t, run(t, r, "cmd grid --show"))
	assert.Equal(t, []bool{true}, target.grid)
	assert.ErrorContains(t, run(t, r, "cmd grid"), "grid: pass exactly one")
}

func TestHelp(t *testing.T) {
	r, _, out := setup(t)
	require.NoError(t, run(t, r, "cmd help"))
	assert.Equal(t, []string{"fps", "grid", "help", "load", "part", "parts", "rotate"}, r.Names())
	assert.Len(t, *out, 7)
	assert.Equal(t, "fps: --show | --hide", (*out)[0])
}

func TestParseScale(t *testing.T) {
	s, err := ParseScale(" 1, 2 ,3")
	require.NoError(t, err)
	assert.Equal(t, [3]float32{1, 2, 3}, s)
	_, err = ParseScale("a")
	assert.Error(t, err)
	s, err = ParseScale("-1")
	require.NoError(t, err)
	assert.Equal(t, [3]float32{-1, -1, -1}, s)
	s, err = ParseScale("0")
	require.NoError(t, err)
	assert.Equal(t, [3]float32{}, s)
}
