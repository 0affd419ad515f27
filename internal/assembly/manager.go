package assembly

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"ring-configurator/internal/scenegraph"
)

// DefaultHeadOffset is the vertical distance from the shank origin to the head origin.
const DefaultHeadOffset = 1.5

// GroupName is the name of the combined assembly node.
const GroupName = "combined"

// ErrClosed is returned by SetPart after Close.
var ErrClosed = errors.New("assembly: closed")

// Loader produces a scene node for an asset path. Implementations must be safe to call
// from multiple goroutines.
type Loader interface {
	Load(ctx context.Context, path string) (*scenegraph.Node, error)
}

// Disposer frees resources held for a node subtree (GPU buffers) before it is discarded.
type Disposer interface {
	Dispose(n *scenegraph.Node)
}

// DisposerFunc adapts a function to Disposer.
type DisposerFunc func(n *scenegraph.Node)

// Dispose calls f(n).
func (f DisposerFunc) Dispose(n *scenegraph.Node) { f(n) }

// Options configures a Manager. Zero values get defaults.
type Options struct {
	HeadOffset float32
	Logger     *slog.Logger
	// OnTarget is called with the combined assembly's position after every part change,
	// so a camera control can orbit it.
	OnTarget func(mgl32.Vec3)
}

type result struct {
	slot  Slot
	seq   uint64
	path  string
	scale [3]float32
	node  *scenegraph.Node
	err   error
}

// Manager keeps the shank and head slots and the combined group they hang under.
//
// Loads run on their own goroutines, but their results are only applied by Poll or Settle,
// which must be called from the goroutine that owns the scene (the render loop). Manager is
// not safe for concurrent use otherwise.
//
// Each SetPart is tagged with a per-slot sequence number; a result is applied only if no
// newer request for its slot was issued, so the last requested part wins regardless of
// completion order.
type Manager struct {
	scene    *scenegraph.Node
	loader   Loader
	disposer Disposer
	offset   float32
	onTarget func(mgl32.Vec3)
	log      *slog.Logger

	group    *scenegraph.Node
	parts    [numSlots]*scenegraph.Node
	latest   [numSlots]uint64
	inflight int
	results  chan result

	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// New returns a Manager that attaches the combined group to scene on the first successful
// load. disposer may be nil.
func New(scene *scenegraph.Node, loader Loader, disposer Disposer, opts Options) *Manager {
	if disposer == nil {
		disposer = DisposerFunc(func(*scenegraph.Node) {})
	}
	if opts.HeadOffset == 0 {
		opts.HeadOffset = DefaultHeadOffset
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scene:    scene,
		loader:   loader,
		disposer: disposer,
		offset:   opts.HeadOffset,
		onTarget: opts.OnTarget,
		log:      opts.Logger,
		results:  make(chan result, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetPart requests path for slot with the given scale and returns the request's sequence
// number. The load runs asynchronously; the slot keeps its current part until a later
// Poll or Settle applies the result. A failed load is logged and leaves the slot untouched.
func (m *Manager) SetPart(ctx context.Context, slot Slot, path string, scale [3]float32) (uint64, error) {
	if !slot.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownSlot, int(slot))
	}
	if m.closed {
		return 0, ErrClosed
	}
	m.latest[slot]++
	seq := m.latest[slot]
	m.inflight++

	loadCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(m.ctx, cancel)
	go func() {
		defer cancel()
		defer stop()
		node, err := m.loader.Load(loadCtx, path)
		r := result{slot: slot, seq: seq, path: path, scale: scale, node: node, err: err}
		select {
		case m.results <- r:
		case <-m.ctx.Done():
		}
	}()
	return seq, nil
}

// Poll applies every completed load without blocking and returns how many it took off the
// queue. After Close, late results are only disposed.
func (m *Manager) Poll() int {
	n := 0
	for {
		select {
		case r := <-m.results:
			m.apply(r)
			n++
		default:
			return n
		}
	}
}

// Settle blocks until no load is in flight, applying results as they arrive.
func (m *Manager) Settle(ctx context.Context) error {
	for !m.closed && m.inflight > 0 {
		select {
		case r := <-m.results:
			m.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) apply(r result) {
	// Results that race Close belong to nothing; only their nodes need releasing.
	if m.closed {
		if r.node != nil {
			m.disposer.Dispose(r.node)
		}
		return
	}
	m.inflight--
	log := m.log.With("slot", r.slot.String(), "path", r.path)

	if r.seq != m.latest[r.slot] {
		if r.node != nil {
			m.disposer.Dispose(r.node)
		}
		log.Debug("discarding superseded part", "seq", r.seq, "latest", m.latest[r.slot])
		return
	}
	if r.err != nil {
		log.Error("part load failed", "err", r.err)
		return
	}
	if r.node == nil {
		log.Error("part load failed", "err", "loader returned no node")
		return
	}

	if m.group == nil {
		m.group = scenegraph.NewNode(GroupName)
		m.scene.Add(m.group)
	}
	if old := m.parts[r.slot]; old != nil {
		m.disposer.Dispose(old)
		m.group.Remove(old)
	}
	r.node.SetScale(r.scale)
	m.group.Add(r.node)
	m.parts[r.slot] = r.node
	m.alignHead()

	if m.onTarget != nil {
		m.onTarget(m.group.Position)
	}
	log.Info("part loaded", "seq", r.seq)
}

// alignHead places the head HeadOffset above the shank when both slots are filled.
func (m *Manager) alignHead() {
	shank, head := m.parts[Shank], m.parts[Head]
	if shank == nil || head == nil {
		return
	}
	head.Position = shank.Position.Add(mgl32.Vec3{0, m.offset, 0})
}

// Part returns the node currently in slot, or nil.
func (m *Manager) Part(slot Slot) *scenegraph.Node {
	if !slot.Valid() {
		return nil
	}
	return m.parts[slot]
}

// Group returns the combined assembly, or nil before the first successful load.
func (m *Manager) Group() *scenegraph.Node {
	return m.group
}

// InFlight returns the number of requests whose results have not been applied yet.
func (m *Manager) InFlight() int {
	return m.inflight
}

// HeadOffset returns the vertical head offset in use.
func (m *Manager) HeadOffset() float32 {
	return m.offset
}

// Close cancels in-flight loads, disposes both parts and detaches the group from the scene.
func (m *Manager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	for i, p := range m.parts {
		if p != nil {
			m.disposer.Dispose(p)
			m.parts[i] = nil
		}
	}
	if m.group != nil {
		if parent := m.group.Parent(); parent != nil {
			parent.Remove(m.group)
		}
		m.group = nil
	}
	m.inflight = 0
}
