package engine

import (
	"time"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/layout"
	"github.com/blomgraph/engine/protocol"
	"github.com/blomgraph/engine/render"
	"github.com/blomgraph/engine/render/backend"
	"github.com/blomgraph/engine/surface"

	_ "github.com/blomgraph/engine/render/backend/gpucompute"
	_ "github.com/blomgraph/engine/render/backend/legacy"
	_ "github.com/blomgraph/engine/render/backend/soft2d"
)

// NodeCallback receives an external node id, or (0, false) when an
// event misses every node.
type NodeCallback func(id uint32, ok bool)

// Engine is the single host-facing handle spec.md §6 describes: one
// value owns the graph, the layout simulation, and the renderer, and
// every operation below runs synchronously to completion (spec.md §5 —
// there are no suspension points within a call).
type Engine struct {
	surf    surface.Surface
	backend backend.Backend
	render  *render.Renderer
	layout  *layout.Engine
	graph   *graph.Graph
	spatial *graph.SpatialIndex

	hasCommunity bool
	running      bool

	onClick NodeCallback
	onHover NodeCallback

	opts engineOptions

	fpsWindow []time.Duration
	destroyed bool
}

// Construct binds a new Engine to surf, selecting a backend tier via
// first-fit (spec.md §4.4). Returns ErrNoSurface if surf is nil, or
// ErrNoBackend if no registered tier reports itself available.
func Construct(surf surface.Surface, opts ...Option) (*Engine, error) {
	if surf == nil {
		return nil, ErrNoSurface
	}

	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	b, err := backend.Select()
	if err != nil {
		return nil, ErrNoBackend
	}

	g := graph.Empty()
	layoutEngine := layout.New(g)

	// A tier-1 backend implements layout.Integrator and replaces the
	// layout engine's default integrator (its Integrate also runs on the
	// CPU); any other tier leaves layoutEngine on its default. This is the
	// only place tier selection feeds back into the layout engine —
	// StepLayout and TickAndRender stay tier-agnostic.
	if integrator, ok := b.(layout.Integrator); ok {
		layoutEngine.SetIntegrator(integrator)
	}

	e := &Engine{
		surf:    surf,
		backend: b,
		layout:  layoutEngine,
		graph:   g,
		spatial: graph.NewSpatialIndex(g),
		opts:    o,
		render: render.NewRenderer(b, float32(surf.Width()), float32(surf.Height()),
			render.WithNodeRadiusScale(o.nodeRadiusScale),
			render.WithEdgeThickness(o.edgeThickness),
			render.WithLabelsEnabled(o.labelsEnabled),
		),
	}
	Logger().Info("engine constructed", "tier", int(b.Tier()), "custom_integrator", layoutEngine.UsesCustomIntegrator())
	return e, nil
}

// LoadGraph decodes b and replaces the current graph atomically: on
// any DecodeError the previous graph and its layout/camera state are
// left untouched (spec.md §7's strong exception safety).
func (e *Engine) LoadGraph(b []byte) error {
	g, err := protocol.Decode(b)
	if err != nil {
		return err
	}

	e.graph = g
	e.layout.SetGraph(g)
	e.layout.Reset(1)
	e.spatial = graph.NewSpatialIndex(g)
	e.hasCommunity = hasAnyCommunity(g)
	e.render.SetHasCommunity(e.hasCommunity)
	Logger().Info("graph loaded", "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return nil
}

func hasAnyCommunity(g *graph.Graph) bool {
	for i := range g.Nodes {
		if g.Nodes[i].Community != 0 {
			return true
		}
	}
	return false
}

// StepLayout runs n force-simulation ticks synchronously.
func (e *Engine) StepLayout(n int) {
	e.layout.Step(n)
}

// Render draws one frame from the current node positions. The camera
// update happens inside the renderer, ahead of the draw passes, per
// spec.md §4.4's fixed per-frame order.
func (e *Engine) Render() {
	start := time.Now()

	if e.spatial.NeedsRebuild() {
		e.spatial.Rebuild()
	}
	e.render.DrawGraph(e.graph, 1.0/60)

	e.recordFrameTime(time.Since(start))
}

// TickAndRender is the function the host's per-frame callback invokes
// (spec.md §5): if running, it steps the layout once before drawing.
func (e *Engine) TickAndRender() {
	if e.running {
		e.layout.Step(1)
	}
	e.Render()
}

// Start sets the running flag future frame callbacks read.
func (e *Engine) Start() { e.running = true }

// Stop clears the running flag; an in-flight StepLayout always
// finishes its requested ticks regardless.
func (e *Engine) Stop() { e.running = false }

// Running reports the current run state.
func (e *Engine) Running() bool { return e.running }

// HighlightNodes sets the highlight flag for every node whose
// external id is in ids; unknown ids are silently ignored.
func (e *Engine) HighlightNodes(ids []uint32) {
	for _, id := range ids {
		if idx, ok := e.graph.IndexOf(id); ok {
			e.graph.Nodes[idx].Highlight = true
		}
	}
}

// ClearHighlights clears every node's highlight flag.
func (e *Engine) ClearHighlights() {
	for i := range e.graph.Nodes {
		e.graph.Nodes[i].Highlight = false
	}
}

// FocusNode sets the camera target to the given node's position at a
// fixed zoom. Returns UnknownIDError without moving the camera if id
// does not exist.
func (e *Engine) FocusNode(id uint32) error {
	idx, ok := e.graph.IndexOf(id)
	if !ok {
		return &UnknownIDError{ID: id}
	}
	n := e.graph.Node(int(idx))
	e.render.Camera().FocusOn(n.X, n.Y, 2)
	return nil
}

// FitView sets the camera target to frame every current node
// position with the configured padding.
func (e *Engine) FitView() {
	if e.graph.NodeCount() == 0 {
		return
	}
	minX, minY := e.graph.Nodes[0].X, e.graph.Nodes[0].Y
	maxX, maxY := minX, minY
	for _, n := range e.graph.Nodes {
		minX, maxX = minf(minX, n.X), maxf(maxX, n.X)
		minY, maxY = minf(minY, n.Y), maxf(maxY, n.Y)
	}
	e.render.Camera().FitView(minX, minY, maxX, maxY, e.opts.fitViewPadding)
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// OnNodeClick registers cb as the click callback, replacing any
// previous registration.
func (e *Engine) OnNodeClick(cb NodeCallback) { e.onClick = cb }

// OnNodeHover registers cb as the hover callback, replacing any
// previous registration.
func (e *Engine) OnNodeHover(cb NodeCallback) { e.onHover = cb }

// HandleClick maps a pixel coordinate to world space and invokes the
// click callback, if one is registered, with the hit node id or
// (0, false) on a miss.
func (e *Engine) HandleClick(screenX, screenY float32) {
	e.dispatchPointerEvent(screenX, screenY, e.onClick)
}

// HandleHover is HandleClick's hover counterpart.
func (e *Engine) HandleHover(screenX, screenY float32) {
	e.dispatchPointerEvent(screenX, screenY, e.onHover)
}

func (e *Engine) dispatchPointerEvent(screenX, screenY float32, cb NodeCallback) {
	if cb == nil {
		return
	}
	wx, wy := e.render.Camera().ScreenToWorld(screenX, screenY)
	radius := e.render.MaxNodeRadiusPx() / e.render.Camera().Zoom
	if radius <= 0 {
		radius = 1
	}
	idx, ok := e.spatial.NearestWithin(wx, wy, radius)
	if !ok {
		cb(0, false)
		return
	}
	cb(e.graph.Node(idx).ID, true)
}

// BackendTier returns the selected backend's capability tier, 1-4.
func (e *Engine) BackendTier() int { return int(e.backend.Tier()) }

// FPS returns one second divided by the mean duration of the recent
// Render calls (a window whose durations sum to about one second).
// Time spent outside Render is not counted.
func (e *Engine) FPS() float64 {
	if len(e.fpsWindow) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range e.fpsWindow {
		total += d
	}
	avg := total / time.Duration(len(e.fpsWindow))
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

func (e *Engine) recordFrameTime(d time.Duration) {
	e.fpsWindow = append(e.fpsWindow, d)
	var total time.Duration
	for _, fd := range e.fpsWindow {
		total += fd
	}
	for total > time.Second && len(e.fpsWindow) > 1 {
		total -= e.fpsWindow[0]
		e.fpsWindow = e.fpsWindow[1:]
	}
}

// Destroy releases the backend's GPU handles in reverse creation
// order. The handle must not be used afterward.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.backend.Destroy()
	e.destroyed = true
}
