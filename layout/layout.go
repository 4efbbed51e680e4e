// Package layout implements the force-directed layout engine: a
// Barnes-Hut-approximated repulsion term, spring attraction along
// edges, gravity toward the origin, and semi-implicit Euler
// integration, run for a fixed number of ticks per call. See spec.md
// §4.3 for the per-tick protocol this package implements exactly.
package layout

import (
	"math"
	"math/rand"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/layout/simd"
)

// Integrator runs phase 3+4 of the tick protocol (spec.md §4.3):
// semi-implicit Euler integration of the accumulated per-node force
// into velocity and position, clamping any node that goes non-finite.
// The default is CPU-only. engine.Construct installs the tier-1
// backend in its place via Engine.SetIntegrator, letting
// StepLayout/TickAndRender stay tier-agnostic; that backend's
// Integrate also runs its arithmetic on the CPU.
type Integrator interface {
	Integrate(nodes []graph.Node, fxs, fys []float32, p Parameters) (clamped uint64)
}

// cpuIntegrator is the default Integrator: the same semi-implicit
// Euler step the force.wgsl compute shader encodes, run on the CPU.
type cpuIntegrator struct{}

func (cpuIntegrator) Integrate(nodes []graph.Node, fxs, fys []float32, p Parameters) uint64 {
	var clamped uint64
	for i := range nodes {
		nd := &nodes[i]
		vx := (nd.VX + fxs[i]*p.TimeStep) * p.Damping
		vy := (nd.VY + fys[i]*p.TimeStep) * p.Damping
		px := nd.X + vx*p.TimeStep
		py := nd.Y + vy*p.TimeStep

		if !finite(vx) || !finite(vy) || !finite(px) || !finite(py) {
			nd.VX, nd.VY = 0, 0
			clamped++
			continue
		}
		nd.VX, nd.VY = vx, vy
		nd.X, nd.Y = px, py
	}
	return clamped
}

// Engine owns the force simulation for one loaded graph. It never
// fails: anomalies are clamped and counted (spec.md §4.3 "Failure
// mode").
type Engine struct {
	g      *graph.Graph
	params Parameters
	stats  Stats

	useSIMD    bool
	integrator Integrator

	// Scratch buffers reused across ticks to avoid per-tick
	// allocation, holding the struct-of-arrays position/force view
	// the quadtree and the SIMD kernel both read from.
	xs, ys   []float32
	fxs, fys []float32
}

// New creates a layout engine bound to g, using default parameters and
// the SIMD kernel if HasSIMD128 reports true.
func New(g *graph.Graph) *Engine {
	e := &Engine{
		g:          g,
		params:     DefaultParameters(),
		useSIMD:    HasSIMD128(),
		integrator: cpuIntegrator{},
	}
	e.resizeScratch()
	return e
}

// SetIntegrator installs i as the phase 3+4 integrator, letting a
// tier-1 GPU-compute backend (render/backend/gpucompute) drive the
// integration step instead of the CPU default. A nil i resets to the
// CPU path.
func (e *Engine) SetIntegrator(i Integrator) {
	if i == nil {
		i = cpuIntegrator{}
	}
	e.integrator = i
}

// SetGraph replaces the bound graph, as load_graph does: the new graph
// is not positioned until Reset is called (the engine glue layer calls
// Reset immediately after SetGraph, per spec.md §6).
func (e *Engine) SetGraph(g *graph.Graph) {
	e.g = g
	e.resizeScratch()
}

func (e *Engine) resizeScratch() {
	n := e.g.NodeCount()
	e.xs = make([]float32, n)
	e.ys = make([]float32, n)
	e.fxs = make([]float32, n)
	e.fys = make([]float32, n)
}

// Parameters returns the engine's current constants.
func (e *Engine) Parameters() Parameters { return e.params }

// Stats returns the engine's anomaly counters.
func (e *Engine) Stats() Stats { return e.stats }

// UsesSIMD reports whether the vectorized kernel is active.
func (e *Engine) UsesSIMD() bool { return e.useSIMD }

// UsesCustomIntegrator reports whether a non-default Integrator is
// installed, e.g. so a host can log which tier is driving the
// simulation's phase 3+4 step.
func (e *Engine) UsesCustomIntegrator() bool {
	_, isDefault := e.integrator.(cpuIntegrator)
	return !isDefault
}

// SetParameters updates the engine's constants from cfg. Unknown keys
// are rejected and leave the engine's parameters unmodified, per
// spec.md §4.3.
func (e *Engine) SetParameters(cfg map[string]float64) error {
	updated, err := applyUpdates(e.params, cfg)
	if err != nil {
		return err
	}
	e.params = updated
	return nil
}

// Reset reinitializes positions uniformly in a disk whose radius is
// proportional to sqrt(node_count), and zeroes velocities, per spec.md
// §4.3.
func (e *Engine) Reset(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	n := e.g.NodeCount()
	radius := 10 * math.Sqrt(float64(n)+1)

	for i := range e.g.Nodes {
		r := radius * math.Sqrt(rng.Float64())
		theta := rng.Float64() * 2 * math.Pi
		nd := &e.g.Nodes[i]
		nd.X = float32(r * math.Cos(theta))
		nd.Y = float32(r * math.Sin(theta))
		nd.VX = 0
		nd.VY = 0
	}
}

// Step runs n ticks synchronously.
func (e *Engine) Step(n int) {
	for i := 0; i < n; i++ {
		e.tick()
	}
	e.stats.TicksRun += uint64(n)
}

func (e *Engine) tick() {
	nodeCount := e.g.NodeCount()
	if nodeCount == 0 {
		return
	}

	for i, nd := range e.g.Nodes {
		e.xs[i] = nd.X
		e.ys[i] = nd.Y
		e.fxs[i] = 0
		e.fys[i] = 0
	}

	// Phase 1: build the Barnes-Hut tree from current positions.
	bounds := computeBounds(e.xs, e.ys)
	tree := buildQuadTree(bounds, e.xs, e.ys)

	// Phase 2a: repulsion, via the tree, one body at a time (tree
	// descent is irregular and not vectorized).
	for i := 0; i < nodeCount; i++ {
		fx, fy := tree.repulsionAt(int32(i), e.xs[i], e.ys[i], e.params)
		e.fxs[i] += fx
		e.fys[i] += fy
	}

	// Phase 2b: attraction along every edge.
	if e.useSIMD {
		simdAccumulateAttraction(e.g.Edges, e.xs, e.ys, e.fxs, e.fys, e.params)
	} else {
		scalarAccumulateAttraction(e.g.Edges, e.xs, e.ys, e.fxs, e.fys, e.params)
	}

	// Phase 2c: gravity toward the origin.
	if e.useSIMD {
		simdApplyGravity(e.xs, e.ys, e.fxs, e.fys, e.params)
	} else {
		scalarApplyGravity(e.xs, e.ys, e.fxs, e.fys, e.params)
	}

	// Phase 3 + 4: integrate and clamp, via whichever integrator is
	// installed for the selected backend tier.
	clamped := e.integrator.Integrate(e.g.Nodes, e.fxs, e.fys, e.params)
	e.stats.ClampedSteps += clamped
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// scalarAccumulateAttraction applies spring attraction along every
// edge: F = k_a * d along the unit vector between endpoints, applied
// equally and oppositely. Self-loops contribute nothing.
func scalarAccumulateAttraction(edges []graph.Edge, xs, ys, fxs, fys []float32, p Parameters) {
	for _, e := range edges {
		if e.Source == e.Target {
			continue
		}
		s, t := e.Source, e.Target
		dx := xs[t] - xs[s]
		dy := ys[t] - ys[s]
		d := float32(math.Hypot(float64(dx), float64(dy)))
		if d == 0 {
			continue
		}
		force := p.Attraction * d
		ux, uy := dx/d, dy/d
		fxs[s] += ux * force
		fys[s] += uy * force
		fxs[t] -= ux * force
		fys[t] -= uy * force
	}
}

// simdAccumulateAttraction is the vectorized equivalent of
// scalarAccumulateAttraction: four edges' worth of endpoint deltas are
// gathered into Vec4f lanes, and the common arithmetic (distance,
// reciprocal, force) runs lane-wise. Scatter of the per-endpoint
// contribution stays scalar since it touches arbitrary, possibly
// overlapping node indices. Numerically equivalent to the scalar path
// modulo reassociated rounding, per spec.md §4.3's SIMD path.
func simdAccumulateAttraction(edges []graph.Edge, xs, ys, fxs, fys []float32, p Parameters) {
	n := len(edges)
	i := 0
	for ; i+4 <= n; i += 4 {
		var dx, dy simd.Vec4f
		for lane := 0; lane < 4; lane++ {
			e := edges[i+lane]
			dx[lane] = xs[e.Target] - xs[e.Source]
			dy[lane] = ys[e.Target] - ys[e.Source]
		}
		d2 := dx.Mul(dx).Add(dy.Mul(dy))
		d := d2.Sqrt()

		for lane := 0; lane < 4; lane++ {
			e := edges[i+lane]
			if e.Source == e.Target || d[lane] == 0 {
				continue
			}
			force := p.Attraction * d[lane]
			ux, uy := dx[lane]/d[lane], dy[lane]/d[lane]
			fxs[e.Source] += ux * force
			fys[e.Source] += uy * force
			fxs[e.Target] -= ux * force
			fys[e.Target] -= uy * force
		}
	}
	// Remainder, scalar.
	for ; i < n; i++ {
		e := edges[i]
		if e.Source == e.Target {
			continue
		}
		dx := xs[e.Target] - xs[e.Source]
		dy := ys[e.Target] - ys[e.Source]
		d := float32(math.Hypot(float64(dx), float64(dy)))
		if d == 0 {
			continue
		}
		force := p.Attraction * d
		ux, uy := dx/d, dy/d
		fxs[e.Source] += ux * force
		fys[e.Source] += uy * force
		fxs[e.Target] -= ux * force
		fys[e.Target] -= uy * force
	}
}

// scalarApplyGravity applies F = -k_g * position per node.
func scalarApplyGravity(xs, ys, fxs, fys []float32, p Parameters) {
	for i := range xs {
		fxs[i] -= p.Gravity * xs[i]
		fys[i] -= p.Gravity * ys[i]
	}
}

// simdApplyGravity is the vectorized equivalent of scalarApplyGravity,
// processing four nodes per iteration.
func simdApplyGravity(xs, ys, fxs, fys []float32, p Parameters) {
	n := len(xs)
	g := simd.Splat(p.Gravity)
	i := 0
	for ; i+4 <= n; i += 4 {
		var x, y, fx, fy simd.Vec4f
		copy(x[:], xs[i:i+4])
		copy(y[:], ys[i:i+4])
		copy(fx[:], fxs[i:i+4])
		copy(fy[:], fys[i:i+4])

		fx = fx.Sub(g.Mul(x))
		fy = fy.Sub(g.Mul(y))

		copy(fxs[i:i+4], fx[:])
		copy(fys[i:i+4], fy[:])
	}
	for ; i < n; i++ {
		fxs[i] -= p.Gravity * xs[i]
		fys[i] -= p.Gravity * ys[i]
	}
}
