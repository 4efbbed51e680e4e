// Package render implements the tier-selecting draw pipeline: a
// smoothed camera, three fixed-order instanced draw passes (edges,
// nodes, labels), and the byte-exact instance layouts a backend
// uploads with a zero-copy cast. See spec.md §4.4.
package render

import (
	"image"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/render/backend"
	"github.com/blomgraph/engine/render/text"
)

// glyphCellPx is the atlas cell size used for every glyph. Full
// contour-based SDF coverage (gogpu-gg's text/msdf territory) is out
// of scope — glyphs rasterize to flat 8-bit coverage instead — but
// each cell's coverage now comes from the font's real outline via
// text.Shaper.Outline/text.RasterizeGlyph, falling back to a solid
// cell only for glyphs with no outline at all (e.g. space). See
// DESIGN.md's scope-cut entry for the label pass.
const glyphCellPx = 16

var glyphCell = solidAlpha(glyphCellPx)

func solidAlpha(size int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func placeholderCoverage() *image.Alpha { return glyphCell }

const (
	defaultNodeRadiusScale = 3
	defaultEdgeThickness   = 1
	minNodeRadius          = 2
)

// Renderer runs the per-frame protocol against a selected backend: it
// owns the camera and the CPU-side staging buffers, and never
// reallocates them once grown (spec.md §4.4 step 3).
type Renderer struct {
	backend backend.Backend
	camera  *Camera

	nodeBuf  InstanceBuffer[NodeInstance]
	edgeBuf  InstanceBuffer[EdgeInstance]
	labelBuf InstanceBuffer[LabelInstance]

	nodeRadiusScale float32
	edgeThickness   float32
	labelsEnabled   bool
	hasCommunity    bool

	shaper *text.Shaper
	atlas  *text.Atlas

	maxNodeRadiusPx float32
}

// NewRenderer binds a Renderer to an already-selected backend and
// initial viewport size.
func NewRenderer(b backend.Backend, viewportW, viewportH float32, opts ...Option) *Renderer {
	r := &Renderer{
		backend:         b,
		camera:          NewCamera(viewportW, viewportH),
		nodeRadiusScale: defaultNodeRadiusScale,
		edgeThickness:   defaultEdgeThickness,
		labelsEnabled:   true,
	}
	for _, opt := range opts {
		opt(r)
	}
	b.Resize(int(viewportW), int(viewportH))
	return r
}

// Camera returns the renderer's camera for FocusOn/FitView/input
// mapping.
func (r *Renderer) Camera() *Camera { return r.camera }

// Backend returns the selected backend, e.g. for BackendTier().
func (r *Renderer) Backend() backend.Backend { return r.backend }

// Resize notifies both the camera and the backend of a viewport
// change.
func (r *Renderer) Resize(width, height int) {
	r.camera.Resize(float32(width), float32(height))
	r.backend.Resize(width, height)
}

// SetHasCommunity controls whether node color uses community-id
// buckets; when false, color falls back to degree (only meaningful once
// §4.1's optional community section has been decoded).
func (r *Renderer) SetHasCommunity(v bool) { r.hasCommunity = v }

// SetLabelShaper installs the font shaper and atlas the label pass
// uses; without one, DrawGraph skips label instances entirely.
func (r *Renderer) SetLabelShaper(shaper *text.Shaper, atlas *text.Atlas) {
	r.shaper = shaper
	r.atlas = atlas
}

// MaxNodeRadiusPx returns the largest on-screen node radius from the
// most recent DrawGraph call, the hit-test radius spec.md §4.4's
// input integration uses.
func (r *Renderer) MaxNodeRadiusPx() float32 { return r.maxNodeRadiusPx }

// DrawGraph runs one full frame: camera update, uniform write, and
// the three draw passes in their fixed order (spec.md §4.4).
func (r *Renderer) DrawGraph(g *graph.Graph, dt float32) {
	r.camera.Update(dt)
	vp := r.camera.ViewProjection()
	mat := [6]float32{vp.A, vp.B, vp.C, vp.D, vp.E, vp.F}
	r.backend.SetViewProjection(mat, r.camera.ViewportW, r.camera.ViewportH)

	r.stageEdges(g)
	r.backend.UploadEdges(EdgeInstanceBytes(r.edgeBuf.Slice()), r.edgeBuf.Len())

	r.stageNodes(g, vp)
	r.backend.UploadNodes(NodeInstanceBytes(r.nodeBuf.Slice()), r.nodeBuf.Len())

	if r.labelsEnabled && r.shaper != nil && r.atlas != nil {
		r.stageLabels(g)
	} else {
		r.labelBuf.Reset(0)
	}
	r.backend.UploadLabels(LabelInstanceBytes(r.labelBuf.Slice()), r.labelBuf.Len())

	r.backend.DrawFrame()
}

func (r *Renderer) stageNodes(g *graph.Graph, vp Matrix) {
	scale := averageMatrixScale(vp)
	dst := r.nodeBuf.Reset(g.NodeCount())
	maxRadius := float32(0)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		radius := n.Importance * r.nodeRadiusScale
		if radius < minNodeRadius {
			radius = minNodeRadius
		}
		red, green, blue, alpha := NodeColor(n, r.hasCommunity)
		dst[i] = NodeInstance{X: n.X, Y: n.Y, Radius: radius, R: red, G: green, B: blue, A: alpha}

		screenRadius := radius * scale
		if screenRadius > maxRadius {
			maxRadius = screenRadius
		}
	}
	r.maxNodeRadiusPx = maxRadius
}

func (r *Renderer) stageEdges(g *graph.Graph) {
	dst := r.edgeBuf.Reset(g.EdgeCount())
	for i, e := range g.Edges {
		a := g.Node(int(e.Source))
		b := g.Node(int(e.Target))
		dst[i] = EdgeInstance{
			AX: a.X, AY: a.Y,
			BX: b.X, BY: b.Y,
			R: 0.6, G: 0.6, B: 0.65, A: 0.6,
			Thickness: r.edgeThickness,
		}
	}
}

// stageLabels shapes and packs each node's label once per call.
// DrawGraph calls it on every frame while labels are enabled and a
// shaper is installed; it does not skip frames where the camera is
// unchanged.
func (r *Renderer) stageLabels(g *graph.Graph) {
	var instances []LabelInstance
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Label == "" {
			continue
		}
		glyphs := r.shaper.Shape(n.Label)
		cursorX := n.X
		for _, gl := range glyphs {
			coverage := placeholderCoverage()
			if contours := r.shaper.Outline(gl.GlyphID, glyphCellPx); contours != nil {
				coverage = text.RasterizeGlyph(contours, glyphCellPx)
			}
			rect, ok := r.atlas.PutGlyph(uint64(gl.GlyphID), coverage)
			if !ok {
				continue
			}
			instances = append(instances, LabelInstance{
				X: cursorX + gl.XOffset, Y: n.Y + gl.YOffset,
				U: rect.U, V: rect.V, W: rect.W, H: rect.H,
				ScreenSize: 12,
				R: 1, G: 1, B: 1, A: 0.9,
			})
			cursorX += gl.XAdvance
		}
	}
	dst := r.labelBuf.Reset(len(instances))
	copy(dst, instances)
}

func averageMatrixScale(m Matrix) float32 {
	sx := m.A
	if sx < 0 {
		sx = -sx
	}
	sy := m.E
	if sy < 0 {
		sy = -sy
	}
	return (sx + sy) / 2
}
