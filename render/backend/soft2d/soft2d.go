// Package soft2d implements tier 4: the software 2D fallback used
// when no GPU is available. It rasterizes the same three instance
// streams a GPU backend would draw, onto a CPU pixel buffer, adapted
// from gogpu-gg's Pixmap.
package soft2d

import (
	"math"

	"github.com/blomgraph/engine/render/backend"
)

func init() {
	backend.Register(backend.TierSoftware, func() backend.Backend { return New() })
}

// Pixmap is a rectangular RGBA8 pixel buffer, SetPixel-blended like
// gogpu-gg's Pixmap.
type Pixmap struct {
	width, height int
	data          []uint8
}

// NewPixmap allocates a pixmap of the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{width: width, height: height, data: make([]uint8, width*height*4)}
}

func (p *Pixmap) Width() int  { return p.width }
func (p *Pixmap) Height() int { return p.height }

// Data returns the raw RGBA8 buffer.
func (p *Pixmap) Data() []uint8 { return p.data }

func (p *Pixmap) setPixel(x, y int, r, g, b, a float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = clamp255(r)
	p.data[i+1] = clamp255(g)
	p.data[i+2] = clamp255(b)
	p.data[i+3] = clamp255(a)
}

// blendPixel alpha-composites (r,g,b,a) over the existing pixel.
func (p *Pixmap) blendPixel(x, y int, r, g, b, a float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height || a <= 0 {
		return
	}
	if a >= 1 {
		p.setPixel(x, y, r, g, b, a)
		return
	}
	i := (y*p.width + x) * 4
	inv := 1 - a
	p.data[i+0] = clamp255(r*a + float32(p.data[i+0])/255*inv)
	p.data[i+1] = clamp255(g*a + float32(p.data[i+1])/255*inv)
	p.data[i+2] = clamp255(b*a + float32(p.data[i+2])/255*inv)
	p.data[i+3] = clamp255(a + float32(p.data[i+3])/255*inv)
}

func (p *Pixmap) clear(r, g, b, a float32) {
	cr, cg, cb, ca := clamp255(r), clamp255(g), clamp255(b), clamp255(a)
	for i := 0; i+3 < len(p.data); i += 4 {
		p.data[i+0] = cr
		p.data[i+1] = cg
		p.data[i+2] = cb
		p.data[i+3] = ca
	}
}

func clamp255(v float32) uint8 {
	f := v * 255
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// Backend is tier 4's Backend implementation: every pass is drawn
// directly into a Pixmap with simple per-pixel coverage tests, no
// instanced-draw-call concept since there is no GPU to submit to.
type Backend struct {
	canvas        *Pixmap
	viewProj      [6]float32
	viewportW     float32
	viewportH     float32
	nodes         []nodeInst
	edges         []edgeInst
	labels        []labelInst
}

type nodeInst struct {
	x, y, radius       float32
	r, g, b, a         float32
}

type edgeInst struct {
	ax, ay, bx, by float32
	r, g, b, a     float32
	thickness      float32
}

type labelInst struct {
	x, y       float32
	u, v, w, h float32
	screenSize float32
	r, g, b, a float32
}

// New creates a tier 4 backend with no canvas yet; Resize allocates
// one.
func New() *Backend {
	return &Backend{viewProj: identity6()}
}

func identity6() [6]float32 { return [6]float32{1, 0, 0, 0, 1, 0} }

func (b *Backend) Tier() backend.Tier { return backend.TierSoftware }

// Available is always true: software rasterization has no
// environment precondition, making it the terminal fallback.
func (b *Backend) Available() bool { return true }

func (b *Backend) Resize(width, height int) {
	b.canvas = NewPixmap(width, height)
	b.viewportW, b.viewportH = float32(width), float32(height)
}

func (b *Backend) UploadNodes(data []byte, count int) {
	b.nodes = decodeNodes(data, count)
}

func (b *Backend) UploadEdges(data []byte, count int) {
	b.edges = decodeEdges(data, count)
}

func (b *Backend) UploadLabels(data []byte, count int) {
	b.labels = decodeLabels(data, count)
}

func (b *Backend) SetViewProjection(m [6]float32, viewportW, viewportH float32) {
	b.viewProj = m
	b.viewportW, b.viewportH = viewportW, viewportH
}

func (b *Backend) transform(x, y float32) (float32, float32) {
	m := b.viewProj
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// DrawFrame rasterizes edges, then nodes, then labels, in that fixed
// order, directly into the canvas.
func (b *Backend) DrawFrame() {
	if b.canvas == nil {
		return
	}
	b.canvas.clear(0, 0, 0, 0)

	for _, e := range b.edges {
		b.drawEdge(e)
	}
	for _, n := range b.nodes {
		b.drawNode(n)
	}
	for _, l := range b.labels {
		b.drawLabel(l)
	}
}

func (b *Backend) drawNode(n nodeInst) {
	cx, cy := b.transform(n.x, n.y)
	r := n.radius * averageScale(b.viewProj)
	minX, maxX := int(cx-r), int(cx+r)
	minY, maxY := int(cy-r), int(cy+r)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := float32(math.Hypot(float64(x)-float64(cx), float64(y)-float64(cy)))
			alpha := circleCoverage(d, r)
			if alpha > 0 {
				b.canvas.blendPixel(x, y, n.r, n.g, n.b, n.a*alpha)
			}
		}
	}
}

// circleCoverage returns 1 − smoothstep(r−1, r, d), antialiasing a
// one-pixel band at the circle edge, per spec.md §4.4's node shader.
func circleCoverage(d, r float32) float32 {
	if r <= 0 {
		return 0
	}
	inner, outer := r-1, r
	t := smoothstep(inner, outer, d)
	return 1 - t
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

func (b *Backend) drawEdge(e edgeInst) {
	ax, ay := b.transform(e.ax, e.ay)
	bx, by := b.transform(e.bx, e.by)
	thickness := e.thickness * averageScale(b.viewProj)
	if thickness < 1 {
		thickness = 1
	}

	length := float32(math.Hypot(float64(bx-ax), float64(by-ay)))
	minX, maxX := int(min32(ax, bx)-thickness), int(max32(ax, bx)+thickness)
	minY, maxY := int(min32(ay, by)-thickness), int(max32(ay, by)+thickness)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			d := distanceToSegment(float32(x), float32(y), ax, ay, bx, by, length)
			alpha := 1 - smoothstep(thickness/2-1, thickness/2, d)
			if alpha > 0 {
				b.canvas.blendPixel(x, y, e.r, e.g, e.b, e.a*alpha)
			}
		}
	}
}

func distanceToSegment(px, py, ax, ay, bx, by, length float32) float32 {
	if length == 0 {
		return float32(math.Hypot(float64(px-ax), float64(py-ay)))
	}
	t := ((px-ax)*(bx-ax) + (py-ay)*(by-ay)) / (length * length)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	projX, projY := ax+t*(bx-ax), ay+t*(by-ay)
	return float32(math.Hypot(float64(px-projX), float64(py-projY)))
}

func (b *Backend) drawLabel(l labelInst) {
	cx, cy := b.transform(l.x, l.y)
	half := l.screenSize / 2
	minX, maxX := int(cx-half), int(cx+half)
	minY, maxY := int(cy-half), int(cy+half)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			b.canvas.blendPixel(x, y, l.r, l.g, l.b, l.a)
		}
	}
}

func averageScale(m [6]float32) float32 {
	sx := float32(math.Hypot(float64(m[0]), float64(m[3])))
	sy := float32(math.Hypot(float64(m[1]), float64(m[4])))
	return (sx + sy) / 2
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func (b *Backend) Destroy() {
	b.canvas = nil
	b.nodes = nil
	b.edges = nil
	b.labels = nil
}

// Snapshot returns the current frame's pixel buffer, nil before the
// first Resize.
func (b *Backend) Snapshot() *Pixmap { return b.canvas }
