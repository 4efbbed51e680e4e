package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Rect is a glyph's location within the atlas texture, in normalized
// [0,1] UV coordinates, size included — exactly the (u,v,w,h)
// fields of render.LabelInstance.
type Rect struct {
	U, V, W, H float32
}

// Atlas packs glyph coverage bitmaps into one fixed-size texture using
// shelf packing: glyphs are placed left-to-right along the current
// shelf, and a new shelf starts when the current one runs out of
// width. This is a much smaller structure than a full bin packer, fine
// for the bounded, mostly-similar-height glyph set a label run
// produces.
type Atlas struct {
	img         *image.Alpha
	size        int
	cursorX     int
	cursorY     int
	shelfHeight int

	rects map[gidKey]Rect
}

type gidKey struct {
	gid uint32
}

// NewAtlas allocates a square atlas of the given pixel size.
func NewAtlas(size int) *Atlas {
	return &Atlas{
		img:   image.NewAlpha(image.Rect(0, 0, size, size)),
		size:  size,
		rects: make(map[gidKey]Rect),
	}
}

// Image returns the atlas's coverage bitmap, uploaded to a GPU texture
// once per change and sampled by the label fragment shader.
func (a *Atlas) Image() *image.Alpha { return a.img }

// PutGlyph rasterizes src (a glyph's alpha coverage bitmap, already
// rendered by the caller) into the next free atlas slot and returns
// its normalized rect. If the glyph is already packed for this key it
// is returned without re-rasterizing.
func (a *Atlas) PutGlyph(key uint64, src *image.Alpha) (Rect, bool) {
	k := gidKey{gid: uint32(key)}
	if r, ok := a.rects[k]; ok {
		return r, true
	}

	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return Rect{}, false
	}

	if a.cursorX+w > a.size {
		a.cursorX = 0
		a.cursorY += a.shelfHeight
		a.shelfHeight = 0
	}
	if a.cursorY+h > a.size {
		return Rect{}, false // atlas full
	}

	dstRect := image.Rect(a.cursorX, a.cursorY, a.cursorX+w, a.cursorY+h)
	draw.Draw(a.img, dstRect, src, src.Bounds().Min, draw.Src)

	rect := Rect{
		U: float32(a.cursorX) / float32(a.size),
		V: float32(a.cursorY) / float32(a.size),
		W: float32(w) / float32(a.size),
		H: float32(h) / float32(a.size),
	}
	a.rects[k] = rect

	a.cursorX += w
	if h > a.shelfHeight {
		a.shelfHeight = h
	}
	return rect, true
}

// RasterizeGlyph renders contours (one polyline per closed subpath, as
// Shaper.Outline produces) into an sz x sz alpha coverage bitmap using
// a scanline rasterizer, the simplified stand-in for gogpu-gg's
// contour-based SDF glyph renderer: multiple subpaths accumulate on
// one vector.Rasterizer so glyphs with holes (e.g. 'O') resolve their
// winding correctly.
func RasterizeGlyph(contours [][][2]float32, sz int) *image.Alpha {
	r := vector.NewRasterizer(sz, sz)
	for _, outline := range contours {
		if len(outline) == 0 {
			continue
		}
		r.MoveTo(outline[0][0], outline[0][1])
		for _, p := range outline[1:] {
			r.LineTo(p[0], p[1])
		}
		r.ClosePath()
	}
	img := image.NewAlpha(image.Rect(0, 0, sz, sz))
	r.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return img
}
