package text

import (
	"math"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Outline extracts gid's vector contours at sizePx pixels per em and
// flattens them into line segments scaled to fit a sizePx square cell
// with the font's y-up axis flipped to the rasterizer's y-down
// convention, grounded on gogpu-gg's
// OutlineExtractor.ExtractOutline/Translate/Scale pipeline (simplified
// from that package's full sfnt.Segments->GlyphOutline conversion
// directly to RasterizeGlyph's polyline input, skipping the
// intermediate GlyphOutline type since this package has no other use
// for it). Returns nil for glyphs with no outline, such as space.
func (s *Shaper) Outline(gid font.GID, sizePx float32) [][][2]float32 {
	ppem := fixed.Int26_6(sizePx * 64)
	segs, err := s.outline.LoadGlyph(&s.outlineBuf, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil || len(segs) == 0 {
		return nil
	}

	var contours [][][2]float32
	var cur [][2]float32
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)

	track := func(p [2]float32) {
		if p[0] < minX {
			minX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(cur) > 1 {
				contours = append(contours, cur)
			}
			p := fixedToPoint(seg.Args[0])
			cur = [][2]float32{p}
			track(p)
		case sfnt.SegmentOpLineTo:
			p := fixedToPoint(seg.Args[0])
			cur = append(cur, p)
			track(p)
		case sfnt.SegmentOpQuadTo:
			c := fixedToPoint(seg.Args[0])
			p := fixedToPoint(seg.Args[1])
			cur = flattenQuadTo(cur, c, p)
			track(c)
			track(p)
		case sfnt.SegmentOpCubeTo:
			c1 := fixedToPoint(seg.Args[0])
			c2 := fixedToPoint(seg.Args[1])
			p := fixedToPoint(seg.Args[2])
			cur = flattenCubeTo(cur, c1, c2, p)
			track(c1)
			track(c2)
			track(p)
		}
	}
	if len(cur) > 1 {
		contours = append(contours, cur)
	}
	if len(contours) == 0 || maxX <= minX || maxY <= minY {
		return nil
	}

	scale := sizePx / maxf32(maxX-minX, maxY-minY)
	for _, c := range contours {
		for i, p := range c {
			c[i] = [2]float32{(p[0] - minX) * scale, (maxY - p[1]) * scale}
		}
	}
	return contours
}

func fixedToPoint(p fixed.Point26_6) [2]float32 {
	return [2]float32{float32(p.X) / 64, float32(p.Y) / 64}
}

// flattenQuadTo appends a flattened quadratic Bezier from cur's last
// point, through control c, to endpoint p.
func flattenQuadTo(cur [][2]float32, c, p [2]float32) [][2]float32 {
	start := cur[len(cur)-1]
	const steps = 8
	for i := 1; i <= steps; i++ {
		t := float32(i) / steps
		mt := 1 - t
		x := mt*mt*start[0] + 2*mt*t*c[0] + t*t*p[0]
		y := mt*mt*start[1] + 2*mt*t*c[1] + t*t*p[1]
		cur = append(cur, [2]float32{x, y})
	}
	return cur
}

// flattenCubeTo appends a flattened cubic Bezier from cur's last
// point, through controls c1/c2, to endpoint p.
func flattenCubeTo(cur [][2]float32, c1, c2, p [2]float32) [][2]float32 {
	start := cur[len(cur)-1]
	const steps = 8
	for i := 1; i <= steps; i++ {
		t := float32(i) / steps
		mt := 1 - t
		x := mt*mt*mt*start[0] + 3*mt*mt*t*c1[0] + 3*mt*t*t*c2[0] + t*t*t*p[0]
		y := mt*mt*mt*start[1] + 3*mt*mt*t*c1[1] + 3*mt*t*t*c2[1] + t*t*t*p[1]
		cur = append(cur, [2]float32{x, y})
	}
	return cur
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
