// Package text lays out node labels: shaping via go-text/typesetting
// (the same HarfBuzz-backed shaper gogpu-gg's GoTextShaper wraps) and
// packing the resulting glyphs into a single atlas texture so the
// renderer can draw every label with one instanced draw call.
//
// Full signed-distance-field contour generation (gogpu-gg's
// text/msdf) is out of scope here: glyphs are rasterized directly to
// 8-bit coverage, trading crispness at extreme zoom for a much
// smaller package. See DESIGN.md for the scope-cut rationale.
package text

import (
	"bytes"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Glyph is one shaped, positioned glyph within a label run.
type Glyph struct {
	GlyphID  font.GID
	XAdvance float32
	XOffset  float32
	YOffset  float32
}

// Shaper shapes label strings into glyph runs using one parsed font.
// Not safe for concurrent use: the single-threaded engine never
// shapes two labels at once (spec.md §5).
type Shaper struct {
	font   *font.Font
	hb     shaping.HarfbuzzShaper
	sizePx float32

	// outline is a second parse of the same font data through
	// golang.org/x/image/font/sfnt, which exposes the vector contour
	// data go-text/typesetting's shaping-focused font.Font does not;
	// see Outline. outlineBuf is reused across calls the same way
	// gogpu-gg's OutlineExtractor reuses one sfnt.Buffer.
	outline    *sfnt.Font
	outlineBuf sfnt.Buffer
}

// NewShaper parses fontData (an OpenType/TrueType font) and returns a
// Shaper that lays out text at sizePx pixels.
func NewShaper(fontData []byte, sizePx float32) (*Shaper, error) {
	parsed, err := font.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}
	outline, err := sfnt.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return &Shaper{font: parsed.Font, sizePx: sizePx, outline: outline}, nil
}

// Shape lays out label and returns its glyphs in visual order.
func (s *Shaper) Shape(label string) []Glyph {
	if label == "" {
		return nil
	}
	runes := []rune(label)
	face := font.NewFace(s.font)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: 0, // LTR; node labels are not expected to need bidi.
		Face:      face,
		Size:      fixed.I(int(s.sizePx)),
		Language:  language.NewLanguage("en"),
	}
	out := s.hb.Shape(input)

	glyphs := make([]Glyph, len(out.Glyphs))
	for i, g := range out.Glyphs {
		glyphs[i] = Glyph{
			GlyphID:  g.GlyphID,
			XAdvance: fixedToFloat(g.XAdvance),
			XOffset:  fixedToFloat(g.XOffset),
			YOffset:  fixedToFloat(g.YOffset),
		}
	}
	return glyphs
}

func fixedToFloat(f fixed.Int26_6) float32 { return float32(f) / 64 }
