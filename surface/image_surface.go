package surface

import "image"

// ImageSurface is a CPU-backed Surface over an *image.RGBA, adapted
// from gogpu-gg's Pixmap/ImageSurface pattern but without its
// vector-path Fill/Stroke API.
type ImageSurface struct {
	img    *image.RGBA
	closed bool
}

// NewImageSurface allocates a width x height CPU surface.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

func (s *ImageSurface) Width() int  { return s.img.Bounds().Dx() }
func (s *ImageSurface) Height() int { return s.img.Bounds().Dy() }

func (s *ImageSurface) Clear(r, g, b, a float32) {
	cr, cg, cb, ca := to8(r), to8(g), to8(b), to8(a)
	for i := 0; i+3 < len(s.img.Pix); i += 4 {
		s.img.Pix[i+0] = cr
		s.img.Pix[i+1] = cg
		s.img.Pix[i+2] = cb
		s.img.Pix[i+3] = ca
	}
}

func to8(v float32) uint8 {
	f := v * 255
	if f <= 0 {
		return 0
	}
	if f >= 255 {
		return 255
	}
	return uint8(f + 0.5)
}

// Flush is a no-op: a CPU surface has nothing to submit.
func (s *ImageSurface) Flush() error { return nil }

// Snapshot copies the current pixel buffer into a new image.
func (s *ImageSurface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Resize reallocates the backing image, discarding prior contents.
func (s *ImageSurface) Resize(width, height int) error {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (s *ImageSurface) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *ImageSurface) Closed() bool { return s.closed }
