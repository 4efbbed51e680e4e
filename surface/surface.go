// Package surface defines the host drawing surface handle the engine
// binds to at construction (spec.md §6's construct operation). Unlike
// gogpu-gg's surface package, this one carries no path-fill/stroke
// vector API: the renderer only ever draws fixed instanced primitives,
// never arbitrary paths, so Surface is reduced to the lifecycle and
// presentation operations a backend actually needs.
package surface

import "image"

// Surface is a 2D pixel target the renderer presents frames into.
// Not safe for concurrent use, matching the engine's single-threaded
// execution model (spec.md §5).
type Surface interface {
	// Width returns the surface width in pixels.
	Width() int

	// Height returns the surface height in pixels.
	Height() int

	// Clear fills the entire surface with a single color.
	Clear(r, g, b, a float32)

	// Flush ensures all pending drawing operations are complete. For
	// CPU surfaces this is a no-op; for GPU surfaces it submits
	// commands and presents.
	Flush() error

	// Snapshot returns the current contents as an RGBA image, a copy
	// independent of further drawing.
	Snapshot() *image.RGBA

	// Close releases resources; idempotent.
	Close() error
}

// ResizableSurface is an optional interface for surfaces whose
// backing storage can change size in place.
type ResizableSurface interface {
	Surface
	Resize(width, height int) error
}
