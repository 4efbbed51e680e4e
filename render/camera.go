package render

import "math"

// Camera tracks a target pan/zoom and eases the visible view toward it
// exponentially, per spec.md §4.4's camera smoothing: the displayed
// position never jumps, even when FocusNode or FitView retargets it
// every frame.
type Camera struct {
	// Current (displayed) state.
	X, Y, Zoom float32

	// TargetX, TargetY, TargetZoom are what X/Y/Zoom ease toward.
	TargetX, TargetY, TargetZoom float32

	// Smoothing is the ease rate k in cur += (target-cur)*(1-exp(-k*dt)).
	// Larger values converge faster.
	Smoothing float32

	ViewportW, ViewportH float32
}

// NewCamera returns a camera centered at the origin at zoom 1, with its
// current and target state equal and Smoothing set to 5.
func NewCamera(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:       1,
		TargetZoom: 1,
		Smoothing:  5,
		ViewportW:  viewportW,
		ViewportH:  viewportH,
	}
}

// Resize updates the viewport dimensions used by ViewProjection.
func (c *Camera) Resize(w, h float32) {
	c.ViewportW, c.ViewportH = w, h
}

// FocusOn retargets the camera to center on (x, y) at the given zoom,
// without moving the displayed position immediately.
func (c *Camera) FocusOn(x, y, zoom float32) {
	c.TargetX, c.TargetY, c.TargetZoom = x, y, zoom
}

// FitView retargets the camera so that the axis-aligned box
// [minX,minY]-[maxX,maxY] is fully visible with the given padding in
// viewport pixels, per spec.md §6's fit_view operation.
func (c *Camera) FitView(minX, minY, maxX, maxY, padding float32) {
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		c.FocusOn((minX+maxX)/2, (minY+maxY)/2, 1)
		return
	}
	availW := c.ViewportW - 2*padding
	availH := c.ViewportH - 2*padding
	if availW <= 0 || availH <= 0 {
		availW, availH = c.ViewportW, c.ViewportH
	}
	zoomX := availW / w
	zoomY := availH / h
	zoom := zoomX
	if zoomY < zoom {
		zoom = zoomY
	}
	c.FocusOn((minX+maxX)/2, (minY+maxY)/2, zoom)
}

// Update advances the eased state by dt seconds toward the current
// target.
func (c *Camera) Update(dt float32) {
	k := float32(1 - math.Exp(-float64(c.Smoothing*dt)))
	c.X += (c.TargetX - c.X) * k
	c.Y += (c.TargetY - c.Y) * k
	c.Zoom += (c.TargetZoom - c.Zoom) * k
}

// ScreenToWorld maps a pixel coordinate (origin top-left of the
// viewport) to world space using the inverse of the current camera
// transform, for hover/click hit-testing (spec.md §4.4's input
// integration).
func (c *Camera) ScreenToWorld(screenX, screenY float32) (float32, float32) {
	if c.Zoom == 0 {
		return c.X, c.Y
	}
	worldX := (screenX-c.ViewportW/2)/c.Zoom + c.X
	worldY := (screenY-c.ViewportH/2)/c.Zoom + c.Y
	return worldX, worldY
}

// ViewProjection returns the matrix mapping world space to clip-ish
// viewport space: centered on the camera, scaled by zoom, with the
// viewport origin at its center.
func (c *Camera) ViewProjection() Matrix {
	toOrigin := Translate(-c.X, -c.Y)
	scale := Scale(c.Zoom)
	toViewport := Translate(c.ViewportW/2, c.ViewportH/2)
	return toViewport.Multiply(scale).Multiply(toOrigin)
}
