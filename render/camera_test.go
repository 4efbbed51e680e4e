package render

import "testing"

func TestCameraUpdateNeverOvershootsForward(t *testing.T) {
	c := NewCamera(800, 600)
	c.FocusOn(100, 0, 2)

	prevDist := float32(100)
	for i := 0; i < 200; i++ {
		c.Update(1.0 / 60)
		dist := c.TargetX - c.X
		if dist < 0 {
			t.Fatalf("camera overshot target on step %d: dist=%v", i, dist)
		}
		if dist > prevDist {
			t.Fatalf("|cur-target| increased on step %d: %v -> %v", i, prevDist, dist)
		}
		prevDist = dist
	}
	if prevDist > 0.01 {
		t.Errorf("camera did not converge after 200 steps: remaining dist %v", prevDist)
	}
}

func TestCameraUpdateZeroDtIsNoop(t *testing.T) {
	c := NewCamera(800, 600)
	c.FocusOn(50, 50, 3)
	c.Update(0)

	if c.X != 0 || c.Y != 0 || c.Zoom != 1 {
		t.Fatalf("zero dt update moved camera: (%v,%v,%v)", c.X, c.Y, c.Zoom)
	}
}

func TestFitViewChoosesLimitingAxis(t *testing.T) {
	c := NewCamera(1000, 500)
	c.FitView(0, 0, 1000, 100, 0)

	if c.TargetZoom > 1.0001 {
		t.Errorf("zoom should not exceed 1 when width is the limiting axis: got %v", c.TargetZoom)
	}
}

func TestFitViewDegenerateBoxFallsBackToUnitZoom(t *testing.T) {
	c := NewCamera(800, 600)
	c.FitView(5, 5, 5, 5, 10)

	if c.TargetZoom != 1 {
		t.Errorf("degenerate box should target zoom 1, got %v", c.TargetZoom)
	}
	if c.TargetX != 5 || c.TargetY != 5 {
		t.Errorf("degenerate box should target its own point, got (%v,%v)", c.TargetX, c.TargetY)
	}
}

func TestScreenToWorldInvertsViewProjection(t *testing.T) {
	c := NewCamera(800, 600)
	c.X, c.Y, c.Zoom = 37, -12, 2.5

	m := c.ViewProjection()
	sx, sy := m.TransformPoint(100, 50)
	wx, wy := c.ScreenToWorld(sx, sy)

	if diff := abs32(wx-100) + abs32(wy-50); diff > 1e-3 {
		t.Errorf("ScreenToWorld did not invert ViewProjection: got (%v,%v), want (100,50)", wx, wy)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestViewProjectionCentersCameraPositionAtViewportCenter(t *testing.T) {
	c := NewCamera(800, 600)
	c.X, c.Y, c.Zoom = 10, 20, 2

	m := c.ViewProjection()
	x, y := m.TransformPoint(10, 20)
	if x != 400 || y != 300 {
		t.Errorf("camera position should map to viewport center, got (%v,%v)", x, y)
	}
}
