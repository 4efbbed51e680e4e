package soft2d

import "testing"

func TestAvailableAlwaysTrue(t *testing.T) {
	b := New()
	if !b.Available() {
		t.Fatal("software tier must always be available")
	}
}

func TestDrawFrameWithoutResizeIsNoop(t *testing.T) {
	b := New()
	b.DrawFrame() // must not panic
}

func TestPixmapClearFillsEveryPixel(t *testing.T) {
	p := NewPixmap(4, 4)
	p.clear(1, 0, 0, 1)

	for i := 0; i+3 < len(p.Data()); i += 4 {
		if p.Data()[i+0] != 255 || p.Data()[i+3] != 255 {
			t.Fatalf("pixel %d not cleared to opaque red: %v", i/4, p.Data()[i:i+4])
		}
	}
}

func TestDrawNodeProducesOpaqueCenterPixel(t *testing.T) {
	b := New()
	b.Resize(100, 100)
	b.SetViewProjection(identity6(), 100, 100)

	n := NodeInstanceBytesForTest(50, 50, 10, 1, 0, 0, 1)
	b.UploadNodes(n, 1)
	b.DrawFrame()

	snap := b.Snapshot()
	i := (50*snap.Width() + 50) * 4
	if snap.Data()[i+3] < 250 {
		t.Errorf("node center alpha = %d, want near-opaque", snap.Data()[i+3])
	}
}

func TestCircleCoverageIsZeroOutsideRadius(t *testing.T) {
	if c := circleCoverage(20, 10); c != 0 {
		t.Errorf("circleCoverage(20, 10) = %v, want 0", c)
	}
}

func TestCircleCoverageIsOneAtCenter(t *testing.T) {
	if c := circleCoverage(0, 10); c != 1 {
		t.Errorf("circleCoverage(0, 10) = %v, want 1", c)
	}
}

func TestSmoothstepClampsOutsideRange(t *testing.T) {
	if v := smoothstep(0, 1, -5); v != 0 {
		t.Errorf("smoothstep below range = %v, want 0", v)
	}
	if v := smoothstep(0, 1, 5); v != 1 {
		t.Errorf("smoothstep above range = %v, want 1", v)
	}
}

func TestDistanceToSegmentEndpoints(t *testing.T) {
	d := distanceToSegment(0, 0, 0, 0, 10, 0, 10)
	if d != 0 {
		t.Errorf("distance at segment start = %v, want 0", d)
	}
}

// NodeInstanceBytesForTest builds one node instance's raw bytes
// without depending on the render package, to avoid a test-only
// import cycle.
func NodeInstanceBytesForTest(x, y, radius, r, g, b, a float32) []byte {
	inst := nodeInst{x: x, y: y, radius: radius, r: r, g: g, b: b, a: a}
	return bytesOf(&inst, 28)
}
