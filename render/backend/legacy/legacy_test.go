package legacy

import (
	"testing"
	"unsafe"

	"github.com/blomgraph/engine/render/backend"
	"github.com/blomgraph/engine/render/backend/soft2d"
)

func TestAvailableFalseWithoutProvider(t *testing.T) {
	b := &Backend{requireSIMD: false, raster: soft2d.New()}
	if b.Available() {
		t.Fatal("legacy backend must be unavailable without a bound device provider")
	}
}

func TestTierReflectsRequireSIMD(t *testing.T) {
	simd := &Backend{requireSIMD: true, raster: soft2d.New()}
	scalar := &Backend{requireSIMD: false, raster: soft2d.New()}

	if simd.Tier() != backend.TierLegacySIMD {
		t.Errorf("requireSIMD=true Tier() = %v, want legacy-simd", simd.Tier())
	}
	if scalar.Tier() != backend.TierLegacyScalar {
		t.Errorf("requireSIMD=false Tier() = %v, want legacy-scalar", scalar.Tier())
	}
}

type nodeInst struct {
	x, y, radius float32
	r, g, b, a   float32
}

func TestDrawFrameRasterizesUploadedNodes(t *testing.T) {
	b := &Backend{raster: soft2d.New()}
	b.Resize(20, 20)
	b.SetViewProjection([6]float32{1, 0, 10, 0, 1, 10}, 20, 20)

	inst := nodeInst{x: 0, y: 0, radius: 4, r: 1, g: 0, b: 0, a: 1}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&inst)), int(unsafe.Sizeof(inst)))

	b.UploadNodes(data, 1)
	b.DrawFrame()

	snap := b.Snapshot()
	if snap == nil {
		t.Fatal("Snapshot() = nil after DrawFrame")
	}
	px := snap.Data()
	center := (10*snap.Width() + 10) * 4
	if px[center+3] == 0 {
		t.Error("uploaded node instance produced no visible pixel at its center")
	}
}

func TestDrawFrameIsNoopWithoutUpload(t *testing.T) {
	b := &Backend{raster: soft2d.New()}
	b.Resize(8, 8)
	b.DrawFrame() // must not panic, and must not draw anything
	snap := b.Snapshot()
	for _, v := range snap.Data() {
		if v != 0 {
			t.Fatal("empty backend drew a non-transparent pixel")
		}
	}
}
