// Package legacy implements tiers 2 and 3: a legacy (non-compute) GPU
// draw API, with the force-layout compute step staying on the CPU
// either via the 128-bit SIMD kernel (tier 2) or the scalar fallback
// (tier 3). Which of the two is active is purely a fact about the
// CPU, reported by layout.HasSIMD128 — this package only reports it,
// the actual integration step is layout.Engine's.
package legacy

import (
	"github.com/gogpu/gpucontext"

	"github.com/blomgraph/engine/layout"
	"github.com/blomgraph/engine/render/backend"
	"github.com/blomgraph/engine/render/backend/soft2d"
)

func init() {
	backend.Register(backend.TierLegacySIMD, func() backend.Backend {
		return &Backend{requireSIMD: true, raster: soft2d.New()}
	})
	backend.Register(backend.TierLegacyScalar, func() backend.Backend {
		return &Backend{requireSIMD: false, raster: soft2d.New()}
	})
}

// DeviceHandle is the device/queue pair a host application hands to
// this backend at construction.
type DeviceHandle = gpucontext.DeviceProvider

// Backend is the shared implementation behind tiers 2 and 3: both draw
// the same way, and differ only in whether requireSIMD gates
// Available() on the CPU's SIMD feature bit.
//
// A legacy GPU device's actual non-compute render-pipeline surface
// (hal.RenderPipeline, command encoders, draw calls) isn't exposed by
// this module's pinned gogpu/wgpu version any more than tier 1's
// compute dispatch is — see render/backend/gpucompute's Integrate for
// the same gap. Rather than upload instance bytes nowhere and present
// a blank frame every tick, each draw is composited by the same
// software rasterizer tier 4 already implements and tests, so a host
// selecting tier 2 or 3 gets a correct frame from real uploaded data
// instead of a silent no-op, until that hal surface lands.
type Backend struct {
	provider    DeviceHandle
	requireSIMD bool
	raster      *soft2d.Backend
}

// Bind attaches the host-provided device handle to both legacy
// tiers' factories.
func Bind(provider DeviceHandle) {
	backend.Register(backend.TierLegacySIMD, func() backend.Backend {
		return &Backend{provider: provider, requireSIMD: true, raster: soft2d.New()}
	})
	backend.Register(backend.TierLegacyScalar, func() backend.Backend {
		return &Backend{provider: provider, requireSIMD: false, raster: soft2d.New()}
	})
}

func (b *Backend) Tier() backend.Tier {
	if b.requireSIMD {
		return backend.TierLegacySIMD
	}
	return backend.TierLegacyScalar
}

// Available requires a bound device (a GPU, just not a compute-capable
// one) and, for tier 2 only, a SIMD-capable CPU.
func (b *Backend) Available() bool {
	if b.provider == nil {
		return false
	}
	if b.requireSIMD && !layout.HasSIMD128() {
		return false
	}
	return true
}

func (b *Backend) Resize(width, height int) { b.raster.Resize(width, height) }

func (b *Backend) UploadNodes(data []byte, count int)  { b.raster.UploadNodes(data, count) }
func (b *Backend) UploadEdges(data []byte, count int)  { b.raster.UploadEdges(data, count) }
func (b *Backend) UploadLabels(data []byte, count int) { b.raster.UploadLabels(data, count) }

func (b *Backend) SetViewProjection(m [6]float32, viewportW, viewportH float32) {
	b.raster.SetViewProjection(m, viewportW, viewportH)
}

func (b *Backend) DrawFrame() { b.raster.DrawFrame() }

func (b *Backend) Destroy() { b.raster.Destroy() }

// Snapshot exposes the composited frame for tests and any host that
// wants to inspect tier 2/3 output the same way it would tier 4's.
func (b *Backend) Snapshot() *soft2d.Pixmap { return b.raster.Snapshot() }
