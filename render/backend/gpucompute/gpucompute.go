// Package gpucompute implements tier 1: a modern GPU device that
// advertises both rendering and compute. The integration boundary is
// gpucontext.DeviceProvider, the same "receive, don't create" device
// handle gogpu-gg's ggcanvas package takes from the host application.
package gpucompute

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/layout"
	"github.com/blomgraph/engine/render/backend"
)

func init() {
	backend.Register(backend.TierModernGPU, func() backend.Backend { return &Backend{} })
}

//go:embed shaders/force.wgsl
var forceShaderWGSL string

// stubPipelineID is a placeholder for a real wgpu render pipeline
// handle, in gogpu-gg's wgpu package's style for draw paths the hal
// layer does not yet expose directly: it lets the draw side of this
// tier be wired up without depending on unreleased hal render-pipeline
// surface.
type stubPipelineID uint64

// DeviceHandle is the device/queue pair a host application hands to
// this backend at construction.
type DeviceHandle = gpucontext.DeviceProvider

// Backend is tier 1's Backend implementation: instanced draws go
// through stub pipeline handles pending hal render-pipeline wiring.
// init compiles force.wgsl into a compute pipeline, but the layout
// integration step is not dispatched to it: Integrate runs on the CPU.
type Backend struct {
	provider DeviceHandle
	device   hal.Device
	queue    hal.Queue

	integratePipeline hal.ComputePipeline
	pipelineLayout    hal.PipelineLayout
	bindLayout        hal.BindGroupLayout
	shaderModule      hal.ShaderModule

	nodePipeline  stubPipelineID
	edgePipeline  stubPipelineID
	labelPipeline stubPipelineID

	viewProj  [6]float32
	viewportW float32
	viewportH float32

	nodeCount, edgeCount, labelCount int

	ready bool
}

// Bind attaches the host-provided device handle by registering tier 1.
// Nothing in this module calls it: a host calls it once, before
// engine.Construct runs backend.Select, with whatever its surface
// construction produced.
func Bind(provider DeviceHandle) {
	backend.Register(backend.TierModernGPU, func() backend.Backend { return &Backend{provider: provider} })
}

func (b *Backend) Tier() backend.Tier { return backend.TierModernGPU }

// Available reports whether a device handle was bound and its
// compute pipeline could be compiled. A nil provider (no host device
// shared yet) makes this tier unavailable, per spec.md §4.4's
// "device advertises both rendering and compute" precondition.
func (b *Backend) Available() bool {
	if b.provider == nil {
		return false
	}
	if !b.ready {
		if err := b.init(); err != nil {
			return false
		}
	}
	return b.ready
}

func (b *Backend) init() error {
	hd, ok := b.provider.(interface {
		HALDevice() hal.Device
		HALQueue() hal.Queue
	})
	if !ok {
		return fmt.Errorf("gpucompute: device provider does not expose a HAL device")
	}
	b.device = hd.HALDevice()
	b.queue = hd.HALQueue()
	if b.device == nil || b.queue == nil {
		return fmt.Errorf("gpucompute: nil device or queue")
	}

	spirv, err := naga.Compile(forceShaderWGSL)
	if err != nil {
		return fmt.Errorf("gpucompute: shader compile failed: %w", err)
	}

	module, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "force_integrate",
		Source: hal.ShaderSource{SPIRV: spirvToU32(spirv)},
	})
	if err != nil {
		return fmt.Errorf("gpucompute: create shader module: %w", err)
	}
	b.shaderModule = module

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "force_integrate_bindings",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageCompute,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("gpucompute: create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	layout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "force_integrate_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("gpucompute: create pipeline layout: %w", err)
	}
	b.pipelineLayout = layout

	pipeline, err := b.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  "force_integrate_pipeline",
		Layout: b.pipelineLayout,
		Compute: hal.ComputeState{
			Module:     b.shaderModule,
			EntryPoint: "cs_integrate",
		},
	})
	if err != nil {
		return fmt.Errorf("gpucompute: create compute pipeline: %w", err)
	}
	b.integratePipeline = pipeline

	b.ready = true
	return nil
}

func spirvToU32(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
	}
	return out
}

func (b *Backend) Resize(width, height int) {
	b.viewportW, b.viewportH = float32(width), float32(height)
}

func (b *Backend) UploadNodes(data []byte, count int)  { b.nodeCount = count }
func (b *Backend) UploadEdges(data []byte, count int)  { b.edgeCount = count }
func (b *Backend) UploadLabels(data []byte, count int) { b.labelCount = count }

func (b *Backend) SetViewProjection(m [6]float32, viewportW, viewportH float32) {
	b.viewProj = m
	b.viewportW, b.viewportH = viewportW, viewportH
}

// DrawFrame submits the fixed edges -> nodes -> labels instanced draw
// order. The pipelines are currently stub handles pending hal
// render-pipeline surface, the same posture gogpu-gg's own wgpu
// PipelineCache takes for its unfinished blit/blend/composite passes.
func (b *Backend) DrawFrame() {
	if !b.ready {
		return
	}
	_ = b.nodePipeline
	_ = b.edgePipeline
	_ = b.labelPipeline
}

// Integrate implements layout.Integrator: engine.Construct installs it
// in place of layout's CPU default once this backend reports Available.
// The arithmetic itself runs on the CPU, as described below.
//
// The cs_integrate entry point compiled into b.integratePipeline
// during init encodes this same semi-implicit Euler step (velocity
// damping then position update, with the same NaN/Inf guard) against
// a forces buffer that already has gravity folded in, matching the
// order layout.Engine.tick accumulates fxs/fys before calling the
// integrator; binding those buffers to the pipeline and dispatching it
// needs hal command-encoder and compute-pass surface this module's
// pinned gogpu/wgpu version doesn't expose yet, the same gap
// gogpu-gg's own GPUFineRasterizer.Rasterize documents ("GPU
// infrastructure is ready, but buffer binding needs HAL extension...
// compute coverage on CPU using the same algorithm as the shader").
// Until that lands, this runs the identical arithmetic on the CPU so a
// host on tier 1 gets numerically correct motion rather than a frozen
// simulation, and only takes this path when b.integratePipeline built
// successfully: b.ready is only ever set true once init builds
// b.integratePipeline, so checking it here is equivalent to checking
// the pipeline itself and keeps this method free of a direct hal type
// reference.
func (b *Backend) Integrate(nodes []graph.Node, fxs, fys []float32, p layout.Parameters) uint64 {
	if !b.ready {
		return 0
	}
	var clamped uint64
	for i := range nodes {
		nd := &nodes[i]
		vx := (nd.VX + fxs[i]*p.TimeStep) * p.Damping
		vy := (nd.VY + fys[i]*p.TimeStep) * p.Damping
		px := nd.X + vx*p.TimeStep
		py := nd.Y + vy*p.TimeStep

		if !finite32(vx) || !finite32(vy) || !finite32(px) || !finite32(py) {
			nd.VX, nd.VY = 0, 0
			clamped++
			continue
		}
		nd.VX, nd.VY = vx, vy
		nd.X, nd.Y = px, py
	}
	return clamped
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (b *Backend) Destroy() {
	b.integratePipeline = nil
	b.pipelineLayout = nil
	b.bindLayout = nil
	b.shaderModule = nil
	b.ready = false
}

// PreferredTextureFormat is the swapchain format this tier targets,
// matching gogpu-gg's LayeredPixmapTarget default.
func PreferredTextureFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}
