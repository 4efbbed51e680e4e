// Package backend defines the tiered GPU/CPU draw-and-compute
// abstraction selected once at engine construction (spec.md §4.4).
// Concrete tiers live in the soft2d, legacy, and gpucompute
// subpackages and register themselves from init().
package backend

import "sync"

// Tier identifies one of the four capability tiers, 1 highest.
type Tier int

const (
	TierModernGPU    Tier = 1
	TierLegacySIMD   Tier = 2
	TierLegacyScalar Tier = 3
	TierSoftware     Tier = 4
)

func (t Tier) String() string {
	switch t {
	case TierModernGPU:
		return "modern-gpu"
	case TierLegacySIMD:
		return "legacy-simd"
	case TierLegacyScalar:
		return "legacy-scalar"
	case TierSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// Backend is one capability tier's draw-and-compute implementation.
// A Backend is constructed once and reused for the engine's lifetime;
// its buffers are resized in place, never reallocated per frame.
type Backend interface {
	// Tier reports which capability tier this backend implements.
	Tier() Tier

	// Available reports whether this backend's preconditions hold in
	// the current environment (device/feature probing). Called once
	// during tier selection.
	Available() bool

	// Resize notifies the backend of a viewport size change in
	// pixels.
	Resize(width, height int)

	// UploadNodes stages the node instance buffer for the next draw,
	// growing backing storage to the next power of two if needed.
	UploadNodes(data []byte, count int)

	// UploadEdges stages the edge instance buffer.
	UploadEdges(data []byte, count int)

	// UploadLabels stages the label instance buffer.
	UploadLabels(data []byte, count int)

	// SetViewProjection writes the camera's view-projection uniform
	// ahead of the draw passes.
	SetViewProjection(m [6]float32, viewportW, viewportH float32)

	// DrawFrame submits the fixed edges -> nodes -> labels draw order
	// and presents the frame.
	DrawFrame()

	// Destroy releases backend resources in reverse creation order.
	Destroy()
}

// Factory constructs a new Backend instance.
type Factory func() Backend

var (
	mu       sync.RWMutex
	backends = make(map[Tier]Factory)
	priority = []Tier{TierModernGPU, TierLegacySIMD, TierLegacyScalar, TierSoftware}
)

// Register records factory as the implementation of tier. Called from
// the init() function of each tier's package.
func Register(tier Tier, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	backends[tier] = factory
}

// Unregister removes tier's registration. Exposed for tests that need
// to simulate an environment missing a given tier.
func Unregister(tier Tier) {
	mu.Lock()
	defer mu.Unlock()
	delete(backends, tier)
}

// Select runs first-fit tier selection: the highest-priority
// registered tier whose Available() reports true wins. The chosen
// backend is immutable for the caller's lifetime (spec.md §4.4).
func Select() (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	for _, tier := range priority {
		factory, ok := backends[tier]
		if !ok {
			continue
		}
		b := factory()
		if b != nil && b.Available() {
			return b, nil
		}
	}
	return nil, ErrNoBackend
}
