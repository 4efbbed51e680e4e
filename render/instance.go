package render

import "unsafe"

// NodeInstance is the per-instance attribute block for one node draw,
// tightly packed and little-endian as required for the zero-copy byte
// cast to the GPU buffer (spec.md §4.4). Field order is fixed: moving
// a field changes the wire layout the vertex shader expects.
type NodeInstance struct {
	X, Y       float32
	Radius     float32
	R, G, B, A float32
}

// EdgeInstance is the per-instance attribute block for one edge draw.
type EdgeInstance struct {
	AX, AY     float32
	BX, BY     float32
	R, G, B, A float32
	Thickness  float32
}

// LabelInstance is the per-instance attribute block for one glyph
// draw. Labels emit one instance per glyph; a multi-character label
// becomes several adjacent instances laid out on the CPU.
type LabelInstance struct {
	X, Y       float32
	U, V, W, H float32
	ScreenSize float32
	R, G, B, A float32
}

const (
	nodeInstanceSize  = 28
	edgeInstanceSize  = 36
	labelInstanceSize = 44
)

func init() {
	if unsafe.Sizeof(NodeInstance{}) != nodeInstanceSize {
		panic("render: NodeInstance size drifted from the documented wire layout")
	}
	if unsafe.Sizeof(EdgeInstance{}) != edgeInstanceSize {
		panic("render: EdgeInstance size drifted from the documented wire layout")
	}
	if unsafe.Sizeof(LabelInstance{}) != labelInstanceSize {
		panic("render: LabelInstance size drifted from the documented wire layout")
	}
}

// NodeInstanceBytes reinterprets s as a byte slice suitable for a GPU
// buffer upload, without copying.
func NodeInstanceBytes(s []NodeInstance) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*nodeInstanceSize)
}

// EdgeInstanceBytes reinterprets s as a byte slice for GPU upload.
func EdgeInstanceBytes(s []EdgeInstance) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*edgeInstanceSize)
}

// LabelInstanceBytes reinterprets s as a byte slice for GPU upload.
func LabelInstanceBytes(s []LabelInstance) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*labelInstanceSize)
}

// InstanceBuffer tracks a CPU-side staging slice whose capacity grows
// to the next power of two on demand, mirroring the GPU buffer it
// backs so the two never need resizing on different schedules
// (spec.md §4.4 per-frame protocol, step 3).
type InstanceBuffer[T any] struct {
	data []T
	cap  int
}

// Reset sets the buffer's length to n, growing backing capacity to
// the next power of two ≥ n if needed. The returned slice has
// length n and should be filled in place by the caller.
func (b *InstanceBuffer[T]) Reset(n int) []T {
	if n > b.cap {
		next := nextPowerOfTwo(n)
		grown := make([]T, next)
		b.data = grown
		b.cap = next
	}
	b.data = b.data[:n]
	return b.data
}

// Len reports the number of instances currently staged.
func (b *InstanceBuffer[T]) Len() int { return len(b.data) }

// Cap reports the backing capacity, i.e. the GPU-side buffer size.
func (b *InstanceBuffer[T]) Cap() int { return b.cap }

// Slice returns the currently staged instances.
func (b *InstanceBuffer[T]) Slice() []T { return b.data }

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
