package layout

import "github.com/klauspost/cpuid/v2"

// HasSIMD128 reports whether the running CPU exposes the 128-bit SIMD
// feature the layout engine's vectorized kernel targets. Computed once
// at engine construction, per spec.md §4.4's tier table ("SIMD feature
// present") rather than re-probed every frame.
//
// Grounded on sanonone-kektordb's pkg/core/distance/distance_go.go,
// which gates an optimized kernel behind cpuid.CPU.Has(...) checked
// once at init() time.
func HasSIMD128() bool {
	if cpuid.CPU.Has(cpuid.SSE2) {
		return true
	}
	return cpuid.CPU.Has(cpuid.ASIMD)
}
