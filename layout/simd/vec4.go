// Package simd provides a 4-lane struct-of-arrays float32 vector type
// for the layout engine's per-edge attraction and per-node gravity
// loops; Barnes-Hut repulsion does not use it. It is narrowed
// from the teacher's internal/wide.F32x8 (8 lanes, for gradients and
// image filters) to 4 lanes, matching the spec's 128-bit SIMD width,
// and relies on the same technique: fixed-size arrays shaped so the Go
// compiler's auto-vectorizer can lower the element-wise loops to SIMD
// instructions without resorting to assembly.
package simd

import "math"

// Vec4f holds four float32 lanes, used to process four edges or nodes
// at a time in the attraction and gravity kernels.
type Vec4f [4]float32

// Splat returns a Vec4f with all four lanes set to n.
func Splat(n float32) Vec4f {
	return Vec4f{n, n, n, n}
}

// Add performs element-wise addition.
func (v Vec4f) Add(o Vec4f) Vec4f {
	return Vec4f{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub performs element-wise subtraction.
func (v Vec4f) Sub(o Vec4f) Vec4f {
	return Vec4f{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Mul performs element-wise multiplication.
func (v Vec4f) Mul(o Vec4f) Vec4f {
	return Vec4f{v[0] * o[0], v[1] * o[1], v[2] * o[2], v[3] * o[3]}
}

// Div performs element-wise division.
func (v Vec4f) Div(o Vec4f) Vec4f {
	return Vec4f{v[0] / o[0], v[1] / o[1], v[2] / o[2], v[3] / o[3]}
}

// Max returns the element-wise maximum of v and o.
func (v Vec4f) Max(o Vec4f) Vec4f {
	var r Vec4f
	for i := range v {
		if v[i] > o[i] {
			r[i] = v[i]
		} else {
			r[i] = o[i]
		}
	}
	return r
}

// Sqrt computes the square root of each lane.
func (v Vec4f) Sqrt() Vec4f {
	var r Vec4f
	for i := range v {
		r[i] = float32(math.Sqrt(float64(v[i])))
	}
	return r
}

// Clamp clamps each lane to [lo, hi].
func (v Vec4f) Clamp(lo, hi float32) Vec4f {
	var r Vec4f
	for i := range v {
		switch {
		case v[i] < lo:
			r[i] = lo
		case v[i] > hi:
			r[i] = hi
		default:
			r[i] = v[i]
		}
	}
	return r
}

// Sum returns the horizontal sum of all four lanes.
func (v Vec4f) Sum() float32 {
	return v[0] + v[1] + v[2] + v[3]
}
