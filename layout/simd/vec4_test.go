package simd

import "testing"

func TestAddSubMul(t *testing.T) {
	a := Vec4f{1, 2, 3, 4}
	b := Vec4f{10, 20, 30, 40}

	got := a.Add(b)
	want := Vec4f{11, 22, 33, 44}
	if got != want {
		t.Fatalf("Add() = %v, want %v", got, want)
	}

	got = b.Sub(a)
	want = Vec4f{9, 18, 27, 36}
	if got != want {
		t.Fatalf("Sub() = %v, want %v", got, want)
	}

	got = a.Mul(Splat(2))
	want = Vec4f{2, 4, 6, 8}
	if got != want {
		t.Fatalf("Mul() = %v, want %v", got, want)
	}
}

func TestSqrt(t *testing.T) {
	v := Vec4f{4, 9, 16, 25}
	got := v.Sqrt()
	want := Vec4f{2, 3, 4, 5}
	if got != want {
		t.Fatalf("Sqrt() = %v, want %v", got, want)
	}
}

func TestClamp(t *testing.T) {
	v := Vec4f{-5, 0, 5, 100}
	got := v.Clamp(0, 10)
	want := Vec4f{0, 0, 5, 10}
	if got != want {
		t.Fatalf("Clamp() = %v, want %v", got, want)
	}
}

func TestSum(t *testing.T) {
	v := Vec4f{1, 2, 3, 4}
	if got := v.Sum(); got != 10 {
		t.Fatalf("Sum() = %v, want 10", got)
	}
}
