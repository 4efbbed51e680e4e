package gpucompute

import (
	"math"
	"testing"

	"github.com/blomgraph/engine/graph"
	"github.com/blomgraph/engine/layout"
)

func TestAvailableFalseWithoutProvider(t *testing.T) {
	b := &Backend{}
	if b.Available() {
		t.Fatal("tier 1 must be unavailable without a bound device provider")
	}
}

func TestTierIsModernGPU(t *testing.T) {
	b := &Backend{}
	if b.Tier() != 1 {
		t.Errorf("Tier() = %v, want 1", b.Tier())
	}
}

func TestDrawFrameBeforeReadyIsNoop(t *testing.T) {
	b := &Backend{}
	b.DrawFrame() // must not panic
}

func TestIntegrateNoopWhenNotReady(t *testing.T) {
	b := &Backend{}
	nodes := []graph.Node{{X: 1, Y: 1}}
	fxs, fys := []float32{1}, []float32{1}
	clamped := b.Integrate(nodes, fxs, fys, layout.DefaultParameters())
	if clamped != 0 {
		t.Errorf("clamped = %d, want 0", clamped)
	}
	if nodes[0].X != 1 || nodes[0].Y != 1 {
		t.Error("Integrate moved a node despite the backend not being ready")
	}
}

func TestIntegrateAppliesEulerStepWhenReady(t *testing.T) {
	b := &Backend{ready: true}
	p := layout.DefaultParameters()

	nodes := []graph.Node{{X: 5, Y: -3, VX: 0.1, VY: 0.2}}
	fxs, fys := []float32{2}, []float32{-1}

	wantVX := (nodes[0].VX + fxs[0]*p.TimeStep) * p.Damping
	wantVY := (nodes[0].VY + fys[0]*p.TimeStep) * p.Damping
	wantX := nodes[0].X + wantVX*p.TimeStep
	wantY := nodes[0].Y + wantVY*p.TimeStep

	if clamped := b.Integrate(nodes, fxs, fys, p); clamped != 0 {
		t.Fatalf("clamped = %d, want 0", clamped)
	}
	if nodes[0].X != wantX || nodes[0].Y != wantY {
		t.Errorf("position = (%v,%v), want (%v,%v)", nodes[0].X, nodes[0].Y, wantX, wantY)
	}
	if nodes[0].VX != wantVX || nodes[0].VY != wantVY {
		t.Errorf("velocity = (%v,%v), want (%v,%v)", nodes[0].VX, nodes[0].VY, wantVX, wantVY)
	}
}

func TestIntegrateClampsNonFiniteResult(t *testing.T) {
	b := &Backend{ready: true}
	p := layout.DefaultParameters()

	nodes := []graph.Node{{X: 0, Y: 0}}
	fxs, fys := []float32{float32(math.Inf(1))}, []float32{0}

	if clamped := b.Integrate(nodes, fxs, fys, p); clamped != 1 {
		t.Errorf("clamped = %d, want 1", clamped)
	}
	if nodes[0].VX != 0 || nodes[0].VY != 0 {
		t.Error("non-finite integration step should zero velocity")
	}
}

func TestSpirvToU32(t *testing.T) {
	got := spirvToU32([]byte{1, 0, 0, 0, 0, 1, 0, 0})
	want := []uint32{1, 256}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("spirvToU32() = %v, want %v", got, want)
	}
}
