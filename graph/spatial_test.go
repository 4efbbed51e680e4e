package graph

import (
	"math/rand"
	"testing"
)

func TestSpatialIndexExactHit(t *testing.T) {
	n := 100
	nodes := make([]Node, n)
	rng := rand.New(rand.NewSource(1))
	for i := range nodes {
		nodes[i] = Node{ID: uint32(i + 1), X: float32(rng.Intn(1000)), Y: float32(rng.Intn(1000))}
	}
	g := New(nodes, nil, indexFor(nodes))

	idx := NewSpatialIndex(g)
	for i, nd := range g.Nodes {
		got, ok := idx.NearestWithin(nd.X, nd.Y, 0)
		if !ok {
			t.Fatalf("node %d: exact-position query with radius 0 found nothing", i)
		}
		if got != i {
			// Multiple nodes may coincide; just verify the returned
			// node is itself at the query point.
			other := g.Node(got)
			if other.X != nd.X || other.Y != nd.Y {
				t.Fatalf("node %d: NearestWithin returned %d at a different position", i, got)
			}
		}
	}
}

func TestSpatialIndexNoneWithinRadius(t *testing.T) {
	nodes := []Node{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 1000, Y: 1000}}
	g := New(nodes, nil, indexFor(nodes))
	idx := NewSpatialIndex(g)

	if _, ok := idx.NearestWithin(500, 500, 1); ok {
		t.Fatal("expected no node within radius 1 of (500,500)")
	}
}

func TestSpatialIndexTieBreakLowestIndex(t *testing.T) {
	nodes := []Node{{ID: 1, X: 10, Y: 0}, {ID: 2, X: -10, Y: 0}}
	g := New(nodes, nil, indexFor(nodes))
	idx := NewSpatialIndex(g)

	got, ok := idx.NearestWithin(0, 0, 100)
	if !ok {
		t.Fatal("expected a hit")
	}
	if got != 0 {
		t.Fatalf("got index %d, want 0 (equidistant, lowest index wins)", got)
	}
}

func TestSpatialIndexCoincidentNodes(t *testing.T) {
	nodes := []Node{{ID: 1, X: 5, Y: 5}, {ID: 2, X: 5, Y: 5}}
	g := New(nodes, nil, indexFor(nodes))
	idx := NewSpatialIndex(g)

	got, ok := idx.NearestWithin(5, 5, 0)
	if !ok || got != 0 {
		t.Fatalf("got %d, %v, want 0, true", got, ok)
	}
}

func TestSpatialIndexEmptyGraph(t *testing.T) {
	g := Empty()
	idx := NewSpatialIndex(g)
	if _, ok := idx.NearestWithin(0, 0, 10); ok {
		t.Fatal("empty graph should never return a hit")
	}
}

func indexFor(nodes []Node) map[uint32]int32 {
	m := make(map[uint32]int32, len(nodes))
	for i, n := range nodes {
		m[n.ID] = int32(i)
	}
	return m
}
