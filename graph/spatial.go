package graph

import "math"

// SpatialIndex answers point-proximity queries against the current node
// positions. It is rebuilt lazily — not every frame — when positions
// have drifted enough to make the cached tree unreliable, per spec.md
// §4.2.
type SpatialIndex struct {
	g *Graph

	root *spatialNode

	lastPositions []spatialPos // positions as of the last rebuild
	meanRadius    float32
}

type spatialPos struct {
	x, y float32
}

// NewSpatialIndex creates an index bound to g. The caller must call
// Rebuild at least once (or NearestWithin, which rebuilds lazily) before
// querying against real data.
func NewSpatialIndex(g *Graph) *SpatialIndex {
	return &SpatialIndex{g: g}
}

// NearestWithin returns the internal index of the node closest to
// (x, y) within radius, or -1 if none qualifies. Ties are broken by
// lowest internal index. Triggers a lazy rebuild first if needed.
func (s *SpatialIndex) NearestWithin(x, y, radius float32) (int, bool) {
	s.rebuildIfStale()
	if s.root == nil {
		return -1, false
	}

	best := -1
	bestDist := radius
	s.root.visit(func(n *spatialNode) bool {
		// Prune subtrees whose bounds cannot contain a point within
		// bestDist of (x, y).
		return n.bounds.distanceTo(x, y) <= bestDist
	}, func(idx int32) {
		p := s.lastPositions[idx]
		d := float32(math.Hypot(float64(p.x-x), float64(p.y-y)))
		if d > bestDist {
			return
		}
		if best == -1 || d < bestDist || int(idx) < best {
			bestDist = d
			best = int(idx)
		}
	})
	if best == -1 {
		return -1, false
	}
	return best, true
}

// NeedsRebuild reports whether the cached tree is stale: either it has
// never been built, or at least 10% of nodes have moved farther than
// one mean node radius since the last rebuild (spec.md §4.2).
func (s *SpatialIndex) NeedsRebuild() bool {
	if s.root == nil {
		return s.g.NodeCount() > 0
	}
	if len(s.lastPositions) != s.g.NodeCount() {
		return true
	}
	if s.g.NodeCount() == 0 {
		return false
	}

	threshold := s.meanRadius
	if threshold <= 0 {
		threshold = 1
	}

	moved := 0
	for i, n := range s.g.Nodes {
		prev := s.lastPositions[i]
		d := float32(math.Hypot(float64(n.X-prev.x), float64(n.Y-prev.y)))
		if d > threshold {
			moved++
		}
	}
	return float64(moved) >= 0.10*float64(s.g.NodeCount())
}

// Rebuild reconstructs the tree from the current node positions
// unconditionally. Cost is O(n log n).
func (s *SpatialIndex) Rebuild() {
	n := s.g.NodeCount()
	s.lastPositions = make([]spatialPos, n)
	for i, nd := range s.g.Nodes {
		s.lastPositions[i] = spatialPos{nd.X, nd.Y}
	}
	s.meanRadius = estimateMeanRadius(n)

	if n == 0 {
		s.root = nil
		return
	}

	bounds := boundingBoxOf(s.g.Nodes)
	indices := make([]int32, n)
	for i := range indices {
		indices[i] = int32(i)
	}
	s.root = buildSpatialNode(bounds, indices, s.lastPositions, 0)
}

func (s *SpatialIndex) rebuildIfStale() {
	if s.NeedsRebuild() {
		s.Rebuild()
	}
}

// estimateMeanRadius approximates a node's on-screen radius from node
// count alone: 4 for a single node, otherwise 200/sqrt(n), never below
// 1. It is a fixed heuristic and does not depend on the placement
// layout.Reset uses.
func estimateMeanRadius(n int) float32 {
	if n <= 0 {
		return 1
	}
	r := float32(4.0)
	if n > 1 {
		r = float32(200.0 / math.Sqrt(float64(n)))
	}
	if r < 1 {
		r = 1
	}
	return r
}

// spatialBounds is an axis-aligned bounding box.
type spatialBounds struct {
	minX, minY, maxX, maxY float32
}

func (b spatialBounds) distanceTo(x, y float32) float32 {
	dx := float32(0)
	if x < b.minX {
		dx = b.minX - x
	} else if x > b.maxX {
		dx = x - b.maxX
	}
	dy := float32(0)
	if y < b.minY {
		dy = b.minY - y
	} else if y > b.maxY {
		dy = y - b.maxY
	}
	return float32(math.Hypot(float64(dx), float64(dy)))
}

func boundingBoxOf(nodes []Node) spatialBounds {
	b := spatialBounds{
		minX: nodes[0].X, maxX: nodes[0].X,
		minY: nodes[0].Y, maxY: nodes[0].Y,
	}
	for _, n := range nodes[1:] {
		if n.X < b.minX {
			b.minX = n.X
		}
		if n.X > b.maxX {
			b.maxX = n.X
		}
		if n.Y < b.minY {
			b.minY = n.Y
		}
		if n.Y > b.maxY {
			b.maxY = n.Y
		}
	}
	const eps = 1e-3
	b.minX -= eps
	b.minY -= eps
	b.maxX += eps
	b.maxY += eps
	return b
}

const spatialLeafCapacity = 8

// spatialNode is a strict quadtree node used only by SpatialIndex; it
// has no relation to the Barnes-Hut tree built fresh every layout tick
// (layout.quadNode), per spec.md §5: the two trees have distinct
// invariants and are never shared.
type spatialNode struct {
	bounds   spatialBounds
	children [4]*spatialNode // nil if this is a leaf
	leaf     []int32          // node indices, only set on leaves
}

func buildSpatialNode(bounds spatialBounds, indices []int32, pos []spatialPos, depth int) *spatialNode {
	node := &spatialNode{bounds: bounds}
	if len(indices) <= spatialLeafCapacity || depth > 32 {
		node.leaf = indices
		return node
	}

	midX := (bounds.minX + bounds.maxX) / 2
	midY := (bounds.minY + bounds.maxY) / 2
	var buckets [4][]int32
	for _, idx := range indices {
		p := pos[idx]
		q := quadrant(p.x, p.y, midX, midY)
		buckets[q] = append(buckets[q], idx)
	}

	empty := true
	for q, b := range buckets {
		if len(b) == 0 {
			continue
		}
		if len(b) == len(indices) {
			// All points fell in the same quadrant: further recursion
			// would not shrink the set (e.g. exactly coincident
			// points). Stop here and keep it as a leaf.
			node.leaf = indices
			return node
		}
		empty = false
		node.children[q] = buildSpatialNode(quadrantBounds(bounds, midX, midY, q), b, pos, depth+1)
	}
	if empty {
		node.leaf = indices
	}
	return node
}

func quadrant(x, y, midX, midY float32) int {
	switch {
	case x < midX && y < midY:
		return 0
	case x >= midX && y < midY:
		return 1
	case x < midX && y >= midY:
		return 2
	default:
		return 3
	}
}

func quadrantBounds(b spatialBounds, midX, midY float32, q int) spatialBounds {
	switch q {
	case 0:
		return spatialBounds{b.minX, b.minY, midX, midY}
	case 1:
		return spatialBounds{midX, b.minY, b.maxX, midY}
	case 2:
		return spatialBounds{b.minX, midY, midX, b.maxY}
	default:
		return spatialBounds{midX, midY, b.maxX, b.maxY}
	}
}

// visit walks the tree depth-first, pruning subtrees for which prune
// returns false, and calling onLeaf for every index in every
// unpruned leaf.
func (n *spatialNode) visit(prune func(*spatialNode) bool, onLeaf func(int32)) {
	if n == nil || !prune(n) {
		return
	}
	if n.leaf != nil {
		for _, idx := range n.leaf {
			onLeaf(idx)
		}
		return
	}
	for _, c := range n.children {
		c.visit(prune, onLeaf)
	}
}
