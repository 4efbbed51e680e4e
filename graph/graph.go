// Package graph owns the decoded graph topology: nodes, edges, the
// external-id to internal-index map, and the compressed adjacency used
// for neighbor iteration. A Graph is produced once by protocol.Decode
// and replaced atomically on the next successful load; nothing outside
// the layout engine mutates node positions or velocities.
package graph

// Graph is the exclusive owner of node and edge storage for one loaded
// payload. Iteration order over Nodes and Edges matches wire order.
type Graph struct {
	Nodes []Node
	Edges []Edge

	index map[uint32]int32 // external id -> internal index

	// CSR-style adjacency: neighbors of node i are
	// adjNeighbors[adjOffsets[i]:adjOffsets[i+1]].
	adjOffsets   []int32
	adjNeighbors []int32
}

// New builds a Graph from already-validated, already-remapped nodes and
// edges plus the id->index map. It is the sole constructor used by
// protocol.Decode; callers outside protocol should not need it.
func New(nodes []Node, edges []Edge, index map[uint32]int32) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges, index: index}
	g.buildAdjacency()
	return g
}

// Empty returns a zero-node, zero-edge graph, used as the initial state
// before any load_graph call and as the Boundary-case "empty graph" in
// spec.md §8.
func Empty() *Graph {
	return New(nil, nil, map[uint32]int32{})
}

func (g *Graph) NodeCount() int { return len(g.Nodes) }
func (g *Graph) EdgeCount() int { return len(g.Edges) }

func (g *Graph) Node(i int) *Node { return &g.Nodes[i] }
func (g *Graph) Edge(j int) *Edge { return &g.Edges[j] }

// IndexOf returns the internal index of the node with external id id,
// and whether it was found.
func (g *Graph) IndexOf(id uint32) (int32, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Neighbors returns the internal indices adjacent to node i, including
// each self-loop edge's own index exactly once. The returned slice is a
// view into the graph's compressed adjacency array and must not be
// retained past the next load_graph.
func (g *Graph) Neighbors(i int) []int32 {
	return g.adjNeighbors[g.adjOffsets[i]:g.adjOffsets[i+1]]
}

// buildAdjacency flattens the edge list into a CSR-style (offsets +
// neighbors) layout in two passes: count degree per node, then scatter.
// Grounded on the teacher's internal/parallel/tile_grid.go bucket-count
// + scatter technique, adapted from spatial tiles to node neighbor
// lists.
func (g *Graph) buildAdjacency() {
	n := len(g.Nodes)
	g.adjOffsets = make([]int32, n+1)

	for _, e := range g.Edges {
		g.adjOffsets[e.Source+1]++
		if e.Target != e.Source {
			g.adjOffsets[e.Target+1]++
		}
	}
	for i := 0; i < n; i++ {
		g.adjOffsets[i+1] += g.adjOffsets[i]
	}

	total := g.adjOffsets[n]
	g.adjNeighbors = make([]int32, total)
	cursor := make([]int32, n)
	copy(cursor, g.adjOffsets[:n])

	for _, e := range g.Edges {
		g.adjNeighbors[cursor[e.Source]] = e.Target
		cursor[e.Source]++
		if e.Target != e.Source {
			g.adjNeighbors[cursor[e.Target]] = e.Source
			cursor[e.Target]++
		}
	}
}
