package render

import "github.com/blomgraph/engine/graph"

// HighlightColor is the fixed color applied to a highlighted node,
// overriding its degree/community color (spec.md §4.4's node color
// function f(highlight, degree or community)).
var HighlightColor = [4]float32{1, 0.82, 0.2, 1}

// paletteSize is the number of distinct hues the degree/community
// bucket palette cycles through.
const paletteSize = 12

// NodeColor computes a node's fill color: highlighted nodes always
// win; otherwise a node with a community id (§4.1's optional
// HasCommunity section) is colored by community, falling back to a
// degree bucket when community data is absent, per the community
// coloring decision recorded in DESIGN.md.
func NodeColor(n *graph.Node, hasCommunity bool) (r, g, b, a float32) {
	if n.Highlight {
		return HighlightColor[0], HighlightColor[1], HighlightColor[2], HighlightColor[3]
	}
	var bucket uint32
	if hasCommunity {
		bucket = uint32(n.Community)
	} else {
		bucket = degreeBucket(n.Degree)
	}
	return palette(bucket)
}

// degreeBucket maps a node's degree to one of a handful of buckets,
// log-scaled so hub nodes are visually distinct from leaves without
// every unique degree needing its own hue.
func degreeBucket(degree uint16) uint32 {
	switch {
	case degree == 0:
		return 0
	case degree <= 2:
		return 1
	case degree <= 4:
		return 2
	case degree <= 8:
		return 3
	case degree <= 16:
		return 4
	default:
		return 5
	}
}

// palette returns a deterministic color for bucket, evenly spaced
// around the hue wheel at fixed saturation/value.
func palette(bucket uint32) (r, g, b, a float32) {
	hue := float32(bucket%paletteSize) / paletteSize
	return hsvToRGB(hue, 0.55, 0.9)
}

func hsvToRGB(h, s, v float32) (r, g, b, a float32) {
	i := int(h * 6)
	f := h*6 - float32(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return r, g, b, 1
}
