package render

import (
	"testing"

	"github.com/blomgraph/engine/graph"
)

func TestNodeColorHighlightOverridesDegree(t *testing.T) {
	n := &graph.Node{Degree: 50, Highlight: true}
	r, g, b, a := NodeColor(n, false)
	if [4]float32{r, g, b, a} != HighlightColor {
		t.Errorf("highlighted node color = %v, want %v", [4]float32{r, g, b, a}, HighlightColor)
	}
}

func TestNodeColorDegreeBucketsDiffer(t *testing.T) {
	low := &graph.Node{Degree: 1}
	high := &graph.Node{Degree: 100}

	lr, lg, lb, _ := NodeColor(low, false)
	hr, hg, hb, _ := NodeColor(high, false)
	if lr == hr && lg == hg && lb == hb {
		t.Error("low- and high-degree nodes should receive visually distinct colors")
	}
}

func TestNodeColorCommunityPreferredWhenPresent(t *testing.T) {
	a := &graph.Node{Degree: 5, Community: 1}
	b := &graph.Node{Degree: 5, Community: 2}

	ar, ag, ab, _ := NodeColor(a, true)
	br, bg, bb, _ := NodeColor(b, true)
	if ar == br && ag == bg && ab == bb {
		t.Error("distinct communities with the same degree should still differ in color")
	}
}

func TestDegreeBucketMonotonicTiers(t *testing.T) {
	if degreeBucket(0) >= degreeBucket(1) {
		t.Error("degree 0 should be a lower bucket than degree 1")
	}
	if degreeBucket(3) >= degreeBucket(20) {
		t.Error("low degree should be a lower bucket than high degree")
	}
}

func TestHSVToRGBAlphaAlwaysOpaque(t *testing.T) {
	_, _, _, a := hsvToRGB(0.33, 0.5, 0.8)
	if a != 1 {
		t.Errorf("alpha = %v, want 1", a)
	}
}
