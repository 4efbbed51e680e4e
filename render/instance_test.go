package render

import "testing"

func TestInstanceSizes(t *testing.T) {
	cases := []struct {
		name string
		got  int
		want int
	}{
		{"NodeInstance", len(NodeInstanceBytes([]NodeInstance{{}})), 28},
		{"EdgeInstance", len(EdgeInstanceBytes([]EdgeInstance{{}})), 36},
		{"LabelInstance", len(LabelInstanceBytes([]LabelInstance{{}})), 44},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: byte length = %d, want %d", c.name, c.got, c.want)
		}
	}
}

func TestInstanceBytesEmptyIsNil(t *testing.T) {
	if b := NodeInstanceBytes(nil); b != nil {
		t.Errorf("NodeInstanceBytes(nil) = %v, want nil", b)
	}
}

func TestInstanceBufferGrowsToPowerOfTwo(t *testing.T) {
	var b InstanceBuffer[NodeInstance]

	s := b.Reset(3)
	if len(s) != 3 {
		t.Fatalf("Reset(3) len = %d, want 3", len(s))
	}
	if b.Cap() != 4 {
		t.Fatalf("Cap() = %d, want 4", b.Cap())
	}

	s = b.Reset(4)
	if b.Cap() != 4 {
		t.Fatalf("Cap() after Reset(4) = %d, want unchanged 4", b.Cap())
	}
	_ = s

	s = b.Reset(5)
	if b.Cap() != 8 {
		t.Fatalf("Cap() after Reset(5) = %d, want 8", b.Cap())
	}
	if len(s) != 5 {
		t.Fatalf("Reset(5) len = %d, want 5", len(s))
	}
}

func TestInstanceBufferShrinkKeepsCapacity(t *testing.T) {
	var b InstanceBuffer[NodeInstance]
	b.Reset(10)
	cap1 := b.Cap()

	b.Reset(1)
	if b.Cap() != cap1 {
		t.Errorf("Cap() shrank from %d to %d, capacity should only grow", cap1, b.Cap())
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 1024: 1024, 1025: 2048}
	for n, want := range cases {
		if got := nextPowerOfTwo(n); got != want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", n, got, want)
		}
	}
}
