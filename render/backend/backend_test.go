package backend

import "testing"

type stubBackend struct {
	tier      Tier
	available bool
}

func (s *stubBackend) Tier() Tier                                        { return s.tier }
func (s *stubBackend) Available() bool                                   { return s.available }
func (s *stubBackend) Resize(int, int)                                   {}
func (s *stubBackend) UploadNodes([]byte, int)                           {}
func (s *stubBackend) UploadEdges([]byte, int)                           {}
func (s *stubBackend) UploadLabels([]byte, int)                          {}
func (s *stubBackend) SetViewProjection(m [6]float32, w, h float32) {}
func (s *stubBackend) DrawFrame()                                        {}
func (s *stubBackend) Destroy()                                          {}

func resetRegistry() {
	for _, t := range priority {
		Unregister(t)
	}
}

func TestSelectPicksHighestPriorityAvailable(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(TierModernGPU, func() Backend { return &stubBackend{tier: TierModernGPU, available: false} })
	Register(TierLegacySIMD, func() Backend { return &stubBackend{tier: TierLegacySIMD, available: true} })
	Register(TierSoftware, func() Backend { return &stubBackend{tier: TierSoftware, available: true} })

	b, err := Select()
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if b.Tier() != TierLegacySIMD {
		t.Errorf("Select() tier = %v, want %v", b.Tier(), TierLegacySIMD)
	}
}

func TestSelectReturnsErrNoBackendWhenNoneAvailable(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	Register(TierSoftware, func() Backend { return &stubBackend{tier: TierSoftware, available: false} })

	if _, err := Select(); err != ErrNoBackend {
		t.Errorf("Select() error = %v, want ErrNoBackend", err)
	}
}

func TestSelectReturnsErrNoBackendWhenRegistryEmpty(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	if _, err := Select(); err != ErrNoBackend {
		t.Errorf("Select() error = %v, want ErrNoBackend", err)
	}
}

func TestTierString(t *testing.T) {
	cases := map[Tier]string{
		TierModernGPU:    "modern-gpu",
		TierLegacySIMD:   "legacy-simd",
		TierLegacyScalar: "legacy-scalar",
		TierSoftware:     "software",
		Tier(99):         "unknown",
	}
	for tier, want := range cases {
		if got := tier.String(); got != want {
			t.Errorf("Tier(%d).String() = %q, want %q", tier, got, want)
		}
	}
}
