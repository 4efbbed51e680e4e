package layout

import "fmt"

// Parameters holds the layout engine's tunable constants, defaults
// matching spec.md §4.3.
type Parameters struct {
	Repulsion     float32 // k_r
	Attraction    float32 // k_a
	Gravity       float32 // k_g
	Damping       float32
	Theta         float32 // Barnes-Hut opening angle
	TimeStep      float32 // Δt
	DistanceFloor float32 // d_min
}

// DefaultParameters returns the spec's documented defaults.
func DefaultParameters() Parameters {
	return Parameters{
		Repulsion:     2000,
		Attraction:    0.02,
		Gravity:       0.001,
		Damping:       0.9,
		Theta:         0.7,
		TimeStep:      1,
		DistanceFloor: 1,
	}
}

// knownParameterKeys is exactly the accepted option set from spec.md
// §4.3: {repulsion, attraction, gravity, damping, theta, time_step,
// distance_floor}. Anything else is rejected.
var knownParameterKeys = map[string]func(*Parameters, float64){
	"repulsion":      func(p *Parameters, v float64) { p.Repulsion = float32(v) },
	"attraction":     func(p *Parameters, v float64) { p.Attraction = float32(v) },
	"gravity":        func(p *Parameters, v float64) { p.Gravity = float32(v) },
	"damping":        func(p *Parameters, v float64) { p.Damping = float32(v) },
	"theta":          func(p *Parameters, v float64) { p.Theta = float32(v) },
	"time_step":      func(p *Parameters, v float64) { p.TimeStep = float32(v) },
	"distance_floor": func(p *Parameters, v float64) { p.DistanceFloor = float32(v) },
}

// ErrUnknownParameter is returned by Engine.SetParameters for any key
// outside the accepted option set.
type ErrUnknownParameter struct {
	Key string
}

func (e *ErrUnknownParameter) Error() string {
	return fmt.Sprintf("layout: unknown parameter %q", e.Key)
}

// applyUpdates applies cfg onto p, rejecting the whole update (leaving
// p unmodified) if any key is unrecognized.
func applyUpdates(p Parameters, cfg map[string]float64) (Parameters, error) {
	for key := range cfg {
		if _, ok := knownParameterKeys[key]; !ok {
			return p, &ErrUnknownParameter{Key: key}
		}
	}
	for key, v := range cfg {
		knownParameterKeys[key](&p, v)
	}
	return p, nil
}
