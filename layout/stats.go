package layout

// Stats tracks observable counters for internal anomalies that the
// layout engine clamps silently rather than raising to the host
// (spec.md §7: "Internal anomalies ... not raised to the host; clamped
// silently and counted").
type Stats struct {
	// ClampedSteps counts node-ticks where a non-finite position or
	// velocity was clamped per spec.md §4.3 phase 4.
	ClampedSteps uint64

	// TicksRun counts total ticks run (each call to Step(n) advances
	// this by n).
	TicksRun uint64
}
