package engine

import (
	"errors"
	"fmt"
)

// ErrNoSurface is returned by Construct when given a nil surface
// handle (spec.md §7's NoSurface initialization error).
var ErrNoSurface = errors.New("engine: no surface provided")

// ErrNoBackend is returned by Construct when tier selection fails
// (spec.md §7's NoBackend initialization error). It is a separate
// sentinel: it does not wrap backend.ErrNoBackend.
var ErrNoBackend = errors.New("engine: no backend tier available")

// UnknownIDError is returned by FocusNode when the given external id
// has no corresponding node in the current graph.
type UnknownIDError struct {
	ID uint32
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("engine: unknown node id %d", e.ID)
}
