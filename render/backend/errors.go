package backend

import "errors"

// ErrNoBackend is returned by Select when no registered tier reports
// itself available, corresponding to the NoBackend construction error
// in spec.md §7.
var ErrNoBackend = errors.New("backend: no available tier")
