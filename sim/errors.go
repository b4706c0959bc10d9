package sim

import "errors"

// Failure taxonomy of the kernel. Every error below is structural: either
// a configuration problem detected before any event is scheduled, or a
// programmer error in wiring (registry misuse, a medium with no attached
// endpoint, a negative delay). There is no retry policy anywhere in this
// core. Probabilistic frame loss on the medium is a normal outcome and
// never surfaces as an error.
var (
	// ErrConfiguration marks an out-of-range simulation parameter.
	ErrConfiguration = errors.New("invalid simulation configuration")

	// ErrDuplicateNode marks an attempt to register a node id twice.
	ErrDuplicateNode = errors.New("node id already registered")

	// ErrNodeNotFound marks a lookup of an unregistered node id.
	ErrNodeNotFound = errors.New("node id not registered")

	// ErrChannelUnavailable marks a transmission on a medium that has no
	// attached endpoint. The medium cannot exist without at least one.
	ErrChannelUnavailable = errors.New("medium has no attached endpoints")

	// ErrInvalidDelay marks a negative scheduling delay.
	ErrInvalidDelay = errors.New("negative scheduling delay")
)
