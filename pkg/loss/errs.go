package loss

import "errors"

var (
	// ErrConfig indicates an engine that is not ready for the requested call:
	// no device attached, or a sweep requested before a range/list was set.
	ErrConfig = errors.New("loss: configuration error")

	// ErrDomain indicates a non-physical operating point, e.g. V <= 0 in the
	// output-charge term.
	ErrDomain = errors.New("loss: input out of domain")
)
