package clock

import "errors"

// Errors reported by registries and trees. Register I/O failures are not
// listed here; they surface as *regio.AccessError wrapping the accessor's
// own error.
var (
	// ErrInvalidID marks an id at or beyond the platform's namespace bound.
	ErrInvalidID = errors.New("clock id outside namespace")

	// ErrNotFound marks an id with no descriptor in the registry. It is
	// distinct from ErrInvalidID: the id itself is within the namespace.
	ErrNotFound = errors.New("no clock descriptor")

	// ErrUnmappedSelector marks a selector field value with no meaning in
	// the multiplexer domain it was read from.
	ErrUnmappedSelector = errors.New("unmapped selector")

	// ErrNotSupported marks a valid id for which the requested rate
	// operation is not defined.
	ErrNotSupported = errors.New("operation not supported")

	// ErrBadRate marks a zero target rate, or hardware divider fields that
	// decode to a zero divisor.
	ErrBadRate = errors.New("bad rate")

	// ErrTreeTooDeep marks a parent chain that exceeded the resolution
	// depth bound, which only happens when the table or the selector
	// registers form a cycle.
	ErrTreeTooDeep = errors.New("clock tree too deep")
)
