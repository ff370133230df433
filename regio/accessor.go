// Package regio performs 32-bit register access over an abstract backing
// store, with hookable read/write points and masked read-modify-write.
package regio

import "fmt"

// An Accessor reads and writes 32-bit registers at byte offsets from a
// device's base address. Implementations do not interpret failures; an
// error from either method indicates a permanent fault at the I/O boundary.
type Accessor interface {
	Read32(offset uint32) (uint32, error)
	Write32(offset, value uint32) error
}

// An AccessError wraps a failure from the Accessor boundary together with
// the operation and register offset that triggered it.
type AccessError struct {
	Op     string
	Offset uint32
	Err    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("register %s at 0x%02x: %v", e.Op, e.Offset, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}
