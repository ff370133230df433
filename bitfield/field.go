// Package bitfield locates contiguous bit ranges within 32-bit registers.
package bitfield

import "log"

// A Field is a contiguous run of bits inside a 32-bit register, described
// by the inclusive bit positions of its upper and lower ends. The zero
// Field is invalid and stands for "no field".
type Field struct {
	mask  uint32
	shift uint
}

// New creates a field covering bits hi down to lo, inclusive.
func New(hi, lo uint) Field {
	if hi > 31 || lo > hi {
		log.Panicf("invalid bit range [%d:%d]", hi, lo)
	}

	width := hi - lo + 1
	var mask uint32
	if width == 32 {
		mask = ^uint32(0)
	} else {
		mask = (uint32(1)<<width - 1) << lo
	}

	return Field{mask: mask, shift: lo}
}

// Valid reports whether the field covers any bits.
func (f Field) Valid() bool {
	return f.mask != 0
}

// Mask returns the field's bits in register position.
func (f Field) Mask() uint32 {
	return f.mask
}

// Shift returns the position of the field's lowest bit.
func (f Field) Shift() uint {
	return f.shift
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint32 {
	return f.mask >> f.shift
}

// Extract returns the field's value from a full register value.
func (f Field) Extract(reg uint32) uint32 {
	return (reg & f.mask) >> f.shift
}

// Insert places val into the field within reg and returns the new register
// value. Bits of val beyond the field's width are discarded, matching what
// the hardware would latch.
func (f Field) Insert(reg, val uint32) uint32 {
	return (reg &^ f.mask) | ((val << f.shift) & f.mask)
}
