// Package clock models a SoC clock generation tree: a registry of clock
// descriptors, multiplexer maps that resolve selector values to parent
// clocks, and a tree that derives or programs the frequency of any clock
// from the reference oscillator down.
package clock

import "github.com/sarchlab/clocktree/bitfield"

// An ID names one clock within a platform-defined namespace. The namespace
// is dense; ids at or beyond the registry's Count are invalid.
type ID uint32

// Kind tells the tree how a clock derives its output from its input.
type Kind int

// The possible clock kinds.
const (
	KindInvalid Kind = iota

	// KindReference is the root oscillator. Its rate is a table constant,
	// independent of register contents.
	KindReference

	// KindPLL multiplies its input by FBDV/(INDV*OTDV1*OTDV2), the four
	// fields read from the clock's PLLCON register.
	KindPLL

	// KindDivider divides its input by a programmable divider field.
	KindDivider

	// KindPassthrough forwards its input rate unchanged.
	KindPassthrough
)

func (k Kind) String() string {
	switch k {
	case KindReference:
		return "reference"
	case KindPLL:
		return "pll"
	case KindDivider:
		return "divider"
	case KindPassthrough:
		return "passthrough"
	default:
		return "invalid"
	}
}

// Flags are independent boolean attributes of a descriptor.
type Flags uint32

const (
	// FixedSource means the parent is Parent directly, no mux lookup.
	FixedSource Flags = 1 << iota

	// DivAdd1 decodes a stored divider field v as divisor v+1.
	DivAdd1

	// DivPow2 decodes a stored divider field v as divisor 1<<v.
	DivPow2

	// PreHalve applies a fixed divide-by-2 ahead of the programmable
	// divider stage.
	PreHalve

	// PostHalve halves the PLL output.
	PostHalve
)

// Has reports whether all bits of q are set.
func (f Flags) Has(q Flags) bool {
	return f&q == q
}

// NoSelValue marks a descriptor whose selector is read but never
// programmed, so the clock cannot be rate-set.
const NoSelValue = -1

// PLLFields locates the four divider fields of a PLL control register.
type PLLFields struct {
	InDiv   bitfield.Field
	FBDiv   bitfield.Field
	OutDiv1 bitfield.Field
	OutDiv2 bitfield.Field
}

// A Descriptor is the immutable table entry for one clock.
type Descriptor struct {
	ID   ID
	Name string
	Kind Kind

	// Parent is the fixed parent id, meaningful when FixedSource is set.
	Parent ID

	// Rate is the fixed output rate in Hz, for KindReference only.
	Rate uint64

	// DivReg is the offset of the register holding the divider field, or
	// the PLLCON register for KindPLL.
	DivReg   uint32
	DivField bitfield.Field
	PLL      *PLLFields

	// SelReg/SelField locate the clock's mux selector bits. SelValue is
	// the pattern written to choose the intended parent when programming,
	// or NoSelValue if the selector is never programmed.
	SelReg   uint32
	SelField bitfield.Field
	SelValue int
	Mux      *MuxMap

	Flags Flags
}

// Settable reports whether the clock can be driven to a target rate: it
// must be a divider clock with both a programmable selector value and a
// divider field.
func (d Descriptor) Settable() bool {
	return d.Kind == KindDivider &&
		d.SelField.Valid() &&
		d.SelValue != NoSelValue &&
		d.DivField.Valid()
}
