package clock

import (
	"fmt"
	"math/bits"

	"github.com/sarchlab/clocktree/regio"
)

// A Tree answers rate queries and programs rates over one clock registry
// and one register space. All calls are synchronous and bounded; the tree
// holds no state of its own beyond the registry (read-only) and the
// hardware registers behind the space.
type Tree struct {
	registry *Registry
	regs     *regio.Space
	maxDepth int
}

// A TreeBuilder builds trees.
type TreeBuilder struct {
	registry *Registry
	space    *regio.Space
	maxDepth int
}

// MakeTreeBuilder creates a TreeBuilder with default parameters.
func MakeTreeBuilder() TreeBuilder {
	return TreeBuilder{}
}

// WithRegistry sets the clock table to resolve against.
func (b TreeBuilder) WithRegistry(r *Registry) TreeBuilder {
	b.registry = r
	return b
}

// WithSpace sets the register space the tree reads and writes.
func (b TreeBuilder) WithSpace(s *regio.Space) TreeBuilder {
	b.space = s
	return b
}

// WithMaxDepth overrides the parent-chain depth bound. The default bound
// is the table length, which any acyclic chain satisfies.
func (b TreeBuilder) WithMaxDepth(d int) TreeBuilder {
	b.maxDepth = d
	return b
}

// Build builds the tree.
func (b TreeBuilder) Build() *Tree {
	if b.registry == nil {
		panic("tree requires a registry")
	}
	if b.space == nil {
		panic("tree requires a register space")
	}

	maxDepth := b.maxDepth
	if maxDepth <= 0 {
		maxDepth = b.registry.Len()
	}

	return &Tree{
		registry: b.registry,
		regs:     b.space,
		maxDepth: maxDepth,
	}
}

// Request validates that id lies within the platform's clock namespace.
// It does not check that rate operations are defined for the id.
func (t *Tree) Request(id ID) error {
	if uint32(id) >= t.registry.Count() {
		return fmt.Errorf("%w: id %d, namespace holds %d",
			ErrInvalidID, id, t.registry.Count())
	}

	return nil
}

// GetRate computes the output frequency of the clock in Hz by walking the
// parent chain up to the reference oscillator and folding each divider or
// PLL stage back down. A valid id with no descriptor yields
// ErrNotSupported; errors from deeper in the chain propagate unchanged,
// never as a partial result.
func (t *Tree) GetRate(id ID) (uint64, error) {
	if err := t.Request(id); err != nil {
		return 0, err
	}

	if _, err := t.registry.Lookup(id); err != nil {
		return 0, fmt.Errorf("%w: no rate operation for id %d",
			ErrNotSupported, id)
	}

	return t.rate(id, 0)
}

func (t *Tree) rate(id ID, depth int) (uint64, error) {
	if depth > t.maxDepth {
		return 0, fmt.Errorf("%w: resolving id %d after %d hops",
			ErrTreeTooDeep, id, depth)
	}

	desc, err := t.registry.Lookup(id)
	if err != nil {
		return 0, err
	}

	switch desc.Kind {
	case KindReference:
		return desc.Rate, nil
	case KindPLL:
		return t.pllRate(desc, depth)
	case KindDivider:
		return t.dividerRate(desc, depth)
	case KindPassthrough:
		return t.inputRate(desc, depth)
	default:
		return 0, fmt.Errorf("%w: clock %s carries no rate",
			ErrNotSupported, desc.Name)
	}
}

// inputRate resolves the clock's parent and returns the parent's rate.
func (t *Tree) inputRate(desc Descriptor, depth int) (uint64, error) {
	parent := desc.Parent

	if !desc.Flags.Has(FixedSource) {
		sel, err := t.regs.ReadField(desc.SelReg, desc.SelField)
		if err != nil {
			return 0, err
		}

		parent, err = desc.Mux.Resolve(sel)
		if err != nil {
			return 0, fmt.Errorf("clock %s: %w", desc.Name, err)
		}
	}

	return t.rate(parent, depth+1)
}

// pllRate applies Fout = Fin * FBDV / (INDV * OTDV1 * OTDV2), halved again
// when the PLL carries a post divide-by-2 stage. The numerator is computed
// in 64 bits; a multi-hundred-MHz Fin times a 12-bit feedback divider
// stays well inside that.
func (t *Tree) pllRate(desc Descriptor, depth int) (uint64, error) {
	fin, err := t.inputRate(desc, depth)
	if err != nil {
		return 0, err
	}

	val, err := t.regs.Read32(desc.DivReg)
	if err != nil {
		return 0, err
	}

	indv := uint64(desc.PLL.InDiv.Extract(val))
	fbdv := uint64(desc.PLL.FBDiv.Extract(val))
	otdv1 := uint64(desc.PLL.OutDiv1.Extract(val))
	otdv2 := uint64(desc.PLL.OutDiv2.Extract(val))

	div := indv * otdv1 * otdv2
	if div == 0 {
		return 0, fmt.Errorf("%w: clock %s pll divider field is zero",
			ErrBadRate, desc.Name)
	}

	out := fin * fbdv / div
	if desc.Flags.Has(PostHalve) {
		out /= 2
	}

	return out, nil
}

// dividerRate decodes the divider field and divides the input rate,
// truncating.
func (t *Tree) dividerRate(desc Descriptor, depth int) (uint64, error) {
	fin, err := t.inputRate(desc, depth)
	if err != nil {
		return 0, err
	}

	v, err := t.regs.ReadField(desc.DivReg, desc.DivField)
	if err != nil {
		return 0, err
	}

	var div uint64
	if desc.Flags.Has(DivAdd1) {
		div = uint64(v) + 1
	} else {
		div = uint64(1) << v
	}

	if desc.Flags.Has(PreHalve) {
		div *= 2
	}

	// A pow2 field of 64 or more shifts the divisor to zero.
	if div == 0 {
		return 0, fmt.Errorf("%w: clock %s divider field decodes to a zero divisor",
			ErrBadRate, desc.Name)
	}

	return fin / div, nil
}

// SetRate drives a settable clock as close to target Hz as the hardware
// allows and returns the rate actually achieved, which may differ from the
// target. The selector is written first, unconditionally; the divider is
// then computed from the parent rate with ceiling rounding and written
// back. There is no rollback if I/O fails between the two writes.
func (t *Tree) SetRate(id ID, target uint64) (uint64, error) {
	if err := t.Request(id); err != nil {
		return 0, err
	}

	desc, err := t.registry.Lookup(id)
	if err != nil {
		return 0, fmt.Errorf("%w: no rate operation for id %d",
			ErrNotSupported, id)
	}

	if !desc.Settable() {
		return 0, fmt.Errorf("%w: clock %s is not settable",
			ErrNotSupported, desc.Name)
	}

	if target == 0 {
		return 0, fmt.Errorf("%w: target is zero", ErrBadRate)
	}

	// Select source.
	err = t.regs.Modify(desc.SelReg, desc.SelField, uint32(desc.SelValue))
	if err != nil {
		return 0, err
	}

	// The parent is re-read through the selector just written.
	fin, err := t.inputRate(desc, 0)
	if err != nil {
		return 0, err
	}

	div := fin / target
	if fin%target != 0 {
		div++
	}
	if div == 0 {
		div = 1
	}

	// Pow2 encoding truncates via integer log: a non-power-of-two divisor
	// programs the power of two below it, so the hardware can end up
	// running above the reported rate.
	var v uint32
	if desc.Flags.Has(DivAdd1) {
		if div-1 > uint64(desc.DivField.Max()) {
			return 0, fmt.Errorf("%w: clock %s cannot divide by %d",
				ErrBadRate, desc.Name, div)
		}
		v = uint32(div - 1)
	} else {
		v = uint32(bits.Len64(div) - 1)
		if v > desc.DivField.Max() {
			return 0, fmt.Errorf("%w: clock %s cannot divide by %d",
				ErrBadRate, desc.Name, div)
		}
	}

	if err := t.regs.Modify(desc.DivReg, desc.DivField, v); err != nil {
		return 0, err
	}

	return fin / div, nil
}

// Registry exposes the table the tree resolves against.
func (t *Tree) Registry() *Registry {
	return t.registry
}
