package clock

import (
	"fmt"
	"log"
)

// A Registry is the immutable table of clock descriptors for one chip
// revision. It is built once at start-up, validated eagerly, and never
// mutated; lookups are safe at any point afterwards.
type Registry struct {
	count uint32
	descs map[ID]Descriptor
	order []ID
}

// NewRegistry builds a registry over a namespace of count ids from the
// given table. The table is compile-time data, so structural mistakes are
// programmer errors and panic rather than return.
func NewRegistry(count uint32, table []Descriptor) *Registry {
	r := &Registry{
		count: count,
		descs: make(map[ID]Descriptor, len(table)),
	}

	for _, d := range table {
		descriptorMustBeValid(d, count)

		if _, dup := r.descs[d.ID]; dup {
			log.Panicf("clock table: duplicate id %d", d.ID)
		}

		r.descs[d.ID] = d
		r.order = append(r.order, d.ID)
	}

	return r
}

func descriptorMustBeValid(d Descriptor, count uint32) {
	if d.Name == "" {
		log.Panicf("clock table: id %d has no name", d.ID)
	}

	if uint32(d.ID) >= count {
		log.Panicf("clock %s: id %d outside namespace of %d", d.Name, d.ID, count)
	}

	if d.Flags.Has(DivAdd1) && d.Flags.Has(DivPow2) {
		log.Panicf("clock %s: both divider encodings set", d.Name)
	}

	if !d.Flags.Has(FixedSource) && d.Kind != KindReference {
		if !d.SelField.Valid() || d.Mux == nil {
			log.Panicf("clock %s: no fixed source and no selector", d.Name)
		}
	}

	switch d.Kind {
	case KindReference:
		if d.Rate == 0 {
			log.Panicf("clock %s: reference with zero rate", d.Name)
		}
	case KindPLL:
		if d.PLL == nil {
			log.Panicf("clock %s: pll without field layout", d.Name)
		}
	case KindDivider:
		if !d.DivField.Valid() {
			log.Panicf("clock %s: divider without divider field", d.Name)
		}
		if !d.Flags.Has(DivAdd1) && !d.Flags.Has(DivPow2) {
			log.Panicf("clock %s: divider without encoding flag", d.Name)
		}
	case KindPassthrough:
		// carries no fields of its own
	default:
		log.Panicf("clock %s: invalid kind", d.Name)
	}
}

// Count returns the size of the id namespace.
func (r *Registry) Count() uint32 {
	return r.count
}

// Len returns the number of descriptors in the table.
func (r *Registry) Len() int {
	return len(r.order)
}

// Lookup returns the descriptor for id, or ErrNotFound.
func (r *Registry) Lookup(id ID) (Descriptor, error) {
	d, ok := r.descs[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return d, nil
}

// All returns the descriptors in table order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descs[id])
	}

	return out
}
