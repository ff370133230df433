package clock

import (
	"fmt"
	"log"
)

// A MuxEntry pairs one selector value with the clock it selects.
type MuxEntry struct {
	Selector uint32
	Clock    ID
}

// A MuxMap is one multiplexer domain: the mapping from selector field
// values to parent clock ids. Domains do not share value meanings, so the
// same number can select different clocks in different domains. A value
// absent from the map is an error, never a default.
type MuxMap struct {
	name    string
	entries []MuxEntry
}

// NewMuxMap creates a named multiplexer domain.
func NewMuxMap(name string, entries ...MuxEntry) *MuxMap {
	if name == "" {
		log.Panic("mux map must be named")
	}

	seen := make(map[uint32]bool, len(entries))
	for _, e := range entries {
		if seen[e.Selector] {
			log.Panicf("mux %s: duplicate selector %d", name, e.Selector)
		}
		seen[e.Selector] = true
	}

	return &MuxMap{name: name, entries: entries}
}

// Name returns the domain name.
func (m *MuxMap) Name() string {
	return m.name
}

// Resolve maps a selector field value to the clock id it selects.
func (m *MuxMap) Resolve(selector uint32) (ID, error) {
	for _, e := range m.entries {
		if e.Selector == selector {
			return e.Clock, nil
		}
	}

	return 0, fmt.Errorf("%w: value %d in domain %s",
		ErrUnmappedSelector, selector, m.name)
}

// SelectorOf returns the selector value that picks the given clock.
func (m *MuxMap) SelectorOf(id ID) (uint32, bool) {
	for _, e := range m.entries {
		if e.Clock == id {
			return e.Selector, true
		}
	}

	return 0, false
}
