package regio

// A MemStore is an in-memory register file. It backs tests and simulated
// runs where no hardware is present. Unwritten registers read as zero.
type MemStore struct {
	regs map[uint32]uint32
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{regs: make(map[uint32]uint32)}
}

// Read32 returns the stored value at offset, or zero if never written.
func (m *MemStore) Read32(offset uint32) (uint32, error) {
	return m.regs[offset], nil
}

// Write32 stores value at offset.
func (m *MemStore) Write32(offset, value uint32) error {
	m.regs[offset] = value
	return nil
}

// Offsets returns every offset that holds a value.
func (m *MemStore) Offsets() []uint32 {
	offsets := make([]uint32, 0, len(m.regs))
	for off := range m.regs {
		offsets = append(offsets, off)
	}

	return offsets
}
