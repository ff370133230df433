package regio

import (
	"github.com/sarchlab/clocktree/bitfield"
)

// A Space wraps an Accessor with field-level operations and access hooks.
// Every read and write that flows through the space invokes the registered
// hooks, which makes register traffic observable without touching the
// accessor itself.
type Space struct {
	HookableBase

	acc Accessor
}

// NewSpace creates a Space over the given accessor.
func NewSpace(acc Accessor) *Space {
	if acc == nil {
		panic("regio: nil accessor")
	}

	return &Space{acc: acc}
}

// Read32 reads the full register at offset.
func (s *Space) Read32(offset uint32) (uint32, error) {
	val, err := s.acc.Read32(offset)
	if err != nil {
		return 0, &AccessError{Op: "read", Offset: offset, Err: err}
	}

	if s.NumHooks() > 0 {
		s.InvokeHook(HookCtx{
			Domain: s,
			Pos:    HookPosRead,
			Offset: offset,
			Value:  val,
		})
	}

	return val, nil
}

// Write32 writes the full register at offset.
func (s *Space) Write32(offset, value uint32) error {
	if err := s.acc.Write32(offset, value); err != nil {
		return &AccessError{Op: "write", Offset: offset, Err: err}
	}

	if s.NumHooks() > 0 {
		s.InvokeHook(HookCtx{
			Domain: s,
			Pos:    HookPosWrite,
			Offset: offset,
			Value:  value,
		})
	}

	return nil
}

// ReadField reads the register at offset and extracts the given field.
func (s *Space) ReadField(offset uint32, f bitfield.Field) (uint32, error) {
	val, err := s.Read32(offset)
	if err != nil {
		return 0, err
	}

	return f.Extract(val), nil
}

// Modify performs a read-modify-write on one field: the bits under the
// field are cleared and fieldVal is placed in their position, leaving the
// rest of the register untouched. One read and one write reach the
// hardware per call.
func (s *Space) Modify(offset uint32, f bitfield.Field, fieldVal uint32) error {
	val, err := s.Read32(offset)
	if err != nil {
		return err
	}

	return s.Write32(offset, f.Insert(val, fieldVal))
}
