package regio

import (
	"fmt"
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

const (
	memFile  = "/dev/mem"
	pageSize = 4096
)

// A DevMem is an Accessor over a physical register window mapped through
// /dev/mem. Since the mapping has to start at a page boundary, the base
// address is rounded down to the nearest page and the remainder is kept as
// an offset into the mapping.
type DevMem struct {
	mem  mmap.MMap
	skew uintptr
	size int
}

// OpenDevMem maps size bytes of physical address space starting at base.
// The caller owns the mapping and must Close it when done.
func OpenDevMem(base uint64, size int) (*DevMem, error) {
	f, err := os.OpenFile(memFile, os.O_RDWR|os.O_SYNC, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("couldn't open %s: %v", memFile, err)
	}

	pagemask := ^uintptr(pageSize - 1)
	mapAddr := uintptr(base) & pagemask
	skew := uintptr(base) - mapAddr

	mm, err := mmap.MapRegion(f, size+int(skew), mmap.RDWR, 0, int64(mapAddr))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("couldn't map region (%#x, %v): %v", base, size, err)
	}
	f.Close() // Ignore error

	return &DevMem{mem: mm, skew: skew, size: size}, nil
}

// Read32 performs an aligned 32-bit load from the mapped window.
func (d *DevMem) Read32(offset uint32) (uint32, error) {
	if err := d.check(offset); err != nil {
		return 0, err
	}

	return *(*uint32)(unsafe.Pointer(&d.mem[d.skew+uintptr(offset)])), nil
}

// Write32 performs an aligned 32-bit store to the mapped window.
func (d *DevMem) Write32(offset, value uint32) error {
	if err := d.check(offset); err != nil {
		return err
	}

	*(*uint32)(unsafe.Pointer(&d.mem[d.skew+uintptr(offset)])) = value

	return nil
}

// Close releases the mapping.
func (d *DevMem) Close() error {
	return d.mem.Unmap()
}

func (d *DevMem) check(offset uint32) error {
	if offset%4 != 0 {
		return fmt.Errorf("unaligned register offset 0x%02x", offset)
	}
	if int(offset)+4 > d.size {
		return fmt.Errorf("register offset 0x%02x outside %d-byte window",
			offset, d.size)
	}

	return nil
}
