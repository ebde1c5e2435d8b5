// Package arena backs a simulated physical memory window with host
// memory, so allocator addresses can be dereferenced in demos and tests.
package arena

import "fmt"

// Arena is a contiguous window of host memory standing in for the
// physical address range [Base, Base+Size).
type Arena struct {
	base  uint64
	data  []byte
	unmap func() error
}

// New maps an anonymous region of the given size and places it at base
// in the simulated physical address space.
func New(base uint64, size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("arena: invalid size %d", size)
	}
	data, unmap, err := mapAnon(size)
	if err != nil {
		return nil, fmt.Errorf("arena: map %d bytes: %w", size, err)
	}
	return &Arena{base: base, data: data, unmap: unmap}, nil
}

// Base returns the simulated physical address of the window's first byte.
func (a *Arena) Base() uint64 { return a.base }

// Size returns the window size in bytes.
func (a *Arena) Size() uint64 { return uint64(len(a.data)) }

// Region returns the window as a (base, size) pair.
func (a *Arena) Region() (base, size uint64) { return a.base, uint64(len(a.data)) }

// Slice returns the backing bytes of the simulated physical region
// [addr, addr+size). It fails when the region does not fit the window.
func (a *Arena) Slice(addr, size uint64) ([]byte, error) {
	if addr < a.base || size > uint64(len(a.data)) || addr-a.base > uint64(len(a.data))-size {
		return nil, fmt.Errorf("arena: [%#x, %#x+%#x) outside window [%#x, %#x)",
			addr, addr, size, a.base, a.base+uint64(len(a.data)))
	}
	off := addr - a.base
	return a.data[off : off+size : off+size], nil
}

// Close releases the mapping. Closing twice is a no-op.
func (a *Arena) Close() error {
	if a.unmap == nil {
		return nil
	}
	unmap := a.unmap
	a.unmap = nil
	a.data = nil
	return unmap()
}
