package mem

import (
	"fmt"

	"github.com/memkit/memkit/rangeset"
)

// global is the process-wide allocator instance behind the package-level
// hook functions. It follows the uninitialized -> Init -> ready lifecycle
// and is never torn down.
var global Allocator

// Init initializes the process-wide allocator from the bootstrap memory
// map. See Allocator.Init.
func Init(usable, reserved []Region) error {
	return global.Init(usable, reserved)
}

// TryAlloc allocates from the process-wide allocator.
func TryAlloc(size, align uint64) (uint64, error) {
	return global.TryAlloc(size, align)
}

// TryDealloc deallocates from the process-wide allocator.
func TryDealloc(addr, size, align uint64) error {
	return global.TryDealloc(addr, size, align)
}

// Alloc is the dynamic-memory hook over the process-wide allocator. The
// hook contract has no failure channel, so any internal error is fatal: it
// panics with the error kind in the message.
func Alloc(size, align uint64) uint64 {
	addr, err := global.TryAlloc(size, align)
	if err != nil {
		panic(fmt.Sprintf("mem: alloc error: size=%d align=%d: %v", size, align, err))
	}
	return addr
}

// Dealloc is the dynamic-memory release hook over the process-wide
// allocator. Like Alloc it panics on any internal error.
func Dealloc(addr, size, align uint64) {
	if err := global.TryDealloc(addr, size, align); err != nil {
		panic(fmt.Sprintf("mem: dealloc error: addr=%#x size=%d align=%d: %v", addr, size, align, err))
	}
}

// FreeMemorySize returns the free byte count of the process-wide
// allocator.
func FreeMemorySize() (uint64, error) {
	return global.FreeMemorySize()
}

// FreeRanges returns a snapshot of the process-wide free list.
func FreeRanges() ([]rangeset.Range, error) {
	return global.FreeRanges()
}
