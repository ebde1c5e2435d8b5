package mem

import "errors"

var (
	// ErrUninitialized indicates an allocator operation ran before Init
	// populated the free list.
	ErrUninitialized = errors.New("mem: allocator is not initialized")

	// ErrInvalidAlign indicates an alignment that is zero or not a power
	// of two.
	ErrInvalidAlign = errors.New("mem: invalid alignment")

	// ErrNotSatisfiable indicates no free region can satisfy the
	// requested size and alignment.
	ErrNotSatisfiable = errors.New("mem: could not find a suitable memory region")

	// ErrNullPtr indicates a dealloc of the null address.
	ErrNullPtr = errors.New("mem: address is null")

	// ErrZeroSize indicates a zero-size dealloc or region.
	ErrZeroSize = errors.New("mem: size is zero")

	// ErrIntegerOverflow indicates address arithmetic that would wrap.
	ErrIntegerOverflow = errors.New("mem: integer overflow")
)
