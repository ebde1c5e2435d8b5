package mem

// sizeClasses is the bucket ladder applied to allocation sizes. A request
// of at most 512 bytes is rounded up to the nearest class; larger requests
// bypass the ladder. The values are empirical and load-bearing for the
// dealloc contract: both sides of an alloc/dealloc pair must compute the
// same allocation size, so the ladder must never change between them.
var sizeClasses = [...]uint64{32, 64, 128, 256, 512}

// SizeClasses returns a copy of the bucket ladder, for diagnostics.
func SizeClasses() []uint64 {
	return append([]uint64(nil), sizeClasses[:]...)
}

// allocationSize returns the number of bytes actually reserved for a
// request: the matching size class for small sizes, otherwise the size
// padded up to a multiple of align. It is a deterministic function of the
// request, so Dealloc recomputes the exact interval Alloc removed.
func allocationSize(size, align uint64) (uint64, error) {
	for _, class := range sizeClasses {
		if size <= class {
			return class, nil
		}
	}

	rem := size % align
	if rem == 0 {
		return size, nil
	}
	padded, ok := checkedAdd(size, align-rem)
	if !ok {
		return 0, ErrIntegerOverflow
	}
	return padded, nil
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// checkedAdd returns x+y and whether the sum did not wrap.
func checkedAdd(x, y uint64) (uint64, bool) {
	sum := x + y
	return sum, sum >= x
}

// alignUp returns the first multiple of align that is >= addr. align must
// be a power of two.
func alignUp(addr, align uint64) (uint64, error) {
	sum, ok := checkedAdd(addr, align-1)
	if !ok {
		return 0, ErrIntegerOverflow
	}
	return sum &^ (align - 1), nil
}
