package mem

import (
	"fmt"
	"os"

	"github.com/memkit/memkit/rangeset"
	"github.com/memkit/memkit/ticketlock"
)

// NullAddr is the sentinel "no address" value. Zero-size allocations
// return it without touching the free list, and deallocating it is an
// error.
const NullAddr uint64 = 0

// Runtime debug flag for allocation logging - controlled by the
// MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// Region is a bootstrap (base, size) tuple, the form in which the
// devicetree and firmware collaborators report memory geometry.
type Region struct {
	Base uint64
	Size uint64
}

// Range converts the region to the inclusive interval [Base, Base+Size-1].
func (r Region) Range() (rangeset.Range, error) {
	if r.Size == 0 {
		return rangeset.Range{}, fmt.Errorf("%w: region at %#x", ErrZeroSize, r.Base)
	}
	end, ok := checkedAdd(r.Base, r.Size-1)
	if !ok {
		return rangeset.Range{}, fmt.Errorf("%w: region %#x+%#x", ErrIntegerOverflow, r.Base, r.Size)
	}
	return rangeset.NewRange(r.Base, end)
}

// freeState is the lock-protected allocator state: the free list plus the
// init-once flag.
type freeState struct {
	free  rangeset.Set
	ready bool
}

// Allocator is a physical memory allocator over a single lock-protected
// free-region set. The zero value is an uninitialized allocator; Init must
// run before any other operation succeeds.
//
// All state lives behind the ticket lock. The Allocator itself carries no
// other mutable data, so every method is safe to call from any core.
type Allocator struct {
	mu ticketlock.Mutex[freeState]
}

// NewAllocator returns an uninitialized Allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Init builds the free list from the bootstrap memory map: every usable
// region is inserted, then every reserved region is removed. It is
// idempotent; once initialized, later calls return nil immediately.
//
// Any error aborts initialization and leaves the allocator unusable, so a
// partially built free list can never be observed.
func (a *Allocator) Init(usable, reserved []Region) error {
	g := a.mu.Lock()
	defer g.Unlock()

	st := g.Value()
	if st.ready {
		return nil
	}

	var free rangeset.Set
	for _, reg := range usable {
		r, err := reg.Range()
		if err != nil {
			return fmt.Errorf("usable region: %w", err)
		}
		if err := free.Insert(r); err != nil {
			return fmt.Errorf("insert usable region %v: %w", r, err)
		}
	}
	for _, reg := range reserved {
		r, err := reg.Range()
		if err != nil {
			return fmt.Errorf("reserved region: %w", err)
		}
		if err := free.Remove(r); err != nil {
			return fmt.Errorf("remove reserved region %v: %w", r, err)
		}
	}

	st.free = free
	st.ready = true

	return nil
}

// TryAlloc allocates a region of the given size and alignment and returns
// its start address. A zero size returns NullAddr without touching the
// lock. The alignment must be a nonzero power of two.
//
// The search is first-fit over the free list in ascending address order.
// All address arithmetic is overflow-checked.
func (a *Allocator) TryAlloc(size, align uint64) (uint64, error) {
	if size == 0 {
		return NullAddr, nil
	}
	if !isPowerOfTwo(align) {
		return NullAddr, ErrInvalidAlign
	}

	allocSize, err := allocationSize(size, align)
	if err != nil {
		return NullAddr, err
	}

	g := a.mu.Lock()
	defer g.Unlock()

	st := g.Value()
	if !st.ready {
		return NullAddr, ErrUninitialized
	}

	var (
		reserved rangeset.Range
		found    bool
	)
	for _, region := range st.free.Ranges() {
		start, err := alignUp(region.Start(), align)
		if err != nil {
			return NullAddr, err
		}
		end, ok := checkedAdd(start, allocSize-1)
		if !ok {
			return NullAddr, ErrIntegerOverflow
		}
		if end <= region.End() {
			if reserved, err = rangeset.NewRange(start, end); err != nil {
				return NullAddr, err
			}
			found = true
			break
		}
	}
	if !found {
		return NullAddr, ErrNotSatisfiable
	}

	if err := st.free.Remove(reserved); err != nil {
		return NullAddr, err
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "mem: alloc size=%d align=%d -> %v\n", size, align, reserved)
	}

	return reserved.Start(), nil
}

// TryDealloc returns the region at addr to the free list. The size and
// alignment must be the ones passed to the matching TryAlloc; the
// allocation size is recomputed from them so the freed interval is exactly
// the one that was removed.
func (a *Allocator) TryDealloc(addr, size, align uint64) error {
	if addr == NullAddr {
		return ErrNullPtr
	}
	if size == 0 {
		return ErrZeroSize
	}
	if !isPowerOfTwo(align) {
		return ErrInvalidAlign
	}

	allocSize, err := allocationSize(size, align)
	if err != nil {
		return err
	}

	g := a.mu.Lock()
	defer g.Unlock()

	st := g.Value()
	if !st.ready {
		return ErrUninitialized
	}

	end, ok := checkedAdd(addr, allocSize-1)
	if !ok {
		return ErrIntegerOverflow
	}
	freed, err := rangeset.NewRange(addr, end)
	if err != nil {
		return err
	}

	if err := st.free.Insert(freed); err != nil {
		return err
	}

	if logAlloc {
		fmt.Fprintf(os.Stderr, "mem: dealloc %v\n", freed)
	}

	return nil
}

// FreeMemorySize returns the total number of free bytes.
func (a *Allocator) FreeMemorySize() (uint64, error) {
	g := a.mu.Lock()
	defer g.Unlock()

	st := g.Value()
	if !st.ready {
		return 0, ErrUninitialized
	}
	return st.free.Size(), nil
}

// FreeRanges returns a snapshot of the free list in ascending address
// order. The returned slice is a copy and stays valid after the lock is
// released.
func (a *Allocator) FreeRanges() ([]rangeset.Range, error) {
	g := a.mu.Lock()
	defer g.Unlock()

	st := g.Value()
	if !st.ready {
		return nil, ErrUninitialized
	}
	return append([]rangeset.Range(nil), st.free.Ranges()...), nil
}
