// Package mem implements a physical memory allocator over a lock-protected
// free-region set.
//
// # Overview
//
// The allocator tracks free physical memory as a rangeset.Set guarded by a
// ticket lock, giving up to several cores exclusive, FIFO-ordered access
// with no scheduler to arbitrate. Allocation is first-fit: the free list is
// scanned in ascending address order and the first region that satisfies
// the size and alignment is carved out with Set.Remove. Deallocation puts
// the interval back with Set.Insert, which merges it with any newly
// adjacent free neighbors.
//
// # Lifecycle
//
// The process-wide allocator starts uninitialized. Init consumes the
// bootstrap memory map exactly once:
//
//	usable, reserved, err := boot.DiscoverMemoryMap(client, blob, image)
//	if err != nil { ... }
//	if err := mem.Init(usable, reserved); err != nil { ... }
//
// Init is idempotent; once the free list holds a value later calls return
// immediately. The allocator is never torn down.
//
// # Size Classes
//
// Requested sizes up to 512 bytes are rounded to a fixed bucket ladder:
//
//	32, 64, 128, 256, 512
//
// Larger sizes are used as-is after padding to the requested alignment.
// Bucketing funnels many same-shaped small allocations onto identical
// freed-interval sizes, so a Dealloc restores exactly the interval its
// Alloc removed instead of leaving slightly-different-sized gaps behind.
//
// # Failure Model
//
// TryAlloc and TryDealloc report contract violations and exhaustion as
// errors. The package-level Alloc and Dealloc hooks have no failure
// channel, matching the dynamic-memory hook contract: any error reaching
// them is fatal and panics with the error in the message. There is no
// retry path; in this environment a corrupted or exhausted physical free
// list has no recovery strategy.
package mem
