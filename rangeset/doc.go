// Package rangeset tracks sets of inclusive 64-bit address intervals.
//
// # Overview
//
// The package provides two types:
//
//   - Range: an immutable inclusive interval [start, end]
//   - Set: a sorted, non-overlapping, maximally merged collection of Ranges
//
// A Set is backed by a fixed-size array and never allocates. This is a hard
// requirement, not an optimization: the physical memory allocator built on
// top of it (package mem) is itself the thing that services allocations, so
// its bookkeeping structure cannot depend on a growable container.
//
// # Invariants
//
// After every mutating operation the following hold:
//
//  1. The populated slots are sorted ascending by start point.
//  2. No two populated ranges overlap or touch; any pair that would has
//     already been merged into one.
//  3. An operation that would need more than Capacity slots fails with
//     ErrFullSet and leaves the set unchanged for that call.
//
// Insert unions a range into the set, merging contiguous and overlapping
// neighbors. Remove subtracts a range, shrinking, splitting or deleting
// existing entries as needed. Adjacency checks use saturating arithmetic so
// ranges ending at the top of the address space behave correctly:
//
//	insert [max, max]; insert [10, max-1]  =>  [10, max]
//
// # Thread Safety
//
// A Set is not safe for concurrent use. Callers that share one between
// cores must wrap it in a lock; see package ticketlock.
package rangeset
