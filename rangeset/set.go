package rangeset

import "math"

// Capacity is the number of slots in the fixed-size array backing a Set.
// The array never grows; an operation that needs more slots than this
// fails with ErrFullSet.
const Capacity = 256

// Set is a capacity-bounded collection of ranges kept sorted by start
// point, non-overlapping and maximally merged. The zero value is an empty
// set ready for use.
type Set struct {
	ranges [Capacity]Range
	inUse  int
}

// Ranges returns the populated ranges in ascending start order. The
// returned slice aliases the set's backing array and is only valid until
// the next mutating call.
func (s *Set) Ranges() []Range {
	return s.ranges[:s.inUse]
}

// Len returns the number of populated ranges.
func (s *Set) Len() int { return s.inUse }

// sortInsert places r into the backing array preserving start-point order.
// A range sharing a start point with an existing entry is folded into it
// by extending the entry's end point, so duplicated starts never consume
// an extra slot.
func (s *Set) sortInsert(r Range) error {
	idx := s.inUse
	for i := 0; i < s.inUse; i++ {
		if r.start == s.ranges[i].start {
			s.ranges[i].end = max(r.end, s.ranges[i].end)
			return nil
		}
		if r.start < s.ranges[i].start {
			idx = i
			break
		}
	}

	if s.inUse >= len(s.ranges) {
		return ErrFullSet
	}

	// Shift the tail one slot right to open a hole at idx.
	copy(s.ranges[idx+1:s.inUse+1], s.ranges[idx:s.inUse])
	s.ranges[idx] = r
	s.inUse++

	return nil
}

// merge collapses contiguous and overlapping neighbors in the backing
// array. It assumes the array is sorted with no duplicated start points,
// which sortInsert guarantees.
func (s *Set) merge() {
	i := 0
	for i < s.inUse-1 {
		// Saturating arithmetic keeps a range ending at the top of the
		// address space comparable against its neighbor:
		//
		//	max] [max  =>  max > max == false  =>  merge
		if s.ranges[i+1].start > saturatingAdd(s.ranges[i].end, 1) {
			i++
			continue
		}

		// end+1 covers both the contiguous case and the case where the
		// second range extends past the first; when both share an end
		// point no update is needed.
		if s.ranges[i+1].ContainsPoint(saturatingAdd(s.ranges[i].end, 1)) {
			s.ranges[i].end = s.ranges[i+1].end
		}

		// The pair is now merged into slot i. Compact the tail.
		copy(s.ranges[i+1:s.inUse], s.ranges[i+2:s.inUse])
		s.inUse--
	}
}

// Insert unions r into the set, merging it with any contiguous or
// overlapping entries. It returns ErrFullSet, with the set unchanged, if a
// new slot is needed and none is free.
func (s *Set) Insert(r Range) error {
	if err := s.sortInsert(r); err != nil {
		return err
	}
	s.merge()
	return nil
}

// Remove subtracts r from the set, deleting, shrinking or splitting
// entries as needed. Splitting an entry needs a free slot; if none is
// available the call fails with ErrFullSet without performing the split.
func (s *Set) Remove(r Range) error {
	i := 0
	for i < s.inUse {
		// The array is sorted, so no entry past this point can overlap.
		if s.ranges[i].start > r.end {
			break
		}

		if !s.ranges[i].Overlaps(r) {
			i++
			continue
		}

		if s.ranges[i].ContainsRange(r) {
			switch {
			case s.ranges[i] == r:
				// Exact match: drop the entry.
				copy(s.ranges[i:s.inUse], s.ranges[i+1:s.inUse])
				s.inUse--
			case s.ranges[i].start == r.start:
				// Shared start point: trim the front.
				s.ranges[i].start = r.end + 1
			case s.ranges[i].end == r.end:
				// Shared end point: trim the back.
				s.ranges[i].end = r.start - 1
			default:
				// Strictly inside: split the entry in two.
				if s.inUse >= len(s.ranges) {
					return ErrFullSet
				}
				left, err := NewRange(s.ranges[i].start, r.start-1)
				if err != nil {
					return err
				}
				copy(s.ranges[i+1:s.inUse+1], s.ranges[i:s.inUse])
				s.ranges[i] = left
				s.ranges[i+1].start = r.end + 1
				s.inUse++
			}
			break
		} else if r.ContainsRange(s.ranges[i]) {
			// The removed range swallows this entry whole. Several
			// consecutive entries may be dropped this way before a
			// partial overlap resolves at either edge.
			copy(s.ranges[i:s.inUse], s.ranges[i+1:s.inUse])
			s.inUse--
		} else if s.ranges[i].ContainsPoint(r.start) {
			// Overlap at the back of the entry.
			s.ranges[i].end = r.start - 1
			i++
		} else {
			// Overlap at the front of the entry.
			s.ranges[i].start = r.end + 1
			i++
		}
	}

	return nil
}

// Size returns the total number of addresses covered by the set.
func (s *Set) Size() uint64 {
	var total uint64
	for i := 0; i < s.inUse; i++ {
		total += s.ranges[i].Size()
	}
	return total
}

// Start returns the lowest start point of the set. The second return
// value is false if the set is empty.
func (s *Set) Start() (uint64, bool) {
	if s.inUse == 0 {
		return 0, false
	}
	return s.ranges[0].start, true
}

// End returns the highest end point of the set. The second return value
// is false if the set is empty.
func (s *Set) End() (uint64, bool) {
	if s.inUse == 0 {
		return 0, false
	}
	return s.ranges[s.inUse-1].end, true
}

func saturatingAdd(x, y uint64) uint64 {
	sum := x + y
	if sum < x {
		return math.MaxUint64
	}
	return sum
}
