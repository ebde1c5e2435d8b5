package rangeset

import "fmt"

// Range is an inclusive interval [start, end] of 64-bit addresses.
// The zero value is the single-point range [0, 0].
type Range struct {
	start uint64
	end   uint64
}

// NewRange returns the range [start, end]. It returns ErrInvalidBoundaries
// if the end point is lower than the start point.
func NewRange(start, end uint64) (Range, error) {
	if start > end {
		return Range{}, fmt.Errorf("%w: [%#x, %#x]", ErrInvalidBoundaries, start, end)
	}
	return Range{start: start, end: end}, nil
}

// MustRange is like NewRange but panics on invalid boundaries. It is meant
// for ranges whose validity is known statically.
func MustRange(start, end uint64) Range {
	r, err := NewRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// Start returns the start point of the range.
func (r Range) Start() uint64 { return r.start }

// End returns the end point of the range.
func (r Range) End() uint64 { return r.end }

// Size returns the number of addresses covered by the range. The interval
// is inclusive, so a single-point range has size 1.
func (r Range) Size() uint64 { return r.end - r.start + 1 }

// ContainsPoint reports whether point lies within the range.
func (r Range) ContainsPoint(point uint64) bool {
	return point >= r.start && point <= r.end
}

// ContainsRange reports whether other lies entirely within the range.
func (r Range) ContainsRange(other Range) bool {
	return r.ContainsPoint(other.start) && r.ContainsPoint(other.end)
}

// Overlaps reports whether the ranges share at least one point.
func (r Range) Overlaps(other Range) bool {
	return r.ContainsPoint(other.start) ||
		r.ContainsPoint(other.end) ||
		other.ContainsPoint(r.start) ||
		other.ContainsPoint(r.end)
}

// String formats the range as [start, end] in hexadecimal.
func (r Range) String() string {
	return fmt.Sprintf("[%#x, %#x]", r.start, r.end)
}
