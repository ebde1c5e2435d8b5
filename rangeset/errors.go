package rangeset

import "errors"

var (
	// ErrInvalidBoundaries indicates a range was requested whose end point
	// is lower than its start point.
	ErrInvalidBoundaries = errors.New("rangeset: invalid range boundaries")

	// ErrFullSet indicates the fixed-size array backing a Set cannot hold
	// the extra entry an operation needs. The failing operation performs no
	// mutation.
	ErrFullSet = errors.New("rangeset: set is full")
)
