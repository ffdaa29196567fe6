package source

import (
	"fmt"
)

// TextRange is a half-open byte range [Start, End) inside one file.
type TextRange struct {
	Start Offset // inclusive
	End   Offset // exclusive
}

// NewRange builds a range, swapping the bounds if they come reversed.
func NewRange(start, end Offset) TextRange {
	if end < start {
		start, end = end, start
	}
	return TextRange{Start: start, End: end}
}

func (r TextRange) Empty() bool {
	return r.Start == r.End
}

func (r TextRange) Len() uint32 {
	return r.End - r.Start
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Contains reports whether off lies inside the range.
func (r TextRange) Contains(off Offset) bool {
	return off >= r.Start && off < r.End
}

// LastOffset returns the offset of the last byte covered by the range.
// An empty range has no last byte; its end is returned unchanged so the
// result never underflows below Start.
func (r TextRange) LastOffset() Offset {
	if r.End > r.Start {
		return r.End - 1
	}
	return r.End
}
