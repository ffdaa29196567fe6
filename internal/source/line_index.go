package source

import (
	"fmt"

	"fortio.org/safecast"
)

// LineIndex maps byte offsets of one file to line/column positions.
type LineIndex struct {
	newlines []uint32 // offsets of every '\n'
	size     uint32
}

// NewLineIndex scans content once and records where every line ends.
func NewLineIndex(content []byte) *LineIndex {
	size, err := safecast.Conv[uint32](len(content))
	if err != nil {
		panic(fmt.Errorf("file too large for line index: %w", err))
	}
	return &LineIndex{
		newlines: buildLineIndex(content),
		size:     size,
	}
}

// Size returns the length in bytes of the indexed content.
func (idx *LineIndex) Size() uint32 {
	return idx.size
}

// Lines returns the number of lines, counting a trailing partial line.
func (idx *LineIndex) Lines() int {
	return len(idx.newlines) + 1
}

// LineCol converts a byte offset to a 1-based line and column.
// Offsets past the end are clamped to the end of the content.
func (idx *LineIndex) LineCol(off Offset) LineCol {
	if off > idx.size {
		off = idx.size
	}
	return toLineCol(idx.newlines, off)
}

// Span converts a half-open range into an inclusive start/end pair.
// The end maps to the last byte inside the range; an empty range maps
// both ends to the same position.
func (idx *LineIndex) Span(r TextRange) (start, end LineCol) {
	return idx.LineCol(r.Start), idx.LineCol(r.LastOffset())
}
