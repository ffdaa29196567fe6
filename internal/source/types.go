package source

type (
	// Offset is a byte offset into a file's content.
	Offset = uint32
)

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in bytes
}
