package hir

import "cratefacts/internal/source"

// HirFileID names where a node's syntax lives: either a real file or the
// expansion of a macro call, which has no file of its own.
type HirFileID struct {
	File      FileID
	MacroCall bool
}

// RealFile wraps a file handle of an on-disk source file.
func RealFile(id FileID) HirFileID {
	return HirFileID{File: id}
}

// MacroFile marks syntax produced by a macro expansion.
func MacroFile(id FileID) HirFileID {
	return HirFileID{File: id, MacroCall: true}
}

// FileID returns the real file handle, if there is one.
func (f HirFileID) FileID() (FileID, bool) {
	if f.MacroCall {
		return 0, false
	}
	return f.File, true
}

// InFile is a byte range inside a (possibly macro) file.
type InFile struct {
	File  HirFileID
	Range source.TextRange
}

// FileSystem resolves opaque file handles. Virtual or synthetic files have
// no path.
type FileSystem interface {
	// FilePath returns the absolute path of the file.
	FilePath(id FileID) (string, bool)
	// FileText returns the byte content the file's ranges refer to.
	FileText(id FileID) ([]byte, error)
}
