// Package hir describes the resolved program representation consumed by the
// extractor.
//
// A Crate lists its modules parent-first together with the items each module
// declares. Every function with a body exposes that body as arenas of
// expressions, patterns, labels and bindings, plus a SourceMap that relates
// nodes back to byte ranges in source files. The representation is produced
// elsewhere; this package only fixes its shape.
//
// Node kinds form closed sets (ExprKind, PatKind, StmtKind). Each kind has a
// payload type implementing the matching Data interface.
package hir

// FileID is an opaque handle of a source file in the virtual file system.
type FileID uint32

// ModuleID identifies a module within a crate.
type ModuleID uint32

// FunctionID identifies a function definition within a crate.
type FunctionID uint32

// ExprID identifies an expression within a Body.
type ExprID uint32

// PatID identifies a pattern within a Body.
type PatID uint32

// LabelID identifies a loop/block label within a Body.
type LabelID uint32

// BindingID identifies a local binding within a Body.
type BindingID uint32

// Invalid ID constants (zero is sentinel).
const (
	NoModuleID   ModuleID   = 0
	NoFunctionID FunctionID = 0
	NoExprID     ExprID     = 0
	NoPatID      PatID      = 0
	NoLabelID    LabelID    = 0
	NoBindingID  BindingID  = 0
)

// IsValid returns true if the ID is valid (non-zero).
func (id ModuleID) IsValid() bool   { return id != NoModuleID }
func (id FunctionID) IsValid() bool { return id != NoFunctionID }
func (id ExprID) IsValid() bool     { return id != NoExprID }
func (id PatID) IsValid() bool      { return id != NoPatID }
func (id LabelID) IsValid() bool    { return id != NoLabelID }
func (id BindingID) IsValid() bool  { return id != NoBindingID }
