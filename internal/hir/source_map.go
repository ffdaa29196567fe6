package hir

// SourceMap relates body nodes to their syntax. Lookups report ok=false when
// a node has no syntax (for example, nodes synthesized during lowering).
//
// LabelSyntax is known to be incomplete upstream and may panic instead of
// returning ok=false; callers must guard it.
type SourceMap interface {
	ExprSyntax(id ExprID) (InFile, bool)
	PatSyntax(id PatID) (InFile, bool)
	LabelSyntax(id LabelID) (InFile, bool)
}

// MapSourceMap is a SourceMap backed by plain maps.
type MapSourceMap struct {
	Exprs  map[ExprID]InFile
	Pats   map[PatID]InFile
	Labels map[LabelID]InFile
	// PanicOnMissingLabel reproduces the upstream behaviour of faulting on
	// an unmapped label instead of reporting it as missing.
	PanicOnMissingLabel bool
}

// NewMapSourceMap creates an empty map-backed source map.
func NewMapSourceMap() *MapSourceMap {
	return &MapSourceMap{
		Exprs:  make(map[ExprID]InFile),
		Pats:   make(map[PatID]InFile),
		Labels: make(map[LabelID]InFile),
	}
}

func (m *MapSourceMap) ExprSyntax(id ExprID) (InFile, bool) {
	src, ok := m.Exprs[id]
	return src, ok
}

func (m *MapSourceMap) PatSyntax(id PatID) (InFile, bool) {
	src, ok := m.Pats[id]
	return src, ok
}

func (m *MapSourceMap) LabelSyntax(id LabelID) (InFile, bool) {
	src, ok := m.Labels[id]
	if !ok && m.PanicOnMissingLabel {
		panic("source map: no syntax for label")
	}
	return src, ok
}
