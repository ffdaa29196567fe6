package hir

import "fmt"

// Label is a loop or block label such as `'outer`.
type Label struct {
	Name string
}

// Binding is a local variable introduced by a pattern.
type Binding struct {
	Name string
}

// Body is the lowered body of a function. Nodes live in arenas and refer to
// each other by ID.
type Body struct {
	exprs    *Arena[Expr]
	pats     *Arena[Pat]
	labels   *Arena[Label]
	bindings *Arena[Binding]

	// Params are the parameter patterns, in order.
	Params []PatID
	// Root is the body's top-level expression.
	Root ExprID
}

// NewBody creates an empty body.
func NewBody() *Body {
	return &Body{
		exprs:    NewArena[Expr](64),
		pats:     NewArena[Pat](16),
		labels:   NewArena[Label](0),
		bindings: NewArena[Binding](8),
	}
}

// AddExpr stores an expression and returns its ID.
func (b *Body) AddExpr(data ExprData) ExprID {
	return ExprID(b.exprs.Allocate(Expr{Kind: data.exprKind(), Data: data}))
}

// AddPat stores a pattern and returns its ID.
func (b *Body) AddPat(data PatData) PatID {
	return PatID(b.pats.Allocate(Pat{Kind: data.patKind(), Data: data}))
}

// AddLabel stores a label and returns its ID.
func (b *Body) AddLabel(name string) LabelID {
	return LabelID(b.labels.Allocate(Label{Name: name}))
}

// AddBinding stores a binding and returns its ID.
func (b *Body) AddBinding(name string) BindingID {
	return BindingID(b.bindings.Allocate(Binding{Name: name}))
}

// Expr returns the expression with the given ID. It panics on an unknown ID:
// bodies are expected to be internally consistent.
func (b *Body) Expr(id ExprID) *Expr {
	e := b.exprs.Get(uint32(id))
	if e == nil {
		panic(fmt.Sprintf("hir: unknown expression %d", id))
	}
	return e
}

// Pat returns the pattern with the given ID.
func (b *Body) Pat(id PatID) *Pat {
	p := b.pats.Get(uint32(id))
	if p == nil {
		panic(fmt.Sprintf("hir: unknown pattern %d", id))
	}
	return p
}

// Label returns the label with the given ID.
func (b *Body) Label(id LabelID) *Label {
	l := b.labels.Get(uint32(id))
	if l == nil {
		panic(fmt.Sprintf("hir: unknown label %d", id))
	}
	return l
}

// Binding returns the binding with the given ID.
func (b *Body) Binding(id BindingID) *Binding {
	bd := b.bindings.Get(uint32(id))
	if bd == nil {
		panic(fmt.Sprintf("hir: unknown binding %d", id))
	}
	return bd
}

// NumExprs returns how many expressions the body holds.
func (b *Body) NumExprs() int { return int(b.exprs.Len()) }

// NumPats returns how many patterns the body holds.
func (b *Body) NumPats() int { return int(b.pats.Len()) }
