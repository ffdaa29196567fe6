package extract

import (
	"fmt"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
)

func (t *bodyTranslator) emitPatOpt(id hir.PatID) label.Label {
	if !id.IsValid() {
		return label.None
	}
	return t.emitPat(id)
}

func (t *bodyTranslator) emitPats(ids []hir.PatID) []label.Label {
	out := make([]label.Label, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.emitPat(id))
	}
	return out
}

// emitPat lowers the pattern and everything below it.
func (t *bodyTranslator) emitPat(id hir.PatID) label.Label {
	p := t.body.Pat(id)
	loc := t.patLoc(id)

	var r row
	switch d := p.Data.(type) {
	case hir.MissingPatData:
		r = &facts.MissingPat{}
	case hir.WildPatData:
		r = &facts.WildPat{}
	case hir.TuplePatData:
		r = &facts.TuplePat{Args: t.emitPats(d.Args), Ellipsis: copyPos(d.Ellipsis)}
	case hir.OrPatData:
		r = &facts.OrPat{Args: t.emitPats(d.Args)}
	case hir.RecordPatData:
		r = &facts.RecordPat{}
	case hir.RangePatData:
		start := t.rangeBound(d.Start, loc)
		r = &facts.RangePat{Start: start, End: t.rangeBound(d.End, loc)}
	case hir.SlicePatData:
		prefix := t.emitPats(d.Prefix)
		slice := t.emitPatOpt(d.Slice)
		r = &facts.SlicePat{Prefix: prefix, Slice: slice, Suffix: t.emitPats(d.Suffix)}
	case hir.PathPatData:
		r = &facts.PathPat{}
	case hir.LitPatData:
		r = &facts.LitPat{Expr: t.emitExpr(d.Expr)}
	case hir.BindPatData:
		r = &facts.BindPat{BindingID: t.body.Binding(d.Binding).Name, Subpat: t.emitPatOpt(d.Subpat)}
	case hir.TupleStructPatData:
		r = &facts.TupleStructPat{}
	case hir.RefPatData:
		r = &facts.RefPat{Pat: t.emitPat(d.Pat), IsMut: d.Mutability.IsMut()}
	case hir.BoxPatData:
		r = &facts.BoxPat{Inner: t.emitPat(d.Inner)}
	case hir.ConstBlockPatData:
		r = &facts.ConstBlockPat{Expr: t.emitExpr(d.Expr)}
	default:
		panic(fmt.Sprintf("extract: unhandled pattern kind %s (%T)", p.Kind, p.Data))
	}
	return t.emit(r, loc)
}

// rangeBound lowers one side of a range pattern. A literal has no node of
// its own, so it becomes a Literal wrapped in a LitPat placed at the range
// pattern; a constant is lowered as the pattern it names.
func (t *bodyTranslator) rangeBound(b hir.RangeBound, rangeLoc label.Label) label.Label {
	switch b := b.(type) {
	case nil:
		return label.None
	case hir.LiteralBound:
		lit := t.emit(&facts.Literal{Text: b.Text}, label.None)
		return t.emit(&facts.LitPat{Expr: lit}, rangeLoc)
	case hir.ConstBound:
		return t.emitPat(b.Pat)
	default:
		panic(fmt.Sprintf("extract: unhandled range bound %T", b))
	}
}

func copyPos(p *uint32) *uint32 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
