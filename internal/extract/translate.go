package extract

import (
	"context"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/trace"
)

// row is a fact under construction; Init assigns its identity.
type row interface {
	facts.Row
	Init(id, loc label.Label)
}

// bodyTranslator lowers one function body. Every node gets a fresh label,
// allocated after its children so references always point backwards.
type bodyTranslator struct {
	ctx  context.Context
	x    *extractor
	body *hir.Body
	smap hir.SourceMap
	span uint64
}

func (t *bodyTranslator) emit(r row, loc label.Label) label.Label {
	r.Init(t.x.buf.Fresh(), loc)
	return t.x.buf.Emit(r)
}

func (t *bodyTranslator) exprLoc(id hir.ExprID) label.Label {
	src, ok := t.smap.ExprSyntax(id)
	if !ok {
		trace.Pointf(t.x.tracer, trace.ScopeNode, t.span, "no-range", "expr %d", id)
		return label.None
	}
	return t.x.reg.Locate(t.ctx, src)
}

func (t *bodyTranslator) patLoc(id hir.PatID) label.Label {
	src, ok := t.smap.PatSyntax(id)
	if !ok {
		trace.Pointf(t.x.tracer, trace.ScopeNode, t.span, "no-range", "pat %d", id)
		return label.None
	}
	return t.x.reg.Locate(t.ctx, src)
}

// labelSyntax is the only place a fault from the source map is recovered:
// label lookups upstream may panic instead of reporting a missing range.
func (t *bodyTranslator) labelSyntax(id hir.LabelID) (src hir.InFile, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			trace.Pointf(t.x.tracer, trace.ScopeNode, t.span, "label-lookup", "label %d: %v", id, r)
			src, ok = hir.InFile{}, false
		}
	}()
	return t.smap.LabelSyntax(id)
}

func (t *bodyTranslator) emitLabel(id hir.LabelID) label.Label {
	if !id.IsValid() {
		return label.None
	}
	loc := label.None
	if src, ok := t.labelSyntax(id); ok {
		loc = t.x.reg.Locate(t.ctx, src)
	}
	return t.emit(&facts.Label{Name: t.body.Label(id).Name}, loc)
}

func (t *bodyTranslator) emitTypeRef() label.Label {
	return t.emit(&facts.TypeRef{}, label.None)
}

func (t *bodyTranslator) emitTypeRefOpt(ty *hir.TypeRef) label.Label {
	if ty == nil {
		return label.None
	}
	return t.emitTypeRef()
}
