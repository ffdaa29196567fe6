package extract

import (
	"context"
	"fmt"
	"strconv"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
	"cratefacts/internal/trace"
)

// moduleLabel derives a module's identity from its parent's label, the file
// defining it and its name. The root has no parent and no name.
func (x *extractor) moduleLabel(ctx context.Context, m *hir.Module) (label.Label, error) {
	parts := make([]label.Part, 0, 3)
	if !m.IsRoot() {
		parent, ok := x.modules[m.Parent]
		if !ok {
			return label.None, fmt.Errorf("%w: module %q (parent %d)", ErrParentNotVisited, m.Name, m.Parent)
		}
		parts = append(parts, parent)
	}
	if id, ok := m.Definition.FileID(); ok {
		if desc, ok := x.reg.Resolve(ctx, id); ok {
			parts = append(parts, desc.Label)
		}
	}
	if !m.IsRoot() {
		parts = append(parts, label.Text(m.Name))
	}
	return label.Key(parts...), nil
}

// emitModule lowers the module's direct declarations and then the module
// itself. Only functions are lowered; other items are skipped.
func (x *extractor) emitModule(ctx context.Context, m *hir.Module) error {
	lbl, err := x.moduleLabel(ctx, m)
	if err != nil {
		return err
	}
	x.modules[m.ID] = lbl

	span := trace.Begin(x.tracer, trace.ScopeModule, "module:"+moduleName(m), x.span)
	decls := make([]label.Label, 0, len(m.Declarations))
	for _, def := range m.Declarations {
		fn, ok := def.(*hir.Function)
		if !ok {
			trace.Pointf(x.tracer, trace.ScopeNode, span.ID(), "skip-item", "%s %s", def.DefKind(), def.DefName())
			continue
		}
		if fl, ok := x.emitFunction(ctx, fn, lbl, span.ID()); ok {
			decls = append(decls, fl)
		}
	}

	x.buf.Emit(&facts.Module{
		Entity:       facts.Entity{ID: lbl},
		Name:         m.Name,
		Declarations: decls,
	})
	x.stats.modules++
	span.WithExtra("functions", strconv.Itoa(len(decls))).End(lbl.String())
	return nil
}

// emitFunction lowers fn's body. Functions without a body eligible for
// lowering report false and emit nothing.
func (x *extractor) emitFunction(ctx context.Context, fn *hir.Function, module label.Label, parent uint64) (label.Label, bool) {
	body, smap, ok := x.crate.BodyWithSourceMap(fn.ID)
	if !ok || body == nil {
		trace.Pointf(x.tracer, trace.ScopeFunction, parent, "no-body", "fn %s", fn.Name)
		return label.None, false
	}

	span := trace.Begin(x.tracer, trace.ScopeFunction, "fn:"+fn.Name, parent)
	loc := label.None
	if fn.HasSource {
		loc = x.reg.Locate(ctx, fn.Source)
	}

	t := &bodyTranslator{ctx: ctx, x: x, body: body, smap: smap, span: span.ID()}
	root := t.emitExpr(body.Root)

	lbl := x.buf.Emit(&facts.Function{
		Entity: facts.Entity{ID: FunctionLabel(module, fn.Name), Location: loc},
		Name:   fn.Name,
		Body:   root,
	})
	x.stats.functions++
	span.End("")
	return lbl, true
}

// FunctionLabel is the key-derived label of a function declared in module.
func FunctionLabel(module label.Label, name string) label.Label {
	return label.Key(module, label.Text("fn;"), label.Text(name))
}

func moduleName(m *hir.Module) string {
	if m.IsRoot() {
		return "<root>"
	}
	return m.Name
}
