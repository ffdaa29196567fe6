package snapshot

import (
	"fmt"

	"cratefacts/internal/hir"
	"cratefacts/internal/source"
)

// bodyBuilder turns one bodyEntry into a hir.Body. The first error sticks;
// later calls are no-ops returning zero IDs.
type bodyBuilder struct {
	entry *bodyEntry
	body  *hir.Body
	smap  *hir.MapSourceMap
	err   error
}

func buildBody(entry *bodyEntry, labelFaults bool) (*hir.Body, *hir.MapSourceMap, error) {
	b := &bodyBuilder{entry: entry, body: hir.NewBody(), smap: hir.NewMapSourceMap()}
	b.smap.PanicOnMissingLabel = labelFaults

	for _, l := range entry.Labels {
		id := b.body.AddLabel(l.Name)
		if l.At != nil {
			b.smap.Labels[id] = l.At.inFile()
		}
	}
	for i := range entry.Exprs {
		n := &entry.Exprs[i]
		id := b.body.AddExpr(b.exprData(n))
		if n.At != nil {
			b.smap.Exprs[id] = n.At.inFile()
		}
		if b.err != nil {
			return nil, nil, fmt.Errorf("expr %d (%s): %w", i+1, n.Kind, b.err)
		}
	}
	for i := range entry.Pats {
		n := &entry.Pats[i]
		id := b.body.AddPat(b.patData(n))
		if n.At != nil {
			b.smap.Pats[id] = n.At.inFile()
		}
		if b.err != nil {
			return nil, nil, fmt.Errorf("pat %d (%s): %w", i+1, n.Kind, b.err)
		}
	}
	for _, p := range entry.Params {
		b.body.Params = append(b.body.Params, b.pat(p))
	}
	if entry.Root == 0 {
		return nil, nil, fmt.Errorf("body has no root expression")
	}
	b.body.Root = b.expr(entry.Root)
	if b.err != nil {
		return nil, nil, b.err
	}
	if err := checkAcyclic(b.body); err != nil {
		return nil, nil, err
	}
	return b.body, b.smap, nil
}

func (s *span) inFile() hir.InFile {
	f := hir.RealFile(hir.FileID(s.File))
	if s.Macro {
		f = hir.MacroFile(hir.FileID(s.File))
	}
	return hir.InFile{File: f, Range: source.NewRange(s.Start, s.End)}
}

func (b *bodyBuilder) fail(format string, args ...any) {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
}

func (b *bodyBuilder) expr(ref uint32) hir.ExprID {
	if int(ref) > len(b.entry.Exprs) {
		b.fail("expression reference %d out of range", ref)
		return hir.NoExprID
	}
	return hir.ExprID(ref)
}

func (b *bodyBuilder) required(ref uint32, field string) hir.ExprID {
	if ref == 0 {
		b.fail("missing %s", field)
	}
	return b.expr(ref)
}

func (b *bodyBuilder) exprs(refs []uint32) []hir.ExprID {
	out := make([]hir.ExprID, 0, len(refs))
	for _, r := range refs {
		out = append(out, b.required(r, "list element"))
	}
	return out
}

func (b *bodyBuilder) pat(ref uint32) hir.PatID {
	if int(ref) > len(b.entry.Pats) {
		b.fail("pattern reference %d out of range", ref)
		return hir.NoPatID
	}
	return hir.PatID(ref)
}

func (b *bodyBuilder) requiredPat(ref uint32, field string) hir.PatID {
	if ref == 0 {
		b.fail("missing %s", field)
	}
	return b.pat(ref)
}

func (b *bodyBuilder) pats(refs []uint32) []hir.PatID {
	out := make([]hir.PatID, 0, len(refs))
	for _, r := range refs {
		out = append(out, b.requiredPat(r, "list element"))
	}
	return out
}

func (b *bodyBuilder) label(ref uint32) hir.LabelID {
	if int(ref) > len(b.entry.Labels) {
		b.fail("label reference %d out of range", ref)
		return hir.NoLabelID
	}
	return hir.LabelID(ref)
}

func typeRef(text string) *hir.TypeRef {
	if text == "" {
		return nil
	}
	return &hir.TypeRef{Text: text}
}

func (b *bodyBuilder) exprData(n *exprNode) hir.ExprData {
	kind, ok := parseExprKind(n.Kind)
	if !ok {
		b.fail("unknown expression kind %q", n.Kind)
		return hir.MissingData{}
	}
	switch kind {
	case hir.ExprMissing:
		return hir.MissingData{}
	case hir.ExprPath:
		return hir.PathData{Path: n.Path}
	case hir.ExprIf:
		return hir.IfData{Condition: b.required(n.Cond, "cond"), Then: b.required(n.Then, "then"), Else: b.expr(n.Else)}
	case hir.ExprLet:
		return hir.LetData{Pat: b.requiredPat(n.Pat, "pat"), Expr: b.required(n.Expr, "expr")}
	case hir.ExprBlock:
		variant, ok := parseBlockVariant(n.Variant)
		if !ok {
			b.fail("unknown block variant %q", n.Variant)
		}
		stmts := make([]hir.Stmt, 0, len(n.Stmts))
		for i := range n.Stmts {
			stmts = append(stmts, b.stmt(&n.Stmts[i]))
		}
		return hir.BlockData{Variant: variant, Statements: stmts, Tail: b.expr(n.Tail), Label: b.label(n.Label)}
	case hir.ExprLoop:
		return hir.LoopData{Body: b.required(n.Body, "body"), Label: b.label(n.Label)}
	case hir.ExprCall:
		return hir.CallData{Callee: b.required(n.Callee, "callee"), Args: b.exprs(n.Args), IsAssigneeExpr: n.Assignee}
	case hir.ExprMethodCall:
		return hir.MethodCallData{Receiver: b.required(n.Receiver, "receiver"), MethodName: n.Method, Args: b.exprs(n.Args)}
	case hir.ExprMatch:
		arms := make([]hir.MatchArm, 0, len(n.Arms))
		for _, a := range n.Arms {
			arms = append(arms, hir.MatchArm{Pat: b.requiredPat(a.Pat, "arm pat"), Guard: b.expr(a.Guard), Expr: b.required(a.Expr, "arm expr")})
		}
		return hir.MatchData{Expr: b.required(n.Expr, "expr"), Arms: arms}
	case hir.ExprContinue:
		return hir.ContinueData{Label: b.label(n.Label)}
	case hir.ExprBreak:
		return hir.BreakData{Expr: b.expr(n.Expr), Label: b.label(n.Label)}
	case hir.ExprReturn:
		return hir.ReturnData{Expr: b.expr(n.Expr)}
	case hir.ExprBecome:
		return hir.BecomeData{Expr: b.required(n.Expr, "expr")}
	case hir.ExprYield:
		return hir.YieldData{Expr: b.expr(n.Expr)}
	case hir.ExprYeet:
		return hir.YeetData{Expr: b.expr(n.Expr)}
	case hir.ExprRecordLit:
		return hir.RecordLitData{Path: n.Path, Spread: b.expr(n.Spread), IsAssigneeExpr: n.Assignee}
	case hir.ExprField:
		return hir.FieldData{Expr: b.required(n.Expr, "expr"), Name: n.Name}
	case hir.ExprAwait:
		return hir.AwaitData{Expr: b.required(n.Expr, "expr")}
	case hir.ExprCast:
		return hir.CastData{Expr: b.required(n.Expr, "expr"), Type: hir.TypeRef{Text: n.Type}}
	case hir.ExprRef:
		d := hir.RefData{Expr: b.required(n.Expr, "expr")}
		if n.Mut {
			d.Mutability = hir.Mut
		}
		if n.Raw {
			d.Rawness = hir.RefRaw
		}
		return d
	case hir.ExprBox:
		return hir.BoxData{Expr: b.required(n.Expr, "expr")}
	case hir.ExprUnaryOp:
		op, ok := hir.ParseUnaryOperator(n.Op)
		if !ok {
			b.fail("unknown unary operator %q", n.Op)
		}
		return hir.UnaryOpData{Op: op, Expr: b.required(n.Expr, "expr")}
	case hir.ExprBinaryOp:
		op, ok := hir.ParseBinaryOperator(n.Op)
		if !ok {
			b.fail("unknown binary operator %q", n.Op)
		}
		return hir.BinaryOpData{Op: op, Lhs: b.required(n.Lhs, "lhs"), Rhs: b.required(n.Rhs, "rhs")}
	case hir.ExprRange:
		d := hir.RangeData{Lhs: b.expr(n.Lhs), Rhs: b.expr(n.Rhs)}
		if n.Inclusive {
			d.Op = hir.RangeInclusive
		}
		return d
	case hir.ExprIndex:
		return hir.IndexData{Base: b.required(n.Base, "base"), Index: b.required(n.Index, "index"), IsAssigneeExpr: n.Assignee}
	case hir.ExprClosure:
		d := hir.ClosureData{Args: b.pats(n.Params), RetType: typeRef(n.RetType), Body: b.required(n.Body, "body")}
		for i := range d.Args {
			var text string
			if i < len(n.ArgTypes) {
				text = n.ArgTypes[i]
			}
			d.ArgTypes = append(d.ArgTypes, typeRef(text))
		}
		if n.Move {
			d.CaptureBy = hir.CaptureByValue
		}
		return d
	case hir.ExprTuple:
		return hir.TupleData{Exprs: b.exprs(n.Args), IsAssigneeExpr: n.Assignee}
	case hir.ExprArray:
		return hir.ArrayData{Elements: b.exprs(n.Args), IsAssigneeExpr: n.Assignee}
	case hir.ExprArrayRepeat:
		return hir.ArrayRepeatData{Initializer: b.required(n.Initializer, "initializer"), Repeat: b.required(n.Repeat, "repeat")}
	case hir.ExprLiteral:
		return hir.LiteralData{Text: n.Text}
	case hir.ExprUnderscore:
		return hir.UnderscoreData{}
	case hir.ExprOffsetOf:
		return hir.OffsetOfData{Container: hir.TypeRef{Text: n.Type}, Fields: n.Fields}
	case hir.ExprInlineAsm:
		return hir.InlineAsmData{Expr: b.required(n.Expr, "expr")}
	}
	b.fail("expression kind %s is not supported in snapshots", kind)
	return hir.MissingData{}
}

func (b *bodyBuilder) stmt(n *stmtNode) hir.Stmt {
	switch n.Kind {
	case "let":
		return hir.NewStmt(hir.LetStmtData{
			Pat:         b.requiredPat(n.Pat, "let pat"),
			Type:        typeRef(n.Type),
			Initializer: b.expr(n.Init),
			Else:        b.expr(n.Else),
		})
	case "expr":
		return hir.NewStmt(hir.ExprStmtData{Expr: b.required(n.Expr, "statement expr"), HasSemi: n.Semi})
	case "item":
		return hir.NewStmt(hir.ItemStmtData{})
	}
	b.fail("unknown statement kind %q", n.Kind)
	return hir.NewStmt(hir.ItemStmtData{})
}

func (b *bodyBuilder) bound(n *boundNode) hir.RangeBound {
	switch {
	case n == nil:
		return nil
	case n.Lit != nil:
		return hir.LiteralBound{Text: *n.Lit}
	default:
		return hir.ConstBound{Pat: b.requiredPat(n.Const, "range bound")}
	}
}

func (b *bodyBuilder) patData(n *patNode) hir.PatData {
	kind, ok := parsePatKind(n.Kind)
	if !ok {
		b.fail("unknown pattern kind %q", n.Kind)
		return hir.MissingPatData{}
	}
	switch kind {
	case hir.PatMissing:
		return hir.MissingPatData{}
	case hir.PatWild:
		return hir.WildPatData{}
	case hir.PatTuple:
		return hir.TuplePatData{Args: b.pats(n.Args), Ellipsis: n.Ellipsis}
	case hir.PatOr:
		return hir.OrPatData{Args: b.pats(n.Args)}
	case hir.PatRecord:
		return hir.RecordPatData{Path: n.Path, Ellipsis: n.Ellipsis != nil}
	case hir.PatRange:
		return hir.RangePatData{Start: b.bound(n.Start), End: b.bound(n.End)}
	case hir.PatSlice:
		return hir.SlicePatData{Prefix: b.pats(n.Prefix), Slice: b.pat(n.Slice), Suffix: b.pats(n.Suffix)}
	case hir.PatPath:
		return hir.PathPatData{Path: n.Path}
	case hir.PatLit:
		return hir.LitPatData{Expr: b.required(n.Expr, "expr")}
	case hir.PatBind:
		if n.Binding == "" {
			b.fail("bind pattern without a binding name")
		}
		return hir.BindPatData{Binding: b.body.AddBinding(n.Binding), Subpat: b.pat(n.Subpat)}
	case hir.PatTupleStruct:
		return hir.TupleStructPatData{Path: n.Path, Args: b.pats(n.Args), Ellipsis: n.Ellipsis}
	case hir.PatRef:
		d := hir.RefPatData{Pat: b.requiredPat(n.Pat, "pat")}
		if n.Mut {
			d.Mutability = hir.Mut
		}
		return d
	case hir.PatBox:
		return hir.BoxPatData{Inner: b.requiredPat(n.Pat, "pat")}
	case hir.PatConstBlock:
		return hir.ConstBlockPatData{Expr: b.required(n.Expr, "expr")}
	}
	b.fail("pattern kind %s is not supported in snapshots", kind)
	return hir.MissingPatData{}
}

func parseExprKind(s string) (hir.ExprKind, bool) {
	for k := hir.ExprKind(0); k < hir.NumExprKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func parsePatKind(s string) (hir.PatKind, bool) {
	for k := hir.PatKind(0); k < hir.NumPatKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

func parseBlockVariant(s string) (hir.BlockVariant, bool) {
	if s == "" {
		return hir.BlockPlain, true
	}
	for v := hir.BlockPlain; v <= hir.BlockUnsafe; v++ {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}
