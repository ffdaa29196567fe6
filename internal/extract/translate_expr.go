package extract

import (
	"fmt"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
)

func (t *bodyTranslator) emitExprOpt(id hir.ExprID) label.Label {
	if !id.IsValid() {
		return label.None
	}
	return t.emitExpr(id)
}

func (t *bodyTranslator) emitExprs(ids []hir.ExprID) []label.Label {
	out := make([]label.Label, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.emitExpr(id))
	}
	return out
}

// emitExpr lowers the expression and everything below it.
func (t *bodyTranslator) emitExpr(id hir.ExprID) label.Label {
	e := t.body.Expr(id)
	// parent location first: a child's lookup cannot affect it
	loc := t.exprLoc(id)

	var r row
	switch d := e.Data.(type) {
	case hir.MissingData:
		r = &facts.MissingExpr{}
	case hir.PathData:
		r = &facts.Path{Text: d.Path}
	case hir.IfData:
		cond := t.emitExpr(d.Condition)
		then := t.emitExpr(d.Then)
		r = &facts.If{Condition: cond, Then: then, Else: t.emitExprOpt(d.Else)}
	case hir.LetData:
		pat := t.emitPat(d.Pat)
		r = &facts.Let{Pat: pat, Expr: t.emitExpr(d.Expr)}
	case hir.BlockData:
		r = t.block(d)
	case hir.LoopData:
		body := t.emitExpr(d.Body)
		r = &facts.Loop{Body: body, LabelRef: t.emitLabel(d.Label)}
	case hir.CallData:
		callee := t.emitExpr(d.Callee)
		r = &facts.Call{Callee: callee, Args: t.emitExprs(d.Args), IsAssigneeExpr: d.IsAssigneeExpr}
	case hir.MethodCallData:
		recv := t.emitExpr(d.Receiver)
		r = &facts.MethodCall{Receiver: recv, MethodName: d.MethodName, Args: t.emitExprs(d.Args)}
	case hir.MatchData:
		scrutinee := t.emitExpr(d.Expr)
		arms := make([]label.Label, 0, len(d.Arms))
		for _, arm := range d.Arms {
			arms = append(arms, t.emitArm(arm))
		}
		r = &facts.Match{Expr: scrutinee, Branches: arms}
	case hir.ContinueData:
		r = &facts.Continue{LabelRef: t.emitLabel(d.Label)}
	case hir.BreakData:
		val := t.emitExprOpt(d.Expr)
		r = &facts.Break{Expr: val, LabelRef: t.emitLabel(d.Label)}
	case hir.ReturnData:
		r = &facts.Return{Expr: t.emitExprOpt(d.Expr)}
	case hir.BecomeData:
		r = &facts.Become{Expr: t.emitExpr(d.Expr)}
	case hir.YieldData:
		r = &facts.Yield{Expr: t.emitExprOpt(d.Expr)}
	case hir.YeetData:
		r = &facts.Yeet{Expr: t.emitExprOpt(d.Expr)}
	case hir.RecordLitData:
		r = &facts.RecordLit{}
	case hir.FieldData:
		r = &facts.Field{Expr: t.emitExpr(d.Expr), Name: d.Name}
	case hir.AwaitData:
		r = &facts.Await{Expr: t.emitExpr(d.Expr)}
	case hir.CastData:
		inner := t.emitExpr(d.Expr)
		r = &facts.Cast{Expr: inner, TypeRef: t.emitTypeRef()}
	case hir.RefData:
		r = &facts.Ref{Expr: t.emitExpr(d.Expr), IsMut: d.Mutability.IsMut(), IsRaw: d.Rawness.IsRaw()}
	case hir.BoxData:
		r = &facts.Box{Expr: t.emitExpr(d.Expr)}
	case hir.UnaryOpData:
		r = &facts.UnaryOp{Expr: t.emitExpr(d.Expr), Op: d.Op.String()}
	case hir.BinaryOpData:
		lhs := t.emitExpr(d.Lhs)
		rhs := t.emitExpr(d.Rhs)
		r = &facts.BinaryOp{Lhs: lhs, Rhs: rhs, Op: d.Op.String()}
	case hir.RangeData:
		lhs := t.emitExprOpt(d.Lhs)
		rhs := t.emitExprOpt(d.Rhs)
		r = &facts.Range{Lhs: lhs, Rhs: rhs, IsInclusive: d.Op == hir.RangeInclusive}
	case hir.IndexData:
		base := t.emitExpr(d.Base)
		r = &facts.Index{Base: base, Index: t.emitExpr(d.Index), IsAssigneeExpr: d.IsAssigneeExpr}
	case hir.ClosureData:
		r = t.closure(d)
	case hir.TupleData:
		r = &facts.Tuple{Exprs: t.emitExprs(d.Exprs), IsAssigneeExpr: d.IsAssigneeExpr}
	case hir.ArrayData:
		r = &facts.ElementList{Elements: t.emitExprs(d.Elements), IsAssigneeExpr: d.IsAssigneeExpr}
	case hir.ArrayRepeatData:
		initializer := t.emitExpr(d.Initializer)
		r = &facts.Repeat{Initializer: initializer, Repeat: t.emitExpr(d.Repeat)}
	case hir.LiteralData:
		r = &facts.Literal{Text: d.Text}
	case hir.UnderscoreData:
		r = &facts.Underscore{}
	case hir.OffsetOfData:
		fields := append([]string(nil), d.Fields...)
		r = &facts.OffsetOf{Container: t.emitTypeRef(), Fields: fields}
	case hir.InlineAsmData:
		r = &facts.InlineAsm{Expr: t.emitExpr(d.Expr)}
	default:
		panic(fmt.Sprintf("extract: unhandled expression kind %s (%T)", e.Kind, e.Data))
	}
	return t.emit(r, loc)
}

func (t *bodyTranslator) block(d hir.BlockData) row {
	stmts := make([]label.Label, 0, len(d.Statements))
	for _, s := range d.Statements {
		stmts = append(stmts, t.emitStmt(s))
	}
	body := facts.BlockBody{
		Statements: stmts,
		Tail:       t.emitExprOpt(d.Tail),
		LabelRef:   t.emitLabel(d.Label),
	}
	switch d.Variant {
	case hir.BlockAsync:
		return &facts.AsyncBlock{BlockBody: body}
	case hir.BlockConst:
		return &facts.ConstBlock{BlockBody: body}
	case hir.BlockUnsafe:
		return &facts.UnsafeBlock{BlockBody: body}
	default:
		return &facts.Block{BlockBody: body}
	}
}

func (t *bodyTranslator) closure(d hir.ClosureData) row {
	args := make([]label.Label, 0, len(d.Args))
	types := make([]label.Label, 0, len(d.Args))
	for i, p := range d.Args {
		args = append(args, t.emitPat(p))
		var ty *hir.TypeRef
		if i < len(d.ArgTypes) {
			ty = d.ArgTypes[i]
		}
		types = append(types, t.emitTypeRefOpt(ty))
	}
	ret := t.emitTypeRefOpt(d.RetType)
	return &facts.Closure{
		Args:     args,
		ArgTypes: types,
		Body:     t.emitExpr(d.Body),
		RetType:  ret,
		IsMove:   d.CaptureBy == hir.CaptureByValue,
	}
}

// emitArm lowers a match arm. The arm has no syntax of its own in the
// source map, so it is located at its pattern.
func (t *bodyTranslator) emitArm(arm hir.MatchArm) label.Label {
	loc := t.patLoc(arm.Pat)
	pat := t.emitPat(arm.Pat)
	guard := t.emitExprOpt(arm.Guard)
	return t.emit(&facts.MatchArm{Pat: pat, Guard: guard, Expr: t.emitExpr(arm.Expr)}, loc)
}
