package extract

import (
	"fmt"

	"cratefacts/internal/facts"
	"cratefacts/internal/hir"
	"cratefacts/internal/label"
)

// emitStmt lowers a block statement. Statements have no syntax in the
// source map: a let is located at its pattern, an expression statement at
// its expression, and an item statement nowhere.
func (t *bodyTranslator) emitStmt(s hir.Stmt) label.Label {
	switch d := s.Data.(type) {
	case hir.LetStmtData:
		loc := t.patLoc(d.Pat)
		pat := t.emitPat(d.Pat)
		ty := t.emitTypeRefOpt(d.Type)
		initializer := t.emitExprOpt(d.Initializer)
		return t.emit(&facts.LetStmt{Pat: pat, TypeRef: ty, Initializer: initializer, Else: t.emitExprOpt(d.Else)}, loc)
	case hir.ExprStmtData:
		loc := t.exprLoc(d.Expr)
		return t.emit(&facts.ExprStmt{Expr: t.emitExpr(d.Expr), HasSemi: d.HasSemi}, loc)
	case hir.ItemStmtData:
		return t.emit(&facts.ItemStmt{}, label.None)
	default:
		panic(fmt.Sprintf("extract: unhandled statement kind %s (%T)", s.Kind, s.Data))
	}
}
