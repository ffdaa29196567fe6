package snapshot

import (
	"fmt"

	"cratefacts/internal/hir"
)

// node names one expression or pattern of a body during the cycle walk.
type node struct {
	pat bool
	id  uint32
}

func (n node) String() string {
	if n.pat {
		return fmt.Sprintf("pattern %d", n.id)
	}
	return fmt.Sprintf("expression %d", n.id)
}

type mark uint8

const (
	unvisited mark = iota
	visiting
	visited
)

// checkAcyclic rejects a body whose expression and pattern references
// loop back on themselves.
func checkAcyclic(body *hir.Body) error {
	marks := make(map[node]mark, body.NumExprs()+body.NumPats())
	var walk func(n node) error
	walk = func(n node) error {
		switch marks[n] {
		case visiting:
			return fmt.Errorf("%s is its own descendant", n)
		case visited:
			return nil
		}
		marks[n] = visiting
		for _, c := range children(body, n) {
			if err := walk(c); err != nil {
				return err
			}
		}
		marks[n] = visited
		return nil
	}
	for i := 1; i <= body.NumExprs(); i++ {
		if err := walk(node{id: uint32(i)}); err != nil {
			return err
		}
	}
	for i := 1; i <= body.NumPats(); i++ {
		if err := walk(node{pat: true, id: uint32(i)}); err != nil {
			return err
		}
	}
	return nil
}

type edges []node

func (e *edges) expr(ids ...hir.ExprID) {
	for _, id := range ids {
		if id != hir.NoExprID {
			*e = append(*e, node{id: uint32(id)})
		}
	}
}

func (e *edges) pat(ids ...hir.PatID) {
	for _, id := range ids {
		if id != hir.NoPatID {
			*e = append(*e, node{pat: true, id: uint32(id)})
		}
	}
}

func (e *edges) bound(b hir.RangeBound) {
	if c, ok := b.(hir.ConstBound); ok {
		e.pat(c.Pat)
	}
}

func children(body *hir.Body, n node) edges {
	var out edges
	if n.pat {
		p := body.Pat(hir.PatID(n.id))
		if p == nil {
			return nil
		}
		switch d := p.Data.(type) {
		case hir.TuplePatData:
			out.pat(d.Args...)
		case hir.OrPatData:
			out.pat(d.Args...)
		case hir.RangePatData:
			out.bound(d.Start)
			out.bound(d.End)
		case hir.SlicePatData:
			out.pat(d.Prefix...)
			out.pat(d.Slice)
			out.pat(d.Suffix...)
		case hir.LitPatData:
			out.expr(d.Expr)
		case hir.BindPatData:
			out.pat(d.Subpat)
		case hir.TupleStructPatData:
			out.pat(d.Args...)
		case hir.RefPatData:
			out.pat(d.Pat)
		case hir.BoxPatData:
			out.pat(d.Inner)
		case hir.ConstBlockPatData:
			out.expr(d.Expr)
		}
		return out
	}

	e := body.Expr(hir.ExprID(n.id))
	if e == nil {
		return nil
	}
	switch d := e.Data.(type) {
	case hir.IfData:
		out.expr(d.Condition, d.Then, d.Else)
	case hir.LetData:
		out.pat(d.Pat)
		out.expr(d.Expr)
	case hir.BlockData:
		for _, s := range d.Statements {
			switch sd := s.Data.(type) {
			case hir.LetStmtData:
				out.pat(sd.Pat)
				out.expr(sd.Initializer, sd.Else)
			case hir.ExprStmtData:
				out.expr(sd.Expr)
			}
		}
		out.expr(d.Tail)
	case hir.LoopData:
		out.expr(d.Body)
	case hir.CallData:
		out.expr(d.Callee)
		out.expr(d.Args...)
	case hir.MethodCallData:
		out.expr(d.Receiver)
		out.expr(d.Args...)
	case hir.MatchData:
		out.expr(d.Expr)
		for _, a := range d.Arms {
			out.pat(a.Pat)
			out.expr(a.Guard, a.Expr)
		}
	case hir.BreakData:
		out.expr(d.Expr)
	case hir.ReturnData:
		out.expr(d.Expr)
	case hir.BecomeData:
		out.expr(d.Expr)
	case hir.YieldData:
		out.expr(d.Expr)
	case hir.YeetData:
		out.expr(d.Expr)
	case hir.RecordLitData:
		out.expr(d.Spread)
	case hir.FieldData:
		out.expr(d.Expr)
	case hir.AwaitData:
		out.expr(d.Expr)
	case hir.CastData:
		out.expr(d.Expr)
	case hir.RefData:
		out.expr(d.Expr)
	case hir.BoxData:
		out.expr(d.Expr)
	case hir.UnaryOpData:
		out.expr(d.Expr)
	case hir.BinaryOpData:
		out.expr(d.Lhs, d.Rhs)
	case hir.RangeData:
		out.expr(d.Lhs, d.Rhs)
	case hir.IndexData:
		out.expr(d.Base, d.Index)
	case hir.ClosureData:
		out.pat(d.Args...)
		out.expr(d.Body)
	case hir.TupleData:
		out.expr(d.Exprs...)
	case hir.ArrayData:
		out.expr(d.Elements...)
	case hir.ArrayRepeatData:
		out.expr(d.Initializer, d.Repeat)
	case hir.InlineAsmData:
		out.expr(d.Expr)
	}
	return out
}
