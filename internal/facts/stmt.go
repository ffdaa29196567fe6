package facts

import "cratefacts/internal/label"

type LetStmt struct {
	Entity
	Pat         label.Label `msgpack:"pat"`
	TypeRef     label.Label `msgpack:"type_ref"`
	Initializer label.Label `msgpack:"initializer"`
	Else        label.Label `msgpack:"else"`
}

type ExprStmt struct {
	Entity
	Expr    label.Label `msgpack:"expr"`
	HasSemi bool        `msgpack:"has_semi"`
}

// ItemStmt is an item declared inside a body. It has no location.
type ItemStmt struct {
	Entity
}

func (*LetStmt) Kind() Kind  { return KindLetStmt }
func (*ExprStmt) Kind() Kind { return KindExprStmt }
func (*ItemStmt) Kind() Kind { return KindItemStmt }
