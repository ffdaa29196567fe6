package hir

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	// StmtLet is `let pat: ty = init else { ... };`.
	StmtLet StmtKind = iota
	// StmtExpr is an expression used as a statement.
	StmtExpr
	// StmtItem is an item declared inside a body.
	StmtItem
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtLet:
		return "Let"
	case StmtExpr:
		return "Expr"
	case StmtItem:
		return "Item"
	default:
		return "Unknown"
	}
}

// Stmt represents one statement of a block.
type Stmt struct {
	Kind StmtKind
	Data StmtData // Kind-specific payload
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtKind() StmtKind
}

// LetStmtData holds data for StmtLet.
type LetStmtData struct {
	Pat         PatID
	Type        *TypeRef // nil if not annotated
	Initializer ExprID
	Else        ExprID // diverging branch of a refutable let
}

func (LetStmtData) stmtKind() StmtKind { return StmtLet }

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr    ExprID
	HasSemi bool
}

func (ExprStmtData) stmtKind() StmtKind { return StmtExpr }

// ItemStmtData holds data for StmtItem.
type ItemStmtData struct{}

func (ItemStmtData) stmtKind() StmtKind { return StmtItem }

// NewStmt wraps statement data, filling in its kind.
func NewStmt(data StmtData) Stmt {
	return Stmt{Kind: data.stmtKind(), Data: data}
}
