package hir

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	// ExprMissing stands for an expression the parser could not recover.
	ExprMissing ExprKind = iota
	// ExprPath is a reference to a local, item or associated item.
	ExprPath
	// ExprIf is if/else.
	ExprIf
	// ExprLet is a `let PAT = EXPR` condition inside if/while chains.
	ExprLet
	// ExprBlock is a block in one of its variants (plain, async, const, unsafe).
	ExprBlock
	ExprLoop
	ExprCall
	ExprMethodCall
	ExprMatch
	ExprContinue
	ExprBreak
	ExprReturn
	// ExprBecome is a guaranteed tail call.
	ExprBecome
	ExprYield
	// ExprYeet propagates an early failure (`do yeet`).
	ExprYeet
	// ExprRecordLit is a struct literal; its fields are not lowered.
	ExprRecordLit
	ExprField
	ExprAwait
	ExprCast
	// ExprRef is `&e`, `&mut e`, `&raw const e`, `&raw mut e`.
	ExprRef
	ExprBox
	ExprUnaryOp
	ExprBinaryOp
	ExprRange
	ExprIndex
	ExprClosure
	ExprTuple
	// ExprArray is an array written as a list of elements.
	ExprArray
	// ExprArrayRepeat is an array written as `[init; count]`.
	ExprArrayRepeat
	ExprLiteral
	// ExprUnderscore is `_` in expression position (destructuring assignment).
	ExprUnderscore
	// ExprOffsetOf is `offset_of!(Type, field.path)`.
	ExprOffsetOf
	// ExprInlineAsm wraps an `asm!` block.
	ExprInlineAsm

	// NumExprKinds is the number of expression kinds.
	NumExprKinds
)

var exprKindNames = [NumExprKinds]string{
	ExprMissing:     "Missing",
	ExprPath:        "Path",
	ExprIf:          "If",
	ExprLet:         "Let",
	ExprBlock:       "Block",
	ExprLoop:        "Loop",
	ExprCall:        "Call",
	ExprMethodCall:  "MethodCall",
	ExprMatch:       "Match",
	ExprContinue:    "Continue",
	ExprBreak:       "Break",
	ExprReturn:      "Return",
	ExprBecome:      "Become",
	ExprYield:       "Yield",
	ExprYeet:        "Yeet",
	ExprRecordLit:   "RecordLit",
	ExprField:       "Field",
	ExprAwait:       "Await",
	ExprCast:        "Cast",
	ExprRef:         "Ref",
	ExprBox:         "Box",
	ExprUnaryOp:     "UnaryOp",
	ExprBinaryOp:    "BinaryOp",
	ExprRange:       "Range",
	ExprIndex:       "Index",
	ExprClosure:     "Closure",
	ExprTuple:       "Tuple",
	ExprArray:       "Array",
	ExprArrayRepeat: "ArrayRepeat",
	ExprLiteral:     "Literal",
	ExprUnderscore:  "Underscore",
	ExprOffsetOf:    "OffsetOf",
	ExprInlineAsm:   "InlineAsm",
}

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	if k >= NumExprKinds {
		return "Unknown"
	}
	return exprKindNames[k]
}

// Expr is one expression node.
type Expr struct {
	Kind ExprKind
	Data ExprData // Kind-specific payload
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprKind() ExprKind
}

type MissingData struct{}

func (MissingData) exprKind() ExprKind { return ExprMissing }

// PathData holds data for ExprPath.
type PathData struct {
	Path string // rendered path, e.g. "std::mem::swap"
}

func (PathData) exprKind() ExprKind { return ExprPath }

// IfData holds data for ExprIf.
type IfData struct {
	Condition ExprID
	Then      ExprID
	Else      ExprID // NoExprID if none
}

func (IfData) exprKind() ExprKind { return ExprIf }

// LetData holds data for ExprLet.
type LetData struct {
	Pat  PatID
	Expr ExprID
}

func (LetData) exprKind() ExprKind { return ExprLet }

// BlockVariant distinguishes the flavours of block expressions.
type BlockVariant uint8

const (
	BlockPlain BlockVariant = iota
	BlockAsync
	BlockConst
	BlockUnsafe
)

func (v BlockVariant) String() string {
	switch v {
	case BlockPlain:
		return "block"
	case BlockAsync:
		return "async"
	case BlockConst:
		return "const"
	case BlockUnsafe:
		return "unsafe"
	default:
		return "unknown"
	}
}

// BlockData holds data for ExprBlock.
type BlockData struct {
	Variant    BlockVariant
	Statements []Stmt
	Tail       ExprID  // NoExprID if the block ends with a statement
	Label      LabelID // NoLabelID if unlabeled
}

func (BlockData) exprKind() ExprKind { return ExprBlock }

// LoopData holds data for ExprLoop.
type LoopData struct {
	Body  ExprID
	Label LabelID
}

func (LoopData) exprKind() ExprKind { return ExprLoop }

// CallData holds data for ExprCall.
type CallData struct {
	Callee         ExprID
	Args           []ExprID
	IsAssigneeExpr bool
}

func (CallData) exprKind() ExprKind { return ExprCall }

// MethodCallData holds data for ExprMethodCall.
type MethodCallData struct {
	Receiver   ExprID
	MethodName string
	Args       []ExprID
}

func (MethodCallData) exprKind() ExprKind { return ExprMethodCall }

// MatchArm is one `pat if guard => expr` arm.
type MatchArm struct {
	Pat   PatID
	Guard ExprID // NoExprID if unguarded
	Expr  ExprID
}

// MatchData holds data for ExprMatch.
type MatchData struct {
	Expr ExprID
	Arms []MatchArm
}

func (MatchData) exprKind() ExprKind { return ExprMatch }

// ContinueData holds data for ExprContinue.
type ContinueData struct {
	Label LabelID
}

func (ContinueData) exprKind() ExprKind { return ExprContinue }

// BreakData holds data for ExprBreak.
type BreakData struct {
	Expr  ExprID
	Label LabelID
}

func (BreakData) exprKind() ExprKind { return ExprBreak }

// ReturnData holds data for ExprReturn.
type ReturnData struct {
	Expr ExprID
}

func (ReturnData) exprKind() ExprKind { return ExprReturn }

// BecomeData holds data for ExprBecome.
type BecomeData struct {
	Expr ExprID // always present
}

func (BecomeData) exprKind() ExprKind { return ExprBecome }

// YieldData holds data for ExprYield.
type YieldData struct {
	Expr ExprID
}

func (YieldData) exprKind() ExprKind { return ExprYield }

// YeetData holds data for ExprYeet.
type YeetData struct {
	Expr ExprID
}

func (YeetData) exprKind() ExprKind { return ExprYeet }

// RecordField is one `name: expr` initializer of a record literal.
type RecordField struct {
	Name string
	Expr ExprID
}

// RecordLitData holds data for ExprRecordLit.
type RecordLitData struct {
	Path           string
	Fields         []RecordField
	Spread         ExprID
	Ellipsis       bool
	IsAssigneeExpr bool
}

func (RecordLitData) exprKind() ExprKind { return ExprRecordLit }

// FieldData holds data for ExprField.
type FieldData struct {
	Expr ExprID
	Name string
}

func (FieldData) exprKind() ExprKind { return ExprField }

// AwaitData holds data for ExprAwait.
type AwaitData struct {
	Expr ExprID
}

func (AwaitData) exprKind() ExprKind { return ExprAwait }

// CastData holds data for ExprCast.
type CastData struct {
	Expr ExprID
	Type TypeRef
}

func (CastData) exprKind() ExprKind { return ExprCast }

// RefData holds data for ExprRef.
type RefData struct {
	Expr       ExprID
	Rawness    Rawness
	Mutability Mutability
}

func (RefData) exprKind() ExprKind { return ExprRef }

// BoxData holds data for ExprBox.
type BoxData struct {
	Expr ExprID
}

func (BoxData) exprKind() ExprKind { return ExprBox }

// UnaryOpData holds data for ExprUnaryOp.
type UnaryOpData struct {
	Op   UnaryOperator
	Expr ExprID
}

func (UnaryOpData) exprKind() ExprKind { return ExprUnaryOp }

// BinaryOpData holds data for ExprBinaryOp.
type BinaryOpData struct {
	Op  BinaryOperator
	Lhs ExprID
	Rhs ExprID
}

func (BinaryOpData) exprKind() ExprKind { return ExprBinaryOp }

// RangeData holds data for ExprRange. Either bound may be absent.
type RangeData struct {
	Lhs ExprID
	Rhs ExprID
	Op  RangeOp
}

func (RangeData) exprKind() ExprKind { return ExprRange }

// IndexData holds data for ExprIndex.
type IndexData struct {
	Base           ExprID
	Index          ExprID
	IsAssigneeExpr bool
}

func (IndexData) exprKind() ExprKind { return ExprIndex }

// ClosureData holds data for ExprClosure.
type ClosureData struct {
	Args      []PatID
	ArgTypes  []*TypeRef // parallel to Args; nil where the type was omitted
	RetType   *TypeRef
	Body      ExprID
	CaptureBy CaptureBy
}

func (ClosureData) exprKind() ExprKind { return ExprClosure }

// TupleData holds data for ExprTuple.
type TupleData struct {
	Exprs          []ExprID
	IsAssigneeExpr bool
}

func (TupleData) exprKind() ExprKind { return ExprTuple }

// ArrayData holds data for ExprArray.
type ArrayData struct {
	Elements       []ExprID
	IsAssigneeExpr bool
}

func (ArrayData) exprKind() ExprKind { return ExprArray }

// ArrayRepeatData holds data for ExprArrayRepeat.
type ArrayRepeatData struct {
	Initializer ExprID
	Repeat      ExprID
}

func (ArrayRepeatData) exprKind() ExprKind { return ExprArrayRepeat }

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Text string // literal as written
}

func (LiteralData) exprKind() ExprKind { return ExprLiteral }

type UnderscoreData struct{}

func (UnderscoreData) exprKind() ExprKind { return ExprUnderscore }

// OffsetOfData holds data for ExprOffsetOf.
type OffsetOfData struct {
	Container TypeRef
	Fields    []string
}

func (OffsetOfData) exprKind() ExprKind { return ExprOffsetOf }

// InlineAsmData holds data for ExprInlineAsm.
type InlineAsmData struct {
	Expr ExprID
}

func (InlineAsmData) exprKind() ExprKind { return ExprInlineAsm }

// TypeRef is a type written in source. Only its text is kept.
type TypeRef struct {
	Text string
}
