package facts

import "cratefacts/internal/label"

type MissingExpr struct {
	Entity
}

// Path is a path expression; Text is the path as written.
type Path struct {
	Entity
	Text string `msgpack:"text"`
}

type If struct {
	Entity
	Condition label.Label `msgpack:"condition"`
	Then      label.Label `msgpack:"then"`
	Else      label.Label `msgpack:"else"`
}

type Let struct {
	Entity
	Pat  label.Label `msgpack:"pat"`
	Expr label.Label `msgpack:"expr"`
}

// BlockBody is shared by the block variants.
type BlockBody struct {
	Statements []label.Label `msgpack:"statements"`
	Tail       label.Label   `msgpack:"tail"`
	LabelRef   label.Label   `msgpack:"label"`
}

type Block struct {
	Entity
	BlockBody
}

type AsyncBlock struct {
	Entity
	BlockBody
}

type ConstBlock struct {
	Entity
	BlockBody
}

type UnsafeBlock struct {
	Entity
	BlockBody
}

type Loop struct {
	Entity
	Body     label.Label `msgpack:"body"`
	LabelRef label.Label `msgpack:"label"`
}

type Call struct {
	Entity
	Callee         label.Label   `msgpack:"callee"`
	Args           []label.Label `msgpack:"args"`
	IsAssigneeExpr bool          `msgpack:"is_assignee_expr"`
}

type MethodCall struct {
	Entity
	Receiver   label.Label   `msgpack:"receiver"`
	MethodName string        `msgpack:"method_name"`
	Args       []label.Label `msgpack:"args"`
}

type Match struct {
	Entity
	Expr     label.Label   `msgpack:"expr"`
	Branches []label.Label `msgpack:"branches"`
}

type Continue struct {
	Entity
	LabelRef label.Label `msgpack:"label"`
}

type Break struct {
	Entity
	Expr     label.Label `msgpack:"expr"`
	LabelRef label.Label `msgpack:"label"`
}

type Return struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

type Become struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

type Yield struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

type Yeet struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

// RecordLit is a struct literal. Fields are not lowered.
type RecordLit struct {
	Entity
}

type Field struct {
	Entity
	Expr label.Label `msgpack:"expr"`
	Name string      `msgpack:"name"`
}

type Await struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

type Cast struct {
	Entity
	Expr    label.Label `msgpack:"expr"`
	TypeRef label.Label `msgpack:"type_ref"`
}

type Ref struct {
	Entity
	Expr  label.Label `msgpack:"expr"`
	IsMut bool        `msgpack:"is_mut"`
	IsRaw bool        `msgpack:"is_raw"`
}

type Box struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

// UnaryOp carries its operator as "*", "!" or "-".
type UnaryOp struct {
	Entity
	Expr label.Label `msgpack:"expr"`
	Op   string      `msgpack:"op"`
}

// BinaryOp carries its operator as written; Op is empty when the parser
// could not recover it.
type BinaryOp struct {
	Entity
	Lhs label.Label `msgpack:"lhs"`
	Rhs label.Label `msgpack:"rhs"`
	Op  string      `msgpack:"op"`
}

type Range struct {
	Entity
	Lhs         label.Label `msgpack:"lhs"`
	Rhs         label.Label `msgpack:"rhs"`
	IsInclusive bool        `msgpack:"is_inclusive"`
}

type Index struct {
	Entity
	Base           label.Label `msgpack:"base"`
	Index          label.Label `msgpack:"index"`
	IsAssigneeExpr bool        `msgpack:"is_assignee_expr"`
}

// Closure lists its parameter patterns together with their optional type
// annotations (label.None where omitted).
type Closure struct {
	Entity
	Args     []label.Label `msgpack:"args"`
	ArgTypes []label.Label `msgpack:"arg_types"`
	Body     label.Label   `msgpack:"body"`
	RetType  label.Label   `msgpack:"ret_type"`
	IsMove   bool          `msgpack:"is_move"`
}

type Tuple struct {
	Entity
	Exprs          []label.Label `msgpack:"exprs"`
	IsAssigneeExpr bool          `msgpack:"is_assignee_expr"`
}

type ElementList struct {
	Entity
	Elements       []label.Label `msgpack:"elements"`
	IsAssigneeExpr bool          `msgpack:"is_assignee_expr"`
}

type Repeat struct {
	Entity
	Initializer label.Label `msgpack:"initializer"`
	Repeat      label.Label `msgpack:"repeat"`
}

type Literal struct {
	Entity
	Text string `msgpack:"text"`
}

type Underscore struct {
	Entity
}

type OffsetOf struct {
	Entity
	Container label.Label `msgpack:"container"`
	Fields    []string    `msgpack:"fields"`
}

type InlineAsm struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

func (*MissingExpr) Kind() Kind { return KindMissingExpr }
func (*Path) Kind() Kind        { return KindPath }
func (*If) Kind() Kind          { return KindIf }
func (*Let) Kind() Kind         { return KindLet }
func (*Block) Kind() Kind       { return KindBlock }
func (*AsyncBlock) Kind() Kind  { return KindAsyncBlock }
func (*ConstBlock) Kind() Kind  { return KindConstBlock }
func (*UnsafeBlock) Kind() Kind { return KindUnsafeBlock }
func (*Loop) Kind() Kind        { return KindLoop }
func (*Call) Kind() Kind        { return KindCall }
func (*MethodCall) Kind() Kind  { return KindMethodCall }
func (*Match) Kind() Kind       { return KindMatch }
func (*Continue) Kind() Kind    { return KindContinue }
func (*Break) Kind() Kind       { return KindBreak }
func (*Return) Kind() Kind      { return KindReturn }
func (*Become) Kind() Kind      { return KindBecome }
func (*Yield) Kind() Kind       { return KindYield }
func (*Yeet) Kind() Kind        { return KindYeet }
func (*RecordLit) Kind() Kind   { return KindRecordLit }
func (*Field) Kind() Kind       { return KindField }
func (*Await) Kind() Kind       { return KindAwait }
func (*Cast) Kind() Kind        { return KindCast }
func (*Ref) Kind() Kind         { return KindRef }
func (*Box) Kind() Kind         { return KindBox }
func (*UnaryOp) Kind() Kind     { return KindUnaryOp }
func (*BinaryOp) Kind() Kind    { return KindBinaryOp }
func (*Range) Kind() Kind       { return KindRange }
func (*Index) Kind() Kind       { return KindIndex }
func (*Closure) Kind() Kind     { return KindClosure }
func (*Tuple) Kind() Kind       { return KindTuple }
func (*ElementList) Kind() Kind { return KindElementList }
func (*Repeat) Kind() Kind      { return KindRepeat }
func (*Literal) Kind() Kind     { return KindLiteral }
func (*Underscore) Kind() Kind  { return KindUnderscore }
func (*OffsetOf) Kind() Kind    { return KindOffsetOf }
func (*InlineAsm) Kind() Kind   { return KindInlineAsm }
