// Package facts defines the rows written to the fact database.
//
// Every row embeds Entity, which carries the row's own label and the label of
// its Location row (label.None when unknown). Child references are labels of
// rows emitted earlier in the same run.
package facts

import "fmt"

// Kind enumerates row kinds.
type Kind uint8

const (
	KindFile Kind = iota + 1
	KindLocation
	KindModule
	KindFunction
	KindLabel
	KindTypeRef
	KindMatchArm

	// expressions
	KindMissingExpr
	KindPath
	KindIf
	KindLet
	KindBlock
	KindAsyncBlock
	KindConstBlock
	KindUnsafeBlock
	KindLoop
	KindCall
	KindMethodCall
	KindMatch
	KindContinue
	KindBreak
	KindReturn
	KindBecome
	KindYield
	KindYeet
	KindRecordLit
	KindField
	KindAwait
	KindCast
	KindRef
	KindBox
	KindUnaryOp
	KindBinaryOp
	KindRange
	KindIndex
	KindClosure
	KindTuple
	KindElementList
	KindRepeat
	KindLiteral
	KindUnderscore
	KindOffsetOf
	KindInlineAsm

	// patterns
	KindMissingPat
	KindWildPat
	KindTuplePat
	KindOrPat
	KindRecordPat
	KindRangePat
	KindSlicePat
	KindPathPat
	KindLitPat
	KindBindPat
	KindTupleStructPat
	KindRefPat
	KindBoxPat
	KindConstBlockPat

	// statements
	KindLetStmt
	KindExprStmt
	KindItemStmt

	kindEnd
)

type kindInfo struct {
	name string
	new  func() Row
}

var kinds = [kindEnd]kindInfo{
	KindFile:     {"File", func() Row { return new(File) }},
	KindLocation: {"Location", func() Row { return new(Location) }},
	KindModule:   {"Module", func() Row { return new(Module) }},
	KindFunction: {"Function", func() Row { return new(Function) }},
	KindLabel:    {"Label", func() Row { return new(Label) }},
	KindTypeRef:  {"TypeRef", func() Row { return new(TypeRef) }},
	KindMatchArm: {"MatchArm", func() Row { return new(MatchArm) }},

	KindMissingExpr: {"MissingExpr", func() Row { return new(MissingExpr) }},
	KindPath:        {"Path", func() Row { return new(Path) }},
	KindIf:          {"If", func() Row { return new(If) }},
	KindLet:         {"Let", func() Row { return new(Let) }},
	KindBlock:       {"Block", func() Row { return new(Block) }},
	KindAsyncBlock:  {"AsyncBlock", func() Row { return new(AsyncBlock) }},
	KindConstBlock:  {"ConstBlock", func() Row { return new(ConstBlock) }},
	KindUnsafeBlock: {"UnsafeBlock", func() Row { return new(UnsafeBlock) }},
	KindLoop:        {"Loop", func() Row { return new(Loop) }},
	KindCall:        {"Call", func() Row { return new(Call) }},
	KindMethodCall:  {"MethodCall", func() Row { return new(MethodCall) }},
	KindMatch:       {"Match", func() Row { return new(Match) }},
	KindContinue:    {"Continue", func() Row { return new(Continue) }},
	KindBreak:       {"Break", func() Row { return new(Break) }},
	KindReturn:      {"Return", func() Row { return new(Return) }},
	KindBecome:      {"Become", func() Row { return new(Become) }},
	KindYield:       {"Yield", func() Row { return new(Yield) }},
	KindYeet:        {"Yeet", func() Row { return new(Yeet) }},
	KindRecordLit:   {"RecordLit", func() Row { return new(RecordLit) }},
	KindField:       {"Field", func() Row { return new(Field) }},
	KindAwait:       {"Await", func() Row { return new(Await) }},
	KindCast:        {"Cast", func() Row { return new(Cast) }},
	KindRef:         {"Ref", func() Row { return new(Ref) }},
	KindBox:         {"Box", func() Row { return new(Box) }},
	KindUnaryOp:     {"UnaryOp", func() Row { return new(UnaryOp) }},
	KindBinaryOp:    {"BinaryOp", func() Row { return new(BinaryOp) }},
	KindRange:       {"Range", func() Row { return new(Range) }},
	KindIndex:       {"Index", func() Row { return new(Index) }},
	KindClosure:     {"Closure", func() Row { return new(Closure) }},
	KindTuple:       {"Tuple", func() Row { return new(Tuple) }},
	KindElementList: {"ElementList", func() Row { return new(ElementList) }},
	KindRepeat:      {"Repeat", func() Row { return new(Repeat) }},
	KindLiteral:     {"Literal", func() Row { return new(Literal) }},
	KindUnderscore:  {"Underscore", func() Row { return new(Underscore) }},
	KindOffsetOf:    {"OffsetOf", func() Row { return new(OffsetOf) }},
	KindInlineAsm:   {"InlineAsm", func() Row { return new(InlineAsm) }},

	KindMissingPat:     {"MissingPat", func() Row { return new(MissingPat) }},
	KindWildPat:        {"WildPat", func() Row { return new(WildPat) }},
	KindTuplePat:       {"TuplePat", func() Row { return new(TuplePat) }},
	KindOrPat:          {"OrPat", func() Row { return new(OrPat) }},
	KindRecordPat:      {"RecordPat", func() Row { return new(RecordPat) }},
	KindRangePat:       {"RangePat", func() Row { return new(RangePat) }},
	KindSlicePat:       {"SlicePat", func() Row { return new(SlicePat) }},
	KindPathPat:        {"PathPat", func() Row { return new(PathPat) }},
	KindLitPat:         {"LitPat", func() Row { return new(LitPat) }},
	KindBindPat:        {"BindPat", func() Row { return new(BindPat) }},
	KindTupleStructPat: {"TupleStructPat", func() Row { return new(TupleStructPat) }},
	KindRefPat:         {"RefPat", func() Row { return new(RefPat) }},
	KindBoxPat:         {"BoxPat", func() Row { return new(BoxPat) }},
	KindConstBlockPat:  {"ConstBlockPat", func() Row { return new(ConstBlockPat) }},

	KindLetStmt:  {"LetStmt", func() Row { return new(LetStmt) }},
	KindExprStmt: {"ExprStmt", func() Row { return new(ExprStmt) }},
	KindItemStmt: {"ItemStmt", func() Row { return new(ItemStmt) }},
}

func (k Kind) valid() bool {
	return k > 0 && k < kindEnd
}

// String returns the row kind's table name.
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// Kinds returns every row kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindEnd-1)
	for k := KindFile; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// New returns an empty row of the given kind, for decoding.
func New(k Kind) (Row, error) {
	if !k.valid() {
		return nil, fmt.Errorf("facts: unknown row kind %d", uint8(k))
	}
	return kinds[k].new(), nil
}

// ParseKind maps a table name back to its kind.
func ParseKind(name string) (Kind, bool) {
	for k := KindFile; k < kindEnd; k++ {
		if kinds[k].name == name {
			return k, true
		}
	}
	return 0, false
}
