package hir

// PatKind enumerates pattern kinds.
type PatKind uint8

const (
	PatMissing PatKind = iota
	PatWild
	PatTuple
	PatOr
	// PatRecord is a struct pattern; its fields are not lowered.
	PatRecord
	PatRange
	PatSlice
	// PatPath is a unit struct/variant or constant path; not lowered further.
	PatPath
	PatLit
	PatBind
	// PatTupleStruct is `Path(a, b)`; its fields are not lowered.
	PatTupleStruct
	PatRef
	PatBox
	PatConstBlock

	// NumPatKinds is the number of pattern kinds.
	NumPatKinds
)

var patKindNames = [NumPatKinds]string{
	PatMissing:     "Missing",
	PatWild:        "Wild",
	PatTuple:       "Tuple",
	PatOr:          "Or",
	PatRecord:      "Record",
	PatRange:       "Range",
	PatSlice:       "Slice",
	PatPath:        "Path",
	PatLit:         "Lit",
	PatBind:        "Bind",
	PatTupleStruct: "TupleStruct",
	PatRef:         "Ref",
	PatBox:         "Box",
	PatConstBlock:  "ConstBlock",
}

// String returns a human-readable name for the pattern kind.
func (k PatKind) String() string {
	if k >= NumPatKinds {
		return "Unknown"
	}
	return patKindNames[k]
}

// Pat is one pattern node.
type Pat struct {
	Kind PatKind
	Data PatData // Kind-specific payload
}

// PatData is the interface for pattern-specific data.
type PatData interface {
	patKind() PatKind
}

type MissingPatData struct{}

func (MissingPatData) patKind() PatKind { return PatMissing }

type WildPatData struct{}

func (WildPatData) patKind() PatKind { return PatWild }

// TuplePatData holds data for PatTuple.
type TuplePatData struct {
	Args []PatID
	// Ellipsis is the position of `..` among Args, nil if there is none.
	Ellipsis *uint32
}

func (TuplePatData) patKind() PatKind { return PatTuple }

// OrPatData holds data for PatOr.
type OrPatData struct {
	Args []PatID
}

func (OrPatData) patKind() PatKind { return PatOr }

// RecordFieldPat is one `name: pat` entry of a record pattern.
type RecordFieldPat struct {
	Name string
	Pat  PatID
}

// RecordPatData holds data for PatRecord.
type RecordPatData struct {
	Path     string
	Args     []RecordFieldPat
	Ellipsis bool
}

func (RecordPatData) patKind() PatKind { return PatRecord }

// RangeBound is one side of a range pattern: a literal or a constant.
type RangeBound interface {
	rangeBound()
}

// LiteralBound is a literal written directly in the range pattern.
type LiteralBound struct {
	Text string
}

func (LiteralBound) rangeBound() {}

// ConstBound refers to a constant through a path pattern.
type ConstBound struct {
	Pat PatID
}

func (ConstBound) rangeBound() {}

// RangePatData holds data for PatRange. Either bound may be nil.
type RangePatData struct {
	Start RangeBound
	End   RangeBound
}

func (RangePatData) patKind() PatKind { return PatRange }

// SlicePatData holds data for PatSlice: `[prefix.., rest @ .., suffix..]`.
type SlicePatData struct {
	Prefix []PatID
	Slice  PatID // NoPatID if there is no rest binding
	Suffix []PatID
}

func (SlicePatData) patKind() PatKind { return PatSlice }

// PathPatData holds data for PatPath.
type PathPatData struct {
	Path string
}

func (PathPatData) patKind() PatKind { return PatPath }

// LitPatData holds data for PatLit.
type LitPatData struct {
	Expr ExprID
}

func (LitPatData) patKind() PatKind { return PatLit }

// BindPatData holds data for PatBind.
type BindPatData struct {
	Binding BindingID
	Subpat  PatID // NoPatID unless `name @ subpat`
}

func (BindPatData) patKind() PatKind { return PatBind }

// TupleStructPatData holds data for PatTupleStruct.
type TupleStructPatData struct {
	Path     string
	Args     []PatID
	Ellipsis *uint32
}

func (TupleStructPatData) patKind() PatKind { return PatTupleStruct }

// RefPatData holds data for PatRef.
type RefPatData struct {
	Pat        PatID
	Mutability Mutability
}

func (RefPatData) patKind() PatKind { return PatRef }

// BoxPatData holds data for PatBox.
type BoxPatData struct {
	Inner PatID
}

func (BoxPatData) patKind() PatKind { return PatBox }

// ConstBlockPatData holds data for PatConstBlock.
type ConstBlockPatData struct {
	Expr ExprID
}

func (ConstBlockPatData) patKind() PatKind { return PatConstBlock }
