package facts

import "cratefacts/internal/label"

type MissingPat struct {
	Entity
}

type WildPat struct {
	Entity
}

type TuplePat struct {
	Entity
	Args     []label.Label `msgpack:"args"`
	Ellipsis *uint32       `msgpack:"ellipsis"`
}

type OrPat struct {
	Entity
	Args []label.Label `msgpack:"args"`
}

// RecordPat is a struct pattern. Fields are not lowered.
type RecordPat struct {
	Entity
}

type RangePat struct {
	Entity
	Start label.Label `msgpack:"start"`
	End   label.Label `msgpack:"end"`
}

type SlicePat struct {
	Entity
	Prefix []label.Label `msgpack:"prefix"`
	Slice  label.Label   `msgpack:"slice"`
	Suffix []label.Label `msgpack:"suffix"`
}

// PathPat is a path pattern. The path is not lowered.
type PathPat struct {
	Entity
}

type LitPat struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

type BindPat struct {
	Entity
	BindingID string      `msgpack:"binding_id"`
	Subpat    label.Label `msgpack:"subpat"`
}

// TupleStructPat is a tuple-struct pattern. Fields are not lowered.
type TupleStructPat struct {
	Entity
}

type RefPat struct {
	Entity
	Pat   label.Label `msgpack:"pat"`
	IsMut bool        `msgpack:"is_mut"`
}

type BoxPat struct {
	Entity
	Inner label.Label `msgpack:"inner"`
}

type ConstBlockPat struct {
	Entity
	Expr label.Label `msgpack:"expr"`
}

func (*MissingPat) Kind() Kind     { return KindMissingPat }
func (*WildPat) Kind() Kind        { return KindWildPat }
func (*TuplePat) Kind() Kind       { return KindTuplePat }
func (*OrPat) Kind() Kind          { return KindOrPat }
func (*RecordPat) Kind() Kind      { return KindRecordPat }
func (*RangePat) Kind() Kind       { return KindRangePat }
func (*SlicePat) Kind() Kind       { return KindSlicePat }
func (*PathPat) Kind() Kind        { return KindPathPat }
func (*LitPat) Kind() Kind         { return KindLitPat }
func (*BindPat) Kind() Kind        { return KindBindPat }
func (*TupleStructPat) Kind() Kind { return KindTupleStructPat }
func (*RefPat) Kind() Kind         { return KindRefPat }
func (*BoxPat) Kind() Kind         { return KindBoxPat }
func (*ConstBlockPat) Kind() Kind  { return KindConstBlockPat }
