package facts

import "cratefacts/internal/label"

// Row is one fact.
type Row interface {
	Kind() Kind
	// Label is the row's own identity.
	Label() label.Label
	// Loc is the label of the row's Location, label.None if unknown.
	Loc() label.Label
}

// Entity is embedded in every row.
type Entity struct {
	ID       label.Label `msgpack:"id"`
	Location label.Label `msgpack:"loc"`
}

func (e Entity) Label() label.Label { return e.ID }
func (e Entity) Loc() label.Label   { return e.Location }

// Init sets the row's identity and location.
func (e *Entity) Init(id, loc label.Label) {
	e.ID = id
	e.Location = loc
}

// File is a source file, keyed by its canonical path.
type File struct {
	Entity
	Name   string `msgpack:"name"`
	Digest uint64 `msgpack:"digest"`
}

// Location is a span inside a file. Lines and columns are 1-based and the
// end position is inclusive.
type Location struct {
	Entity
	File        label.Label `msgpack:"file"`
	StartLine   uint32      `msgpack:"start_line"`
	StartColumn uint32      `msgpack:"start_column"`
	EndLine     uint32      `msgpack:"end_line"`
	EndColumn   uint32      `msgpack:"end_column"`
}

// Module lists the lowered declarations of one module.
type Module struct {
	Entity
	Name         string        `msgpack:"name"`
	Declarations []label.Label `msgpack:"declarations"`
}

// Function is a function with a lowered body.
type Function struct {
	Entity
	Name string      `msgpack:"name"`
	Body label.Label `msgpack:"body"`
}

// Label is a loop or block label.
type Label struct {
	Entity
	Name string `msgpack:"name"`
}

// TypeRef is a type annotation. Its structure is not lowered.
type TypeRef struct {
	Entity
}

// MatchArm is one arm of a Match.
type MatchArm struct {
	Entity
	Pat   label.Label `msgpack:"pat"`
	Guard label.Label `msgpack:"guard"`
	Expr  label.Label `msgpack:"expr"`
}

func (*File) Kind() Kind     { return KindFile }
func (*Location) Kind() Kind { return KindLocation }
func (*Module) Kind() Kind   { return KindModule }
func (*Function) Kind() Kind { return KindFunction }
func (*Label) Kind() Kind    { return KindLabel }
func (*TypeRef) Kind() Kind  { return KindTypeRef }
func (*MatchArm) Kind() Kind { return KindMatchArm }
