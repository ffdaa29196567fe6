package hir

// Crate is one compilation unit.
type Crate interface {
	// Name returns the crate's display name.
	Name() string
	// RootFile returns the file of the crate root module.
	RootFile() FileID
	// Modules lists every module of the crate, each one after its parent.
	Modules() []*Module
	// BodyWithSourceMap returns the lowered body of a function. ok is false
	// for functions that have no body eligible for lowering.
	BodyWithSourceMap(fn FunctionID) (body *Body, sourceMap SourceMap, ok bool)
}

// Module is one module of a crate.
type Module struct {
	ID     ModuleID
	Parent ModuleID // NoModuleID for the crate root
	Name   string   // empty for the crate root
	// Definition is the file that syntactically defines the module.
	Definition HirFileID
	// Declarations lists the items declared directly in the module, in
	// declaration order.
	Declarations []Def
}

// IsRoot reports whether m is the crate root.
func (m *Module) IsRoot() bool {
	return !m.Parent.IsValid()
}

// DefKind enumerates the kinds of module-level declarations.
type DefKind uint8

const (
	DefModule DefKind = iota
	DefFunction
	DefAdt
	DefVariant
	DefConst
	DefStatic
	DefTrait
	DefTraitAlias
	DefTypeAlias
	DefBuiltinType
	DefMacro
)

func (k DefKind) String() string {
	switch k {
	case DefModule:
		return "module"
	case DefFunction:
		return "function"
	case DefAdt:
		return "adt"
	case DefVariant:
		return "variant"
	case DefConst:
		return "const"
	case DefStatic:
		return "static"
	case DefTrait:
		return "trait"
	case DefTraitAlias:
		return "trait-alias"
	case DefTypeAlias:
		return "type-alias"
	case DefBuiltinType:
		return "builtin-type"
	case DefMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// ParseDefKind converts the textual kind back; ok is false for unknown names.
func ParseDefKind(s string) (DefKind, bool) {
	for k := DefModule; k <= DefMacro; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Def is a module-level declaration.
type Def interface {
	DefKind() DefKind
	DefName() string
}

// Function is a function declaration.
type Function struct {
	ID   FunctionID
	Name string
	// Source is the range of the whole function item; HasSource is false when
	// the upstream map could not place it.
	Source    InFile
	HasSource bool
}

func (*Function) DefKind() DefKind  { return DefFunction }
func (f *Function) DefName() string { return f.Name }

// Item is any other declaration. It is listed but not lowered.
type Item struct {
	Kind DefKind
	Name string
}

func (i *Item) DefKind() DefKind { return i.Kind }
func (i *Item) DefName() string  { return i.Name }
