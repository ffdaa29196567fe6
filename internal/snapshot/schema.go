package snapshot

// document is the YAML layout of a crate snapshot.
//
//	crate: demo
//	root: 1
//	files:
//	  - {id: 1, path: src/lib.rs}
//	modules:
//	  - id: 1
//	    file: 1
//	    items:
//	      - {kind: function, id: 1, name: f, at: {file: 1, start: 0, end: 29}}
//	bodies:
//	  - function: 1
//	    root: 4
//	    exprs:
//	      - {kind: Path, path: x, at: {file: 1, start: 22, end: 23}}
//	      ...
//
// Node references are 1-based positions in the body's exprs, pats and
// labels lists; 0 or an omitted field means none.
type document struct {
	Crate       string        `yaml:"crate"`
	Root        uint32        `yaml:"root"`
	LabelFaults bool          `yaml:"label_faults"`
	Files       []fileEntry   `yaml:"files"`
	Modules     []moduleEntry `yaml:"modules"`
	Bodies      []bodyEntry   `yaml:"bodies"`
}

type fileEntry struct {
	ID   uint32  `yaml:"id"`
	Path string  `yaml:"path"` // relative to the snapshot; empty for virtual files
	Text *string `yaml:"text"` // overrides the on-disk content
}

type span struct {
	File  uint32 `yaml:"file"`
	Start uint32 `yaml:"start"`
	End   uint32 `yaml:"end"`
	Macro bool   `yaml:"macro"`
}

type moduleEntry struct {
	ID     uint32      `yaml:"id"`
	Parent uint32      `yaml:"parent"`
	Name   string      `yaml:"name"`
	File   uint32      `yaml:"file"`
	Macro  bool        `yaml:"macro"`
	Items  []itemEntry `yaml:"items"`
}

type itemEntry struct {
	Kind string `yaml:"kind"`
	ID   uint32 `yaml:"id"`
	Name string `yaml:"name"`
	At   *span  `yaml:"at"`
}

type bodyEntry struct {
	Function uint32       `yaml:"function"`
	Root     uint32       `yaml:"root"`
	Params   []uint32     `yaml:"params"`
	Exprs    []exprNode   `yaml:"exprs"`
	Pats     []patNode    `yaml:"pats"`
	Labels   []labelEntry `yaml:"labels"`
}

type labelEntry struct {
	Name string `yaml:"name"`
	At   *span  `yaml:"at"`
}

type exprNode struct {
	Kind string `yaml:"kind"`
	At   *span  `yaml:"at"`

	Path     string   `yaml:"path"`
	Text     string   `yaml:"text"`
	Name     string   `yaml:"name"`
	Method   string   `yaml:"method"`
	Op       string   `yaml:"op"`
	Variant  string   `yaml:"variant"`
	Type     string   `yaml:"type"`
	RetType  string   `yaml:"ret_type"`
	ArgTypes []string `yaml:"arg_types"` // "" where omitted
	Fields   []string `yaml:"fields"`

	Cond        uint32     `yaml:"cond"`
	Then        uint32     `yaml:"then"`
	Else        uint32     `yaml:"else"`
	Pat         uint32     `yaml:"pat"`
	Expr        uint32     `yaml:"expr"`
	Callee      uint32     `yaml:"callee"`
	Receiver    uint32     `yaml:"receiver"`
	Args        []uint32   `yaml:"args"`
	Params      []uint32   `yaml:"params"`
	Stmts       []stmtNode `yaml:"stmts"`
	Tail        uint32     `yaml:"tail"`
	Label       uint32     `yaml:"label"`
	Body        uint32     `yaml:"body"`
	Arms        []armNode  `yaml:"arms"`
	Lhs         uint32     `yaml:"lhs"`
	Rhs         uint32     `yaml:"rhs"`
	Base        uint32     `yaml:"base"`
	Index       uint32     `yaml:"index"`
	Initializer uint32     `yaml:"initializer"`
	Repeat      uint32     `yaml:"repeat"`
	Spread      uint32     `yaml:"spread"`

	Inclusive bool `yaml:"inclusive"`
	Assignee  bool `yaml:"assignee"`
	Mut       bool `yaml:"mut"`
	Raw       bool `yaml:"raw"`
	Move      bool `yaml:"move"`
}

type armNode struct {
	Pat   uint32 `yaml:"pat"`
	Guard uint32 `yaml:"guard"`
	Expr  uint32 `yaml:"expr"`
}

type stmtNode struct {
	Kind string `yaml:"kind"` // let, expr, item
	Pat  uint32 `yaml:"pat"`
	Type string `yaml:"type"`
	Init uint32 `yaml:"init"`
	Else uint32 `yaml:"else"`
	Expr uint32 `yaml:"expr"`
	Semi bool   `yaml:"semi"`
}

type boundNode struct {
	Lit   *string `yaml:"lit"`
	Const uint32  `yaml:"const"`
}

type patNode struct {
	Kind string `yaml:"kind"`
	At   *span  `yaml:"at"`

	Path     string     `yaml:"path"`
	Binding  string     `yaml:"binding"`
	Args     []uint32   `yaml:"args"`
	Ellipsis *uint32    `yaml:"ellipsis"`
	Start    *boundNode `yaml:"start"`
	End      *boundNode `yaml:"end"`
	Prefix   []uint32   `yaml:"prefix"`
	Slice    uint32     `yaml:"slice"`
	Suffix   []uint32   `yaml:"suffix"`
	Expr     uint32     `yaml:"expr"`
	Subpat   uint32     `yaml:"subpat"`
	Pat      uint32     `yaml:"pat"`
	Mut      bool       `yaml:"mut"`
}
