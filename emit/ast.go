// Package emit holds the output tree for generated Rust code. The dispatch
// generator builds a File; Print serializes it to source text.
package emit

// Decl is a top-level declaration.
type Decl interface{ decl() }

// Stmt is a statement inside a method body.
type Stmt interface{ stmt() }

// File is a complete generated Rust fragment.
type File struct {
	Decls []Decl
}

// Use represents: use path;
type Use struct {
	Path string
}

func (Use) decl() {}

// Comment represents a // line comment.
type Comment struct {
	Text string
}

func (Comment) decl() {}
func (Comment) stmt() {}

// BlankLine emits an empty line.
type BlankLine struct{}

func (BlankLine) decl() {}
func (BlankLine) stmt() {}

// RawDecl is pre-rendered top-level code emitted verbatim.
type RawDecl struct {
	Code string
}

func (RawDecl) decl() {}

// Struct represents: [attrs] [vis] struct Name { fields }
type Struct struct {
	Attrs  []string // attribute text without #[ ]
	Vis    string
	Name   string
	Fields []Field
}

func (Struct) decl() {}

// Field is a named structure field.
type Field struct {
	Vis  string
	Name string
	Type string
}

// Trait represents: [attrs] [vis] trait Name { method declarations }
type Trait struct {
	Attrs   []string
	Vis     string
	Name    string
	Methods []Method
}

func (Trait) decl() {}

// Impl represents: [attrs] impl [Trait for] For { methods }
type Impl struct {
	Attrs   []string
	Trait   string // empty for inherent impls
	For     string
	Methods []Method
}

func (Impl) decl() {}

// Method is a function inside a trait or impl. A nil Body renders a
// declaration terminated by a semicolon.
type Method struct {
	Async    bool
	Name     string
	Generics string // e.g. "'a", rendered inside < >
	Receiver string // e.g. "&self"
	Params   []Param
	Return   string // empty for unit
	Body     []Stmt
}

// Param is one method parameter.
type Param struct {
	Name string
	Type string
}

// Let represents: let name[: Type] = value;
type Let struct {
	Name  string
	Type  string
	Value string
}

func (Let) stmt() {}

// Expr is an expression statement. Semi adds the trailing semicolon; without
// it the expression is the block's value.
type Expr struct {
	Code string
	Semi bool
}

func (Expr) stmt() {}

// Match represents: match scrutinee { arms }
type Match struct {
	Scrutinee string
	Arms      []Arm
}

func (Match) stmt() {}

// Arm is one match arm. A non-empty Value renders "pat => value," and the
// Body is ignored; otherwise the Body is printed as a block.
type Arm struct {
	Pattern string
	Value   string
	Body    []Stmt
}
