package syntax

// File is the root of a binding tree.
type File struct {
	Items []Item
}

// Item is a declaration inside a file or module.
type Item interface{ item() }

// Module represents: [vis] mod name { items } or [vis] mod name;
type Module struct {
	Attrs    []*Attribute
	Vis      string
	Name     string
	Items    []Item
	External bool // declared without inline content
}

func (*Module) item() {}

// Function represents a free function declaration.
type Function struct {
	Attrs  []*Attribute
	Vis    string
	Name   string
	Params []Param
	Output Type   // nil for unit
	Body   string // raw body without braces
}

func (*Function) item() {}

// Param is one function parameter.
type Param struct {
	Name string
	Type Type
}

// Struct represents a structure declaration with named fields.
type Struct struct {
	Attrs  []*Attribute
	Vis    string
	Name   string
	Fields []Field
}

func (*Struct) item() {}

// Field is a named structure field.
type Field struct {
	Vis  string
	Name string
	Type Type
}

// Raw is an opaque item (enum, impl block, type alias, macro call) that
// passes through every pass unmodified.
type Raw struct {
	Code string
}

func (*Raw) item() {}
