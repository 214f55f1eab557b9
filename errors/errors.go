package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in generation the error occurred
type Phase string

const (
	PhaseInput     Phase = "input"     // invocation argument parsing
	PhaseBindgen   Phase = "bindgen"   // upstream binding generation
	PhaseLoad      Phase = "load"      // reading tree or WIT documents
	PhaseParse     Phase = "parse"     // type and attribute parsing
	PhaseClassify  Phase = "classify"  // module classification
	PhaseTransform Phase = "transform" // signature rewriting
	PhaseGenerate  Phase = "generate"  // dispatch generation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindUpstream         Kind = "upstream"
	KindMissingNamespace Kind = "missing_namespace"
	KindMissingPackage   Kind = "missing_package"
	KindUnsupportedShape Kind = "unsupported_shape"
	KindInvalidData      Kind = "invalid_data"
	KindNotFound         Kind = "not_found"
	KindUnsupported      Kind = "unsupported"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	RustType string
	WitType  string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "::"))
	}

	if e.RustType != "" || e.WitType != "" {
		b.WriteString(": ")
		if e.RustType != "" && e.WitType != "" {
			b.WriteString("Rust type ")
			b.WriteString(e.RustType)
			b.WriteString(", WIT type ")
			b.WriteString(e.WitType)
		} else if e.RustType != "" {
			b.WriteString("Rust type ")
			b.WriteString(e.RustType)
		} else {
			b.WriteString("WIT type ")
			b.WriteString(e.WitType)
		}
	}

	if e.Detail != "" {
		if e.RustType != "" || e.WitType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the module path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// RustType sets the Rust type text
func (b *Builder) RustType(t string) *Builder {
	b.err.RustType = t
	return b
}

// WitType sets the WIT type name
func (b *Builder) WitType(t string) *Builder {
	b.err.WitType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Upstream creates an error for a failed upstream binding generation
func Upstream(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseBindgen,
		Kind:   KindUpstream,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingNamespace is returned when no namespace module was discovered
func MissingNamespace() *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindMissingNamespace,
		Detail: "no top-level namespace module found in binding output",
	}
}

// MissingPackage is returned when the namespace has no package module
func MissingPackage(namespace string) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindMissingPackage,
		Path:   []string{namespace},
		Detail: fmt.Sprintf("no package module found under namespace %q", namespace),
	}
}

// UnsupportedShape creates an error for a parameter type the transformer cannot own
func UnsupportedShape(path []string, param, rustType string) *Error {
	return &Error{
		Phase:    PhaseTransform,
		Kind:     KindUnsupportedShape,
		Path:     path,
		RustType: rustType,
		Detail:   fmt.Sprintf("parameter %q borrows in a shape that cannot be converted to owned data", param),
		Value:    param,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Load creates a document loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindInvalidData,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// Conflict represents a single generated name claimed by more than one function
type Conflict struct {
	Interface string // WIT interface of the later claimant
	What      string // "wire method", "invocation record", "trait"
	Name      string
	First     string // function or interface that claimed the name first
	Second    string
}

// ConflictError is returned when generated names collide across interfaces
type ConflictError struct {
	Conflicts []Conflict
}

// NewConflictError creates an error from the collected conflicts
func NewConflictError(conflicts []Conflict) *ConflictError {
	return &ConflictError{Conflicts: conflicts}
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "[generate] conflict: no conflicts specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d generated name conflict(s):\n", len(e.Conflicts)))

	// Group by interface for cleaner output
	byIface := make(map[string][]string)
	var ifaceOrder []string
	for _, c := range e.Conflicts {
		if _, exists := byIface[c.Interface]; !exists {
			ifaceOrder = append(ifaceOrder, c.Interface)
		}
		line := fmt.Sprintf("%s %q claimed by %s and %s", c.What, c.Name, c.First, c.Second)
		byIface[c.Interface] = append(byIface[c.Interface], line)
	}

	for _, iface := range ifaceOrder {
		b.WriteString("\n  ")
		b.WriteString(iface)
		b.WriteString(":\n")
		for _, line := range byIface[iface] {
			b.WriteString("    - ")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type
func (e *ConflictError) Is(target error) bool {
	_, ok := target.(*ConflictError)
	return ok
}
