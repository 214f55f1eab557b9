package syntax

// Visitor is implemented by passes that walk a binding tree and may mutate
// items in place. VisitItem receives every item; implementations call Walk
// for items they do not handle to get the default recursion.
type Visitor interface {
	VisitModule(m *Module)
	VisitItem(item Item)
}

// Walk performs the default traversal of item: modules are handed to
// v.VisitModule, other items have no children.
func Walk(v Visitor, item Item) {
	if m, ok := item.(*Module); ok {
		v.VisitModule(m)
	}
}

// WalkFile hands every top-level item of f to v.VisitItem.
func WalkFile(v Visitor, f *File) {
	for _, item := range f.Items {
		v.VisitItem(item)
	}
}

// WalkModule hands every item of m to v.VisitItem.
func WalkModule(v Visitor, m *Module) {
	for _, item := range m.Items {
		v.VisitItem(item)
	}
}

// Inspect calls fn for every item in f in depth-first order with the names
// of the enclosing modules. Returning false from fn skips a module's items.
func Inspect(f *File, fn func(parents []string, item Item) bool) {
	var walk func(parents []string, items []Item)
	walk = func(parents []string, items []Item) {
		for _, item := range items {
			if !fn(parents, item) {
				continue
			}
			if m, ok := item.(*Module); ok {
				walk(append(parents[:len(parents):len(parents)], m.Name), m.Items)
			}
		}
	}
	walk(nil, f.Items)
}
