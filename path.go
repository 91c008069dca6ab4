package querydsl

import (
	"fmt"
	"strconv"
	"strings"
)

var _ Expression = (*Path)(nil)

// PathKind is the kind of a path element.
type PathKind int

// path kinds
const (
	PathVariable  PathKind = iota // root variable, e.g. "user"
	PathProperty                  // property access, e.g. "user.firstName"
	PathAny                       // any element of a collection, e.g. "any(user.addresses)"
	PathListIndex                 // indexed list element, e.g. "user.addresses.get(0)"
	PathMapValue                  // map value by key, e.g. "entity.properties.get(key)"
)

// Path is a reference to a variable, a property, a collection element or a map value.
type Path struct {
	parent  *Path
	kind    PathKind
	element string
	index   int
	key     any
}

// NewVariable returns a root path for the variable name.
func NewVariable(name string) *Path {
	return &Path{kind: PathVariable, element: name}
}

// Property returns the path of the named property of p.
func (p *Path) Property(name string) *Path {
	return &Path{parent: p, kind: PathProperty, element: name}
}

// AnyElement returns the path of any element of the collection p.
func (p *Path) AnyElement() *Path {
	return &Path{parent: p, kind: PathAny}
}

// ListElement returns the path of the element at index of the list p.
func (p *Path) ListElement(index int) *Path {
	return &Path{parent: p, kind: PathListIndex, index: index}
}

// MapValue returns the path of the value of key in the map p.
func (p *Path) MapValue(key any) *Path {
	return &Path{parent: p, kind: PathMapValue, key: key}
}

// Node implements Expression.
func (p *Path) Node() Expression { return p }

// Parent returns the parent path, nil for root paths.
func (p *Path) Parent() *Path { return p.parent }

// Kind returns the kind of the last path element.
func (p *Path) Kind() PathKind { return p.kind }

// Element returns the property or variable name.
func (p *Path) Element() string { return p.element }

// Index returns the list index of a PathListIndex path.
func (p *Path) Index() int { return p.index }

// Key returns the map key of a PathMapValue path.
func (p *Path) Key() any { return p.key }

// IsRoot reports whether p is a root variable.
func (p *Path) IsRoot() bool { return p.parent == nil }

// Root returns the root variable of p.
func (p *Path) Root() *Path {
	r := p
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of elements between p and its root.
func (p *Path) Depth() int {
	n := 0
	for r := p; r.parent != nil; r = r.parent {
		n++
	}
	return n
}

// Equal reports whether p and o reference the same path.
func (p *Path) Equal(o *Path) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	if p.kind != o.kind || p.element != o.element || p.index != o.index {
		return false
	}
	if p.kind == PathMapValue && fmt.Sprint(p.key) != fmt.Sprint(o.key) {
		return false
	}
	return p.parent.Equal(o.parent)
}

// String implements Expression.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	switch p.kind {
	case PathProperty:
		return p.parent.String() + "." + p.element
	case PathAny:
		return "any(" + p.parent.String() + ")"
	case PathListIndex:
		return p.parent.String() + ".get(" + strconv.Itoa(p.index) + ")"
	case PathMapValue:
		return p.parent.String() + ".get(" + fmt.Sprint(p.key) + ")"
	default:
		return p.element
	}
}

// Segments returns the elements from the root (exclusive) to p.
func (p *Path) Segments() []*Path {
	segs := make([]*Path, 0, p.Depth())
	for r := p; r.parent != nil; r = r.parent {
		segs = append(segs, r)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return segs
}

// dotted returns the property names of p joined by sep, the root excluded.
func (p *Path) dotted(sep string) string {
	names := make([]string, 0, p.Depth())
	for _, s := range p.Segments() {
		if s.kind == PathProperty {
			names = append(names, s.element)
		}
	}
	return strings.Join(names, sep)
}

// PathOf extracts the path node of e, or nil if e is not a path.
func PathOf(e Expression) *Path {
	if p, ok := nodeOf(e).(*Path); ok {
		return p
	}
	return nil
}
