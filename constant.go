package querydsl

import (
	"fmt"
	"reflect"
	"strings"
)

var _ Expression = (*Constant)(nil)

// Constant is a literal value in the expression tree.
type Constant struct {
	value any
}

// NewConstant returns a constant expression of v.
func NewConstant(v any) *Constant {
	return &Constant{value: v}
}

// Value returns the constant value.
func (c *Constant) Value() any { return c.value }

// Node implements Expression.
func (c *Constant) Node() Expression { return c }

// Values returns the elements of a collection constant.
// ok is false if the value is not a slice ([]byte excluded). Arrays are
// scalar values, e.g. object identifiers.
func (c *Constant) Values() (values []any, ok bool) {
	if c.value == nil {
		return nil, false
	}
	if vs, ok := c.value.([]any); ok {
		return vs, true
	}
	if _, ok := c.value.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(c.value)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	values = make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true
}

// String implements Expression.
func (c *Constant) String() string {
	if vs, ok := c.Values(); ok {
		parts := make([]string, len(vs))
		for i, v := range vs {
			parts[i] = fmt.Sprint(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(c.value)
}

func constantsOf[T any](values []T) *Constant {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = v
	}
	return NewConstant(vs)
}
