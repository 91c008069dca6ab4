package querydsl

import (
	"strconv"
	"strings"
)

var _ Expression = (*Operation)(nil)

// Operation is an operator applied to argument expressions.
type Operation struct {
	op   Operator
	args []Expression
}

// NewOperation returns the operation op applied to args.
func NewOperation(op Operator, args ...Expression) *Operation {
	nodes := make([]Expression, len(args))
	for i, a := range args {
		nodes[i] = nodeOf(a)
	}
	return &Operation{op: op, args: nodes}
}

// Operator returns the operator.
func (o *Operation) Operator() Operator { return o.op }

// Args returns the arguments.
func (o *Operation) Args() []Expression { return o.args }

// Arg returns the i-th argument, or nil if out of range.
func (o *Operation) Arg(i int) Expression {
	if i < 0 || i >= len(o.args) {
		return nil
	}
	return o.args[i]
}

// Node implements Expression.
func (o *Operation) Node() Expression { return o }

// String implements Expression.
func (o *Operation) String() string {
	info, ok := operators[o.op]
	if !ok {
		parts := make([]string, len(o.args))
		for i, a := range o.args {
			if a != nil {
				parts[i] = a.String()
			}
		}
		return o.op.String() + "(" + strings.Join(parts, ", ") + ")"
	}
	rendered := make([]string, len(o.args))
	for i, a := range o.args {
		if a == nil {
			rendered[i] = "null"
			continue
		}
		s := a.String()
		if NeedsParens(o.op, a, i > 0) {
			s = "(" + s + ")"
		}
		rendered[i] = s
	}
	return expandTemplate(info.template, rendered)
}

// expandTemplate replaces {n} placeholders of tmpl with args[n].
func expandTemplate(tmpl string, args []string) string {
	var b strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(tmpl[i:], '}')
		if end < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		n, err := strconv.Atoi(tmpl[i+1 : i+end])
		if err != nil || n >= len(args) {
			b.WriteString(tmpl[i : i+end+1])
		} else {
			b.WriteString(args[n])
		}
		i += end
	}
	return b.String()
}
