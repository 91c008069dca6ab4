package querydsl

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// wire node types
const (
	wirePath     = "path"
	wireConstant = "const"
	wireOp       = "op"
)

type wireNode struct {
	Type     string      `msgpack:"t"`
	PathKind PathKind    `msgpack:"pk,omitempty"`
	Element  string      `msgpack:"e,omitempty"`
	Index    int         `msgpack:"i,omitempty"`
	Key      any         `msgpack:"k,omitempty"`
	Parent   *wireNode   `msgpack:"p,omitempty"`
	Value    any         `msgpack:"v,omitempty"`
	Op       string      `msgpack:"o,omitempty"`
	Args     []*wireNode `msgpack:"a,omitempty"`
}

// MarshalExpression encodes the expression tree of e with msgpack,
// so that predicates can be stored and restored with UnmarshalExpression.
// Subqueries are not supported.
func MarshalExpression(e Expression) ([]byte, error) {
	w, err := toWire(nodeOf(e))
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(w)
}

// UnmarshalExpression decodes an expression tree encoded by MarshalExpression.
// Integer constants are restored as int64, floats as float64.
func UnmarshalExpression(data []byte) (Expression, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	var w wireNode
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return fromWire(&w)
}

// UnmarshalPredicate decodes a predicate encoded by MarshalExpression.
func UnmarshalPredicate(data []byte) (BooleanExpr, error) {
	e, err := UnmarshalExpression(data)
	if err != nil {
		return BooleanExpr{}, err
	}
	return NewBooleanExpr(e), nil
}

func toWire(e Expression) (*wireNode, error) {
	switch n := e.(type) {
	case nil:
		return nil, errors.New("encode expression: nil node")
	case *Path:
		w := &wireNode{Type: wirePath, PathKind: n.kind, Element: n.element, Index: n.index, Key: n.key}
		if n.parent != nil {
			p, err := toWire(n.parent)
			if err != nil {
				return nil, err
			}
			w.Parent = p
		}
		return w, nil
	case *Constant:
		return &wireNode{Type: wireConstant, Value: n.value}, nil
	case *Operation:
		w := &wireNode{Type: wireOp, Op: n.op.String(), Args: make([]*wireNode, len(n.args))}
		for i, a := range n.args {
			aw, err := toWire(a)
			if err != nil {
				return nil, err
			}
			w.Args[i] = aw
		}
		return w, nil
	default:
		return nil, fmt.Errorf("encode expression: unsupported node %T", e)
	}
}

func fromWire(w *wireNode) (Expression, error) {
	switch w.Type {
	case wirePath:
		p := &Path{kind: w.PathKind, element: w.Element, index: w.Index, key: w.Key}
		if w.Parent != nil {
			parent, err := fromWire(w.Parent)
			if err != nil {
				return nil, err
			}
			pp, ok := parent.(*Path)
			if !ok {
				return nil, fmt.Errorf("decode expression: parent of path %q is %T", w.Element, parent)
			}
			p.parent = pp
		}
		return p, nil
	case wireConstant:
		return NewConstant(w.Value), nil
	case wireOp:
		op, err := ParseOperator(w.Op)
		if err != nil {
			return nil, fmt.Errorf("decode expression: %w", err)
		}
		args := make([]Expression, len(w.Args))
		for i, a := range w.Args {
			if args[i], err = fromWire(a); err != nil {
				return nil, err
			}
		}
		return &Operation{op: op, args: args}, nil
	default:
		return nil, fmt.Errorf("decode expression: unknown node type %q", w.Type)
	}
}
