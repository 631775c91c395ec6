package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrUndefinedVariable is returned when an identifier has no value in the
// evaluation context.
var ErrUndefinedVariable = errors.New("undefined variable")

// Node is a parsed expression tree.
type Node interface {
	Eval(ctx map[string]string) (Value, error)
	String() string
}

// Literal is a number, string, bool or null constant.
type Literal struct {
	Value Value
}

// Ident is a variable reference. Dotted names such as case.status are a
// single context key.
type Ident struct {
	Name string
}

// Unary is a prefix operator: "!" or "-".
type Unary struct {
	Op string
	X  Node
}

// Binary is an infix operator.
type Binary struct {
	Op   string
	L, R Node
}

func (n *Literal) Eval(map[string]string) (Value, error) { return n.Value, nil }

func (n *Literal) String() string {
	if n.Value.Kind == KindString {
		return strconv.Quote(n.Value.Str)
	}
	return n.Value.String()
}

func (n *Ident) Eval(ctx map[string]string) (Value, error) {
	v, ok := ctx[n.Name]
	if !ok {
		return Null, fmt.Errorf("%w %q", ErrUndefinedVariable, n.Name)
	}
	return String(v), nil
}

func (n *Ident) String() string { return n.Name }

func (n *Unary) Eval(ctx map[string]string) (Value, error) {
	x, err := n.X.Eval(ctx)
	if err != nil {
		return Null, err
	}
	switch n.Op {
	case "!":
		return Bool(!x.Truthy()), nil
	case "-":
		f, ok := x.number()
		if !ok {
			return Null, fmt.Errorf("cannot negate %s %q", x.Kind, x.String())
		}
		return Number(-f), nil
	}
	return Null, fmt.Errorf("unknown unary operator %q", n.Op)
}

func (n *Unary) String() string { return "(" + n.Op + n.X.String() + ")" }

func (n *Binary) Eval(ctx map[string]string) (Value, error) {
	l, err := n.L.Eval(ctx)
	if err != nil {
		return Null, err
	}
	// && and || short-circuit so the right side may reference variables
	// that only exist when the left side holds.
	switch n.Op {
	case "&&":
		if !l.Truthy() {
			return Bool(false), nil
		}
		r, err := n.R.Eval(ctx)
		if err != nil {
			return Null, err
		}
		return Bool(r.Truthy()), nil
	case "||":
		if l.Truthy() {
			return Bool(true), nil
		}
		r, err := n.R.Eval(ctx)
		if err != nil {
			return Null, err
		}
		return Bool(r.Truthy()), nil
	}

	r, err := n.R.Eval(ctx)
	if err != nil {
		return Null, err
	}
	switch n.Op {
	case "==":
		return Bool(equal(l, r)), nil
	case "!=":
		return Bool(!equal(l, r)), nil
	case "<", "<=", ">", ">=":
		c, ok := compare(l, r)
		if !ok {
			return Null, fmt.Errorf("cannot compare %s %q with %s %q", l.Kind, l.String(), r.Kind, r.String())
		}
		switch n.Op {
		case "<":
			return Bool(c < 0), nil
		case "<=":
			return Bool(c <= 0), nil
		case ">":
			return Bool(c > 0), nil
		default:
			return Bool(c >= 0), nil
		}
	case "+":
		x, ok1 := l.number()
		y, ok2 := r.number()
		if ok1 && ok2 {
			return Number(x + y), nil
		}
		return String(l.String() + r.String()), nil
	case "-", "*", "/", "%":
		x, ok1 := l.number()
		y, ok2 := r.number()
		if !ok1 || !ok2 {
			return Null, fmt.Errorf("operator %q needs numbers, got %s %q and %s %q", n.Op, l.Kind, l.String(), r.Kind, r.String())
		}
		switch n.Op {
		case "-":
			return Number(x - y), nil
		case "*":
			return Number(x * y), nil
		case "/":
			if y == 0 {
				return Null, errors.New("division by zero")
			}
			return Number(x / y), nil
		default:
			if y == 0 {
				return Null, errors.New("division by zero")
			}
			return Number(math.Mod(x, y)), nil
		}
	}
	return Null, fmt.Errorf("unknown operator %q", n.Op)
}

func (n *Binary) String() string {
	return "(" + n.L.String() + " " + n.Op + " " + n.R.String() + ")"
}
