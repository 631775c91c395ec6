package expr

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is the result of evaluating an expression node.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
}

var Null = Value{}

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Truthy follows the usual scripting rules: false, 0, NaN, "" and null are
// false, everything else is true. The string "false" is true.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num != 0 && !math.IsNaN(v.Num)
	case KindString:
		return v.Str != ""
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case KindString:
		return v.Str
	default:
		return "null"
	}
}

// number returns v as a float. Strings convert when they hold a number.
func (v Value) number() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// equal compares two values. Context values are always strings, so a string
// is compared against a number or bool literal by converting the string.
func equal(a, b Value) bool {
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindNull:
			return true
		case KindBool:
			return a.Bool == b.Bool
		case KindNumber:
			return a.Num == b.Num
		default:
			return a.Str == b.Str
		}
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return false
	}
	if a.Kind == KindBool || b.Kind == KindBool {
		s, bl := a, b
		if a.Kind == KindBool {
			s, bl = b, a
		}
		if s.Kind != KindString {
			return false
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(s.Str))
		return err == nil && parsed == bl.Bool
	}
	x, ok1 := a.number()
	y, ok2 := b.number()
	return ok1 && ok2 && x == y
}

// compare orders two values: -1, 0 or 1. ok is false when the values cannot
// be ordered.
func compare(a, b Value) (int, bool) {
	if a.Kind == KindString && b.Kind == KindString {
		x, ok1 := a.number()
		y, ok2 := b.number()
		if ok1 && ok2 {
			return cmpFloat(x, y), true
		}
		return strings.Compare(a.Str, b.Str), true
	}
	if a.Kind == KindNull || b.Kind == KindNull {
		return 0, false
	}
	x, ok1 := a.number()
	y, ok2 := b.number()
	if !ok1 || !ok2 || math.IsNaN(x) || math.IsNaN(y) {
		return 0, false
	}
	return cmpFloat(x, y), true
}

func cmpFloat(x, y float64) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
