package expr

import (
	"fmt"
	"strconv"
)

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Expr string
	Pos  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Pos, e.Expr, e.Msg)
}

// Limits on expression size. Both keep tree evaluation well inside the
// goroutine stack.
const (
	maxDepth  = 256
	maxTokens = 4096
)

// Parse builds an expression tree. Grammar, lowest precedence first:
//
//	or         = and { ("||" | "or") and }
//	and        = equality { ("&&" | "and") equality }
//	equality   = relation { ("==" | "!=") relation }
//	relation   = additive { ("<" | "<=" | ">" | ">=") additive }
//	additive   = term { ("+" | "-") term }
//	term       = unary { ("*" | "/" | "%") unary }
//	unary      = ("!" | "not" | "-") unary | primary
//	primary    = number | string | "true" | "false" | "null" | ident | "(" or ")"
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	if len(toks) > maxTokens {
		return nil, &SyntaxError{Expr: src, Pos: toks[maxTokens].pos, Msg: "expression too long"}
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q after expression", t.text)
	}
	return n, nil
}

type parser struct {
	src   string
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// nest records one level of unary or parenthesized nesting at t. Callers
// must call p.depth-- when the nested operand has been parsed.
func (p *parser) nest(t token) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(t, "expression nested deeper than %d levels", maxDepth)
	}
	return nil
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return &SyntaxError{Expr: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// matchOp consumes the next token when it is one of ops. The keywords
// and/or/not are accepted as spellings of &&, || and !.
func (p *parser) matchOp(ops ...string) (string, bool) {
	t := p.peek()
	op := ""
	switch t.kind {
	case tokOp:
		op = t.text
	case tokIdent:
		switch t.text {
		case "and":
			op = "&&"
		case "or":
			op = "||"
		case "not":
			op = "!"
		}
	}
	if op == "" {
		return "", false
	}
	for _, want := range ops {
		if op == want {
			p.next()
			return op, true
		}
	}
	return "", false
}

func (p *parser) binary(sub func() (Node, error), ops ...string) (Node, error) {
	left, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.matchOp(ops...)
		if !ok {
			return left, nil
		}
		right, err := sub()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
}

func (p *parser) parseOr() (Node, error) { return p.binary(p.parseAnd, "||") }
func (p *parser) parseAnd() (Node, error) { return p.binary(p.parseEquality, "&&") }
func (p *parser) parseEquality() (Node, error) { return p.binary(p.parseRelation, "==", "!=") }
func (p *parser) parseRelation() (Node, error) {
	return p.binary(p.parseAdditive, "<", "<=", ">", ">=")
}
func (p *parser) parseAdditive() (Node, error) { return p.binary(p.parseTerm, "+", "-") }
func (p *parser) parseTerm() (Node, error) { return p.binary(p.parseUnary, "*", "/", "%") }

func (p *parser) parseUnary() (Node, error) {
	t := p.peek()
	if op, ok := p.matchOp("!", "-"); ok {
		if err := p.nest(t); err != nil {
			return nil, err
		}
		defer func() { p.depth-- }()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.errorf(t, "invalid number %q", t.text)
		}
		return &Literal{Value: Number(f)}, nil
	case tokString:
		return &Literal{Value: String(t.text)}, nil
	case tokIdent:
		switch t.text {
		case "true":
			return &Literal{Value: Bool(true)}, nil
		case "false":
			return &Literal{Value: Bool(false)}, nil
		case "null":
			return &Literal{Value: Null}, nil
		case "and", "or", "not":
			return nil, p.errorf(t, "unexpected keyword %q", t.text)
		}
		if p.peek().kind == tokLParen {
			return nil, p.errorf(t, "unknown function %q", t.text)
		}
		return &Ident{Name: t.text}, nil
	case tokLParen:
		if err := p.nest(t); err != nil {
			return nil, err
		}
		defer func() { p.depth-- }()
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, p.errorf(closing, "expected \")\"")
		}
		return n, nil
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of expression")
	default:
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
}
