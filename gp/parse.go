package gp

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads an s-expression into an expression tree, for example:
//
//	(if_else (less_than (distance_pursuer_evader) (one)) (zero) (negate (one)))
//
// Primitive applications are parenthesized, including zero-arity sensors.
// Bare atoms are fixed literals: numbers parse as float literals, true and
// false as bool literals. Arity and input types are checked during parsing,
// so a parsed tree honors the type-correct construction contract.
func Parse(input string) (*Node, error) {
	p := &parser{tokens: tokenize(input)}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.peek(); ok {
		return nil, fmt.Errorf("unexpected trailing token %q", tok)
	}
	return node, nil
}

// MustParse is Parse for known-good expressions in tests and defaults.
func MustParse(input string) *Node {
	node, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return node
}

func tokenize(input string) []string {
	input = strings.ReplaceAll(input, "(", " ( ")
	input = strings.ReplaceAll(input, ")", " ) ")
	return strings.Fields(input)
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() (string, bool) {
	if p.pos >= len(p.tokens) {
		return "", false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (string, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseExpr() (*Node, error) {
	tok, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression")
	}
	switch tok {
	case "(":
		return p.parseApplication()
	case ")":
		return nil, fmt.Errorf("unexpected %q", tok)
	case "true", "false":
		return NewBool(tok == "true"), nil
	default:
		value, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("not a literal or application: %q", tok)
		}
		return NewFloat(value), nil
	}
}

func (p *parser) parseApplication() (*Node, error) {
	name, ok := p.next()
	if !ok {
		return nil, fmt.Errorf("unexpected end of expression after \"(\"")
	}
	prim, ok := LookupPrimitive(name)
	if !ok {
		return nil, fmt.Errorf("unknown primitive %q", name)
	}

	var children []*Node
	for {
		tok, ok := p.peek()
		if !ok {
			return nil, fmt.Errorf("missing \")\" in %q application", name)
		}
		if tok == ")" {
			p.pos++
			break
		}
		child, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if len(children) != prim.Arity() {
		return nil, fmt.Errorf("%s takes %d inputs, got %d", name, prim.Arity(), len(children))
	}
	for i, child := range children {
		if child.Type() != prim.Inputs[i] {
			return nil, fmt.Errorf("%s input %d must be %s, got %s", name, i, prim.Inputs[i], child.Type())
		}
	}
	return NewNode(prim, children...), nil
}
