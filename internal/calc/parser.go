package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

type node interface {
	eval() float64
}

type nodeNumber struct {
	v float64
}

func (n nodeNumber) eval() float64 { return n.v }

type nodeUnary struct {
	op byte
	x  node
}

func (n nodeUnary) eval() float64 {
	v := n.x.eval()
	if n.op == '-' {
		return -v
	}
	return v
}

type nodeBinary struct {
	op          byte
	left, right node
}

func (n nodeBinary) eval() float64 {
	l, r := n.left.eval(), n.right.eval()
	switch n.op {
	case '+':
		return l + r
	case '-':
		return l - r
	case '*':
		return l * r
	case '/':
		return l / r
	case '%':
		return math.Mod(l, r)
	case '^':
		return math.Pow(l, r)
	}
	return math.NaN()
}

type parser struct {
	l   lexer
	cur token
}

// parse builds the expression tree for s. The whole input must be consumed.
func parse(s string) (node, error) {
	p := &parser{l: lexer{s: s}}
	p.next()
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokEOF {
		return nil, p.unexpected()
	}
	return n, nil
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokStar || p.cur.kind == tokSlash || p.cur.kind == tokPercent {
		op := p.cur.text[0]
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

// parseUnary parses a signed operand or a power. A signed operand may not be
// the base of "**": "-2**2" is malformed, "(-2)**2" is not.
func (p *parser) parseUnary() (node, error) {
	if p.cur.kind != tokPlus && p.cur.kind != tokMinus {
		return p.parsePower()
	}
	n, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	if p.cur.kind == tokPower {
		return nil, fmt.Errorf("%w: signed base before '**' at offset %d", ErrMalformedExpression, p.cur.pos)
	}
	return n, nil
}

func (p *parser) parseSigned() (node, error) {
	if p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := p.cur.text[0]
		p.next()
		x, err := p.parseSigned()
		if err != nil {
			return nil, err
		}
		return nodeUnary{op: op, x: x}, nil
	}
	return p.parsePrimary()
}

// parsePower is right-associative: 2**3**2 is 2**9.
func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokPower {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(p.cur.text, 64)
		// Out-of-range literals saturate to ±Inf or 0 like any float overflow.
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: bad number %q", ErrMalformedExpression, p.cur.text)
		}
		p.next()
		return nodeNumber{v: v}, nil
	case tokLParen:
		p.next()
		ex, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at offset %d", ErrMalformedExpression, p.cur.pos)
		}
		p.next()
		return ex, nil
	}
	return nil, p.unexpected()
}

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrMalformedExpression)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", ErrMalformedExpression, p.cur.text, p.cur.pos)
}
