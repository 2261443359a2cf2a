package formula

import "strings"

// Sum      := Product (('+'|'-') Product)*
// Product  := Power   (('*'|'/'|'%') Power)*
// Power    := Prefixed ('^' Prefixed)*
// Prefixed := NamedFn* Primary
// Primary  := Number | Constant(pi|e) | Parameter | '(' Sum ')'
//
// Every level is left-associative, including '^': "2^3^2" is (2^3)^2.
// A leading operator at any level implies a zero left operand, which is
// how unary minus works: "-5+3" parses as "0-5+3".

// parse builds an AST from source text. The tree it returns satisfies
// the node arity invariants by construction: leaves are constants or
// parameters, unary nodes have exactly one child, binary nodes exactly
// two, and no placeholder is ever emitted.
func parse(src string) (*node, error) {
	src = preparse(src)
	if err := checkParens(src); err != nil {
		return nil, err
	}
	l := lex(src)
	tok, err := l.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenEOF {
		// An empty expression is the constant 0.
		return &node{kind: nodeConst}, nil
	}
	n, err := parseSum(l)
	if err != nil {
		return nil, err
	}
	end, err := l.next()
	if err != nil {
		return nil, err
	}
	if end.kind != tokenEOF {
		return nil, &TokenError{Col: end.pos, Token: end.text}
	}
	return n, nil
}

// checkParens verifies parenthesis balance before parsing, the way the
// original bracket matching runs ahead of symbol recognition. The
// parser proper then only ever sees balanced input.
func checkParens(src string) error {
	var opens []int
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			opens = append(opens, i)
		case ')':
			if len(opens) == 0 {
				return &BracketError{Col: i + 1, Open: false}
			}
			opens = opens[:len(opens)-1]
		}
	}
	if len(opens) > 0 {
		return &BracketError{Col: opens[0] + 1, Open: true}
	}
	return nil
}

func parseSum(l *lexer) (*node, error)     { return parseBinaryLevel(l, "+-", parseProduct) }
func parseProduct(l *lexer) (*node, error) { return parseBinaryLevel(l, "*/%", parsePower) }
func parsePower(l *lexer) (*node, error)   { return parseBinaryLevel(l, "^", parsePrefixed) }

// parseBinaryLevel parses one left-associative precedence level: an
// operand, then any number of (op operand) pairs for the operators of
// this level. A leading operator of this level gets an implicit zero
// left operand.
func parseBinaryLevel(l *lexer, ops string, operand func(*lexer) (*node, error)) (*node, error) {
	tok, err := l.peek()
	if err != nil {
		return nil, err
	}
	var n *node
	if tok.kind == tokenOp && strings.Contains(ops, tok.text) {
		n = &node{kind: nodeConst}
	} else {
		n, err = operand(l)
		if err != nil {
			return nil, err
		}
	}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || !strings.Contains(ops, tok.text) {
			l.push(tok)
			return n, nil
		}
		rhs, err := operand(l)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeBinary, binary: binaryOps[tok.text[0]], left: n, right: rhs}
	}
}

// parsePrefixed parses Prefixed := NamedFn* Primary. A function binds
// only to the single following primary, more tightly than '^', so
// "sin x^2" parses as (sin x)^2 and "sin 2*x" as sin(2)*x.
func parsePrefixed(l *lexer) (*node, error) {
	var fns []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenFunc {
			l.push(tok)
			break
		}
		fns = append(fns, tok)
	}
	if len(fns) > 0 {
		tok, err := l.peek()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenEOF, tokenOp, tokenClose:
			last := fns[len(fns)-1]
			return nil, &OperandError{Col: tok.pos, What: last.text}
		}
	}
	n, err := parsePrimary(l)
	if err != nil {
		return nil, err
	}
	for i := len(fns) - 1; i >= 0; i-- {
		n = &node{kind: nodeUnary, unary: fns[i].fn, left: n}
	}
	return n, nil
}

// parsePrimary parses a number, a named constant, a parameter, or a
// parenthesized subexpression.
func parsePrimary(l *lexer) (*node, error) {
	tok, err := l.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum, tokenConst:
		return &node{kind: nodeConst, val: tok.val}, nil
	case tokenParam:
		return &node{kind: nodeParam, param: tok.text[0]}, nil
	case tokenOpen:
		return parseGroup(l, tok)
	case tokenOp, tokenEOF, tokenClose:
		// An operator, end of input, or (inside a group) the closing
		// parenthesis where an operand was required.
		return nil, &OperandError{Col: tok.pos}
	default:
		panic("formula: unexpected token in primary: " + tok.String())
	}
}

// parseGroup parses the remainder of a parenthesized subexpression
// after its opening parenthesis. An empty group is the constant 0, the
// same value an empty expression has.
func parseGroup(l *lexer, open lexToken) (*node, error) {
	tok, err := l.peek()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		l.next()
		return &node{kind: nodeConst}, nil
	}
	n, err := parseSum(l)
	if err != nil {
		return nil, err
	}
	end, err := l.next()
	if err != nil {
		return nil, err
	}
	switch end.kind {
	case tokenClose:
		return n, nil
	case tokenEOF:
		// checkParens rejects unbalanced input up front.
		return nil, &BracketError{Col: open.pos, Open: true}
	default:
		return nil, &TokenError{Col: end.pos, Token: end.text}
	}
}
