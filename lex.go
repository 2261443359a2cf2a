package formula

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
	// val holds the value of a tokenNum or tokenConst.
	val float64
	// fn holds the function of a tokenFunc.
	fn UnaryFunc
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenConst is a named constant, pi or e.
	tokenConst
	// tokenParam is a single-character parameter name.
	tokenParam
	// tokenFunc is a function name such as sin or sqrt.
	tokenFunc
	// tokenOp is a binary operator.
	tokenOp
	// tokenOpen is an opening parenthesis.
	tokenOpen
	// tokenClose is a closing parenthesis.
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenConst:
		return "Const"
	case tokenParam:
		return "Param"
	case tokenFunc:
		return "Func"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the characters which are binary operators.
const Operators = "+-*/%^"

// preparse inserts the implicit multiplications the grammar recognizes:
// an opening parenthesis immediately preceded by a digit or a closing
// parenthesis. "2(3+4)" becomes "2*(3+4)" and "(1+1)(1+1)" becomes
// "(1+1)*(1+1)". No other adjacency is rewritten; in particular a digit
// followed by a letter, as in "2x", stays as-is.
func preparse(src string) string {
	var b strings.Builder
	b.Grow(len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == '(' && i > 0 && (src[i-1] == ')' || isDigit(src[i-1])) {
			b.WriteByte('*')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isOperator(c byte) bool {
	return strings.IndexByte(Operators, c) >= 0
}

// funcAt matches a function name at the start of s. Names are matched
// as prefixes, longest-sharing-a-prefix first (see namedFuncs), so
// "sinx" scans as sin followed by the parameter x.
func funcAt(s string) (UnaryFunc, bool) {
	for _, fn := range namedFuncs {
		if strings.HasPrefix(s, fn.Name) {
			return fn, true
		}
	}
	return UnaryFunc{}, false
}

// piAt matches the constant pi at the start of s, case-insensitively.
func piAt(s string) bool {
	return len(s) >= 2 && (s[0] == 'p' || s[0] == 'P') && (s[1] == 'i' || s[1] == 'I')
}

// lexer scans tokens from preprocessed source text. Positions are
// 1-based byte columns.
type lexer struct {
	src string
	i   int
	p   lexToken
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next.
// Panics if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("formula: double push")
	}
	l.p = tok
}

// peek returns the next token without consuming it.
func (l *lexer) peek() (lexToken, error) {
	tok, err := l.next()
	if err != nil {
		return tok, err
	}
	l.push(tok)
	return tok, nil
}

// next scans the next token from the input. At the end of the input it
// returns EOF tokens forever.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	for l.i < len(l.src) && isSpace(l.src[l.i]) {
		l.i++
	}
	tok := lexToken{pos: l.i + 1}
	if l.i >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	c := l.src[l.i]
	switch {
	case isDigit(c):
		return l.scanNum()
	case isOperator(c):
		l.i++
		tok.text = string(c)
		tok.kind = tokenOp
		return tok, nil
	case c == '(':
		l.i++
		tok.text = "("
		tok.kind = tokenOpen
		return tok, nil
	case c == ')':
		l.i++
		tok.text = ")"
		tok.kind = tokenClose
		return tok, nil
	}
	if fn, ok := funcAt(l.src[l.i:]); ok {
		l.i += len(fn.Name)
		tok.text = fn.Name
		tok.kind = tokenFunc
		tok.fn = fn
		return tok, nil
	}
	if piAt(l.src[l.i:]) {
		l.i += 2
		tok.text = "pi"
		tok.kind = tokenConst
		tok.val = math.Pi
		return tok, nil
	}
	if c == 'e' {
		l.i++
		tok.text = "e"
		tok.kind = tokenConst
		tok.val = math.E
		return tok, nil
	}
	return l.scanParam()
}

// scanNum scans a numeric literal: digits, an optional fraction, and an
// optional exponent. The exponent marker is consumed only when followed
// by digits, so "2e" scans as the number 2 and then the constant e.
func (l *lexer) scanNum() (lexToken, error) {
	tok := lexToken{pos: l.i + 1}
	j := l.i
	for j < len(l.src) && isDigit(l.src[j]) {
		j++
	}
	if j < len(l.src) && l.src[j] == '.' {
		j++
		for j < len(l.src) && isDigit(l.src[j]) {
			j++
		}
	}
	if j < len(l.src) && (l.src[j] == 'e' || l.src[j] == 'E') {
		k := j + 1
		if k < len(l.src) && (l.src[k] == '+' || l.src[k] == '-') {
			k++
		}
		if k < len(l.src) && isDigit(l.src[k]) {
			j = k
			for j < len(l.src) && isDigit(l.src[j]) {
				j++
			}
		}
	}
	tok.text = l.src[l.i:j]
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		return tok, &NumberError{Col: tok.pos, Text: tok.text}
	}
	l.i = j
	tok.kind = tokenNum
	tok.val = v
	return tok, nil
}

// scanParam scans a run of characters not recognized as any other
// token. A run of exactly one printable ASCII character is a parameter
// name; anything longer, or a non-ASCII rune, is a syntax error.
func (l *lexer) scanParam() (lexToken, error) {
	tok := lexToken{pos: l.i + 1}
	j := l.i
	for j < len(l.src) {
		c := l.src[j]
		if isSpace(c) || isDigit(c) || isOperator(c) || c == '(' || c == ')' || c == 'e' {
			break
		}
		if _, ok := funcAt(l.src[j:]); ok || piAt(l.src[j:]) {
			break
		}
		_, sz := utf8.DecodeRuneInString(l.src[j:])
		j += sz
	}
	if j == l.i {
		// The current character starts another token; scanParam must
		// not be entered in that case.
		panic("formula: scanParam on recognized token at " + strconv.Itoa(tok.pos))
	}
	tok.text = l.src[l.i:j]
	if j-l.i != 1 || tok.text[0] < '!' || tok.text[0] > '~' {
		return tok, &ParamError{Col: tok.pos, Token: tok.text}
	}
	l.i = j
	tok.kind = tokenParam
	return tok, nil
}
