package formula

import "strconv"

// SyntaxError is an error raised while building an expression from
// source text. Every build-time error implements SyntaxError.
type SyntaxError interface {
	error
	// Pos returns the position of the error as a 1-based column in the
	// preprocessed source.
	Pos() int
}

// BracketError is a SyntaxError indicating unbalanced parentheses.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Open is true for an opening parenthesis that is never closed,
	// false for a closing parenthesis with no opener.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "unterminated parenthesis")
	}
	return errpos(err.Col, "closing parenthesis without an opening one")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// ParamError is a SyntaxError indicating a run of unrecognized
// characters too long to be a parameter name.
type ParamError struct {
	// Col is the position of the run.
	Col int
	// Token is the unrecognized run.
	Token string
}

func (err *ParamError) Error() string {
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token)+": parameter names must be 1 character")
}

func (err *ParamError) Pos() int {
	return err.Col
}

// OperandError is a SyntaxError indicating an operator or function
// whose operand is missing.
type OperandError struct {
	// Col is the position at which an operand was expected.
	Col int
	// What is the operator or function name missing its operand.
	What string
}

func (err *OperandError) Error() string {
	if err.What == "" {
		return errpos(err.Col, "operator or function without arguments")
	}
	return errpos(err.Col, strconv.Quote(err.What)+" without arguments")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// NumberError is a SyntaxError indicating a malformed numeric literal.
type NumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal as scanned.
	Text string
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "malformed number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

// TokenError is a SyntaxError indicating a token that cannot appear at
// its position, e.g. two terms with no operator between them.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Token is the offending token text; empty at end of input.
	Token string
}

func (err *TokenError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "unexpected end of expression")
	}
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

var (
	_ SyntaxError = (*BracketError)(nil)
	_ SyntaxError = (*ParamError)(nil)
	_ SyntaxError = (*OperandError)(nil)
	_ SyntaxError = (*NumberError)(nil)
	_ SyntaxError = (*TokenError)(nil)
)
