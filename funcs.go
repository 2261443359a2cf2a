package formula

import "math"

// UnaryFunc is a named function of one float64. The name is carried so
// that trees remain printable after the optimizer composes functions.
type UnaryFunc struct {
	Name string
	F    func(float64) float64
}

// BinaryFunc is a named function of two float64 values. Operators and
// optimizer-composed functions are both represented this way.
type BinaryFunc struct {
	Name string
	F    func(a, b float64) float64
}

// compose returns f∘g, the unary function computing f(g(a)).
func (f UnaryFunc) compose(g UnaryFunc) UnaryFunc {
	return UnaryFunc{
		Name: f.Name + "∘" + g.Name,
		F:    func(a float64) float64 { return f.F(g.F(a)) },
	}
}

// wrap returns the binary function computing f(g(a, b)).
func (f UnaryFunc) wrap(g BinaryFunc) BinaryFunc {
	return BinaryFunc{
		Name: f.Name + "∘" + g.Name,
		F:    func(a, b float64) float64 { return f.F(g.F(a, b)) },
	}
}

// composeLeft returns the binary function computing f(g(a), b).
func (f BinaryFunc) composeLeft(g UnaryFunc) BinaryFunc {
	return BinaryFunc{
		Name: f.Name + "∘(" + g.Name + ",·)",
		F:    func(a, b float64) float64 { return f.F(g.F(a), b) },
	}
}

// composeRight returns the binary function computing f(a, g(b)).
func (f BinaryFunc) composeRight(g UnaryFunc) BinaryFunc {
	return BinaryFunc{
		Name: f.Name + "∘(·," + g.Name + ")",
		F:    func(a, b float64) float64 { return f.F(a, g.F(b)) },
	}
}

// mod is the % operator. The operands are truncated toward zero first,
// so it behaves as integer remainder with the dividend's sign; a zero
// divisor yields NaN rather than an error.
func mod(a, b float64) float64 {
	return math.Mod(math.Trunc(a), math.Trunc(b))
}

// binaryOps maps operator characters to their functions. It is a
// process-wide read-only table; the parser never mutates it.
var binaryOps = map[byte]BinaryFunc{
	'+': {Name: "+", F: func(a, b float64) float64 { return a + b }},
	'-': {Name: "-", F: func(a, b float64) float64 { return a - b }},
	'*': {Name: "*", F: func(a, b float64) float64 { return a * b }},
	'/': {Name: "/", F: func(a, b float64) float64 { return a / b }},
	'%': {Name: "%", F: mod},
	'^': {Name: "^", F: math.Pow},
}

// namedFuncs lists the recognized function tokens. Order matters: the
// lexer matches these as prefixes of the remaining input, so longer
// names that share a prefix with shorter ones come first (asin before
// sin, atan before atg, sqrt before sin's 's' fallback to a parameter).
var namedFuncs = []UnaryFunc{
	{Name: "asin", F: math.Asin},
	{Name: "acos", F: math.Acos},
	{Name: "atan", F: math.Atan},
	{Name: "atg", F: math.Atan},
	{Name: "sqrt", F: math.Sqrt},
	{Name: "cbrt", F: math.Cbrt},
	{Name: "abs", F: math.Abs},
	{Name: "sin", F: math.Sin},
	{Name: "cos", F: math.Cos},
	{Name: "tan", F: math.Tan},
	{Name: "tg", F: math.Tan},
	{Name: "exp", F: math.Exp},
	{Name: "ln", F: math.Log},
}
