// Package formula compiles textual math expressions into evaluable trees.
//
// An expression like "x^2+a*x+1/sin(x)" is parsed once into an AST and can
// then be evaluated many times against named single-character parameters,
// or with one parameter bound directly as a free variable. An optional
// optimizer pass collapses constant subtrees and composes adjacent
// function nodes so that repeated evaluation touches fewer nodes.
//
// The grammar is ordinary infix arithmetic with +, -, *, /, % and ^, all
// left-associative (including ^, so "2^3^2" is 64, not 512). Function
// names such as sin, cos, ln or sqrt bind to the single following primary
// term, more tightly than ^: "sin x^2" is (sin x)^2. A digit or closing
// parenthesis directly followed by an opening parenthesis multiplies
// implicitly, so "2(3+4)" is 14; "2x" does not and is a syntax error.
//
// Domain violations such as division by zero are not errors; they follow
// IEEE float64 semantics and surface as NaN or ±Inf in the result.
package formula
