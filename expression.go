package formula

import (
	"errors"
	"sort"

	"github.com/samber/lo"
)

// Policy selects whether building an expression is followed by an
// optimizer pass.
type Policy int

const (
	// Build parses the source into a tree and stops there.
	Build Policy = iota
	// BuildAndOptimize additionally runs one optimizer pass on the
	// freshly built tree.
	BuildAndOptimize
)

// ErrNoExpression is returned by evaluation on an Expression that has
// no tree, i.e. a zero Expression or one whose every build failed.
var ErrNoExpression = errors.New("no expression built")

// Unary is a single-argument view of an expression, produced by
// AsUnary and ParseFunction.
type Unary func(x float64) (float64, error)

// Expression owns a parsed tree and a dictionary binding parameter
// names to values. The zero Expression is valid: it has no tree and an
// empty dictionary, and builds can be run on it.
//
// An Expression must not be mutated (Build, Optimize, SetParam)
// concurrently with any other use; concurrent Eval calls on an
// Expression that is not being mutated are safe.
type Expression struct {
	root *node
	dict map[byte]float64
}

// New builds an expression from source text without optimizing it.
func New(src string) (*Expression, error) {
	return NewWith(Build, src)
}

// NewWith builds an expression from source text under the given policy.
func NewWith(p Policy, src string) (*Expression, error) {
	var e Expression
	if err := e.BuildWith(p, src); err != nil {
		return nil, err
	}
	return &e, nil
}

// Build replaces the expression's tree with one parsed from src. The
// dictionary is kept. Builds are atomic: on error the previous tree, if
// any, is untouched.
func (e *Expression) Build(src string) error {
	return e.BuildWith(Build, src)
}

// BuildWith is Build under an explicit policy.
func (e *Expression) BuildWith(p Policy, src string) error {
	n, err := parse(src)
	if err != nil {
		return err
	}
	if p == BuildAndOptimize {
		n = optimizeNode(n)
	}
	e.root = n
	return nil
}

// Optimize runs one optimizer pass on the current tree, folding
// constant subtrees and composing adjacent function nodes. It is a
// no-op on an Expression with no tree. Returns e for chaining.
func (e *Expression) Optimize() *Expression {
	if e.root != nil {
		e.root = optimizeNode(e.root)
	}
	return e
}

// SetParam inserts or updates a parameter binding. Returns e for
// chaining. Bindings persist across rebuilds of the same Expression.
func (e *Expression) SetParam(name byte, value float64) *Expression {
	if e.dict == nil {
		e.dict = make(map[byte]float64)
	}
	e.dict[name] = value
	return e
}

// Params returns the names bound in the dictionary, sorted.
func (e *Expression) Params() []byte {
	names := lo.Keys(e.dict)
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Valid reports whether the expression has a tree to evaluate.
func (e *Expression) Valid() bool {
	return e.root != nil
}

// String returns a printable form of the expression's tree. Composed
// function nodes print their composition, e.g. "sin∘cos(x)".
func (e *Expression) String() string {
	if e.root == nil {
		return "<no expression>"
	}
	return e.root.String()
}

// Eval evaluates the expression, resolving every parameter from the
// dictionary. It returns ErrNoExpression if no tree has been built and
// an UnassignedParamError if evaluation reaches a parameter the
// dictionary does not bind.
func (e *Expression) Eval() (float64, error) {
	if e.root == nil {
		return 0, ErrNoExpression
	}
	return evalNode(e.root, e.dictLookup)
}

// EvalAt evaluates the expression with name bound to value. Other
// parameters resolve from the dictionary as in Eval.
func (e *Expression) EvalAt(name byte, value float64) (float64, error) {
	if e.root == nil {
		return 0, ErrNoExpression
	}
	look := func(p byte) (float64, error) {
		if p == name {
			return value, nil
		}
		return e.dictLookup(p)
	}
	return evalNode(e.root, look)
}

func (e *Expression) dictLookup(p byte) (float64, error) {
	v, ok := e.dict[p]
	if !ok {
		return 0, &UnassignedParamError{Name: p}
	}
	return v, nil
}

// AsUnary returns a reusable single-argument function that evaluates
// the expression with name bound to the argument; conventionally the
// name is 'x'. The function snapshots the tree and the dictionary, so
// later SetParam or Build calls on e do not affect it. Returns
// ErrNoExpression if no tree has been built; calling the function with
// an unresolved non-bound parameter fails the way Eval would.
func (e *Expression) AsUnary(name byte) (Unary, error) {
	if e.root == nil {
		return nil, ErrNoExpression
	}
	snap := Expression{root: e.root, dict: make(map[byte]float64, len(e.dict))}
	for k, v := range e.dict {
		snap.dict[k] = v
	}
	return func(x float64) (float64, error) {
		return snap.EvalAt(name, x)
	}, nil
}

// Compute builds a throwaway expression from src and evaluates it.
func Compute(src string) (float64, error) {
	e, err := New(src)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// ComputeAt builds a throwaway expression from src and evaluates it
// with name bound to value.
func ComputeAt(src string, name byte, value float64) (float64, error) {
	e, err := New(src)
	if err != nil {
		return 0, err
	}
	return e.EvalAt(name, value)
}

// ParseFunction builds an expression from src under the given policy
// and returns it as a single-argument function of name.
func ParseFunction(src string, name byte, p Policy) (Unary, error) {
	e, err := NewWith(p, src)
	if err != nil {
		return nil, err
	}
	return e.AsUnary(name)
}
