package formula

// lookup resolves a parameter name to its value during evaluation.
type lookup func(name byte) (float64, error)

// UnassignedParamError is an error from evaluating a parameter that has
// no dictionary value and is not the bound free variable. Evaluation
// does not mutate the expression, so the same tree can be evaluated
// again after assigning the parameter.
type UnassignedParamError struct {
	// Name is the parameter that was missing.
	Name byte
}

func (err *UnassignedParamError) Error() string {
	return "unassigned parameter " + string(err.Name)
}

// InvariantError is an error from evaluation reaching the internal
// placeholder sentinel. It indicates a defect in tree construction, not
// in the evaluated input; no tree the parser or optimizer produces
// contains a placeholder.
type InvariantError struct{}

func (err *InvariantError) Error() string {
	return "internal invariant broken: placeholder reached during evaluation"
}

// evalNode evaluates the tree rooted at n, resolving parameters through
// look. Domain and range violations are not detected here; division by
// zero, sqrt of a negative and the like follow float64 semantics and
// propagate as NaN or ±Inf.
func evalNode(n *node, look lookup) (float64, error) {
	switch n.kind {
	case nodeConst:
		return n.val, nil
	case nodeParam:
		return look(n.param)
	case nodeUnary:
		a, err := evalNode(n.left, look)
		if err != nil {
			return 0, err
		}
		return n.unary.F(a), nil
	case nodeBinary:
		a, err := evalNode(n.left, look)
		if err != nil {
			return 0, err
		}
		b, err := evalNode(n.right, look)
		if err != nil {
			return 0, err
		}
		return n.binary.F(a, b), nil
	case nodePlaceholder:
		return 0, &InvariantError{}
	default:
		panic("formula: invalid node kind " + n.kind.String())
	}
}
