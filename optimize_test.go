package formula

import (
	"math"
	"testing"
)

func TestOptimizeFolds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"num", "42", 42},
		{"sum", "2+3*4", 14},
		{"pow", "2^3^2", 64},
		{"fn", "sqrt(9)", 3},
		{"nested", "1+2*(3+sin(0))", 7},
		{"constants", "pi/pi", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			n = optimizeNode(n)
			if n.kind != nodeConst {
				t.Fatalf("%q optimized to %s, want a constant", c.src, n)
			}
			if n.val != c.want {
				t.Errorf("%q optimized to %g, want %g", c.src, n.val, c.want)
			}
		})
	}
}

func TestOptimizePartialFold(t *testing.T) {
	n, err := parse("2*3+x")
	if err != nil {
		t.Fatal(err)
	}
	n = optimizeNode(n)
	if got := n.String(); got != "(6 + x)" {
		t.Errorf("optimized tree is %s, want (6 + x)", got)
	}
}

func TestOptimizeCompose(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		nodes int
	}{
		// sin(cos(x)) is one unary node over x.
		{"unary-unary", "sin cos x", 2},
		// ln(x*y) is one binary node over x and y.
		{"unary-binary", "ln(x*y)", 3},
		// x + sin(y) composes on the right.
		{"binary-right", "x+sin(y)", 3},
		// sin(x) + y composes on the left.
		{"binary-left", "sin(x)+y", 3},
		// sin(x) + cos(y): both rules fire on the same visit,
		// collapsing three function nodes into one.
		{"binary-both", "sin(x)+cos(y)", 3},
		// Deep stacks collapse all the way down.
		{"unary-stack", "sin cos tan x", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, err := parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			n = optimizeNode(n)
			if got := countNodes(n); got != c.nodes {
				t.Errorf("%q optimized to %d nodes (%s), want %d", c.src, got, n, c.nodes)
			}
		})
	}
}

// TestOptimizeEquivalence checks that optimizing never changes the
// evaluated result, and that a second pass changes nothing further.
func TestOptimizeEquivalence(t *testing.T) {
	srcs := []string{
		"x^2+a*x+1/sin(x)",
		"sin cos x - ln(x*a)",
		"-x/(a-3)+abs(x-a)",
		"sqrt(x^2)%3",
		"2(3+x)(1+a)",
		"exp(ln(x))+cbrt(x)^2",
		"asin(x/a)+acos(x/a)+atan x",
	}
	bindings := []struct{ x, a float64 }{
		{0.5, 2},
		{1, 3},
		{-0.25, 7},
		{2.5, -1},
	}
	for _, src := range srcs {
		plain, err := parse(src)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		once, err := parse(src)
		if err != nil {
			t.Fatal(err)
		}
		once = optimizeNode(once)
		twice := optimizeNode(once)
		for _, b := range bindings {
			look := func(p byte) (float64, error) {
				switch p {
				case 'x':
					return b.x, nil
				case 'a':
					return b.a, nil
				}
				return 0, &UnassignedParamError{Name: p}
			}
			want, err := evalNode(plain, look)
			if err != nil {
				t.Fatalf("%q at x=%g a=%g: %v", src, b.x, b.a, err)
			}
			got, err := evalNode(once, look)
			if err != nil {
				t.Fatalf("%q optimized at x=%g a=%g: %v", src, b.x, b.a, err)
			}
			if !closeEnough(want, got) {
				t.Errorf("%q at x=%g a=%g: plain %g, optimized %g", src, b.x, b.a, want, got)
			}
			again, err := evalNode(twice, look)
			if err != nil {
				t.Fatalf("%q reoptimized at x=%g a=%g: %v", src, b.x, b.a, err)
			}
			if !closeEnough(got, again) {
				t.Errorf("%q at x=%g a=%g: second optimize changed %g to %g", src, b.x, b.a, got, again)
			}
		}
	}
}

func closeEnough(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) == math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	d := math.Abs(a - b)
	return d <= 1e-12 || d <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

func TestOptimizeKeepsNames(t *testing.T) {
	n, err := parse("sin cos x")
	if err != nil {
		t.Fatal(err)
	}
	n = optimizeNode(n)
	if n.kind != nodeUnary {
		t.Fatalf("optimized to %v node, want unary", n.kind)
	}
	if n.unary.Name != "sin∘cos" {
		t.Errorf("composed function is named %q, want sin∘cos", n.unary.Name)
	}
}
