package formula_test

import (
	"fmt"

	"github.com/brugo/formula"
)

func Example() {
	e, _ := formula.NewWith(formula.BuildAndOptimize, "a*x^2 + 2*3")
	e.SetParam('a', 2)
	f, _ := e.AsUnary('x')
	for i := 0; i < 4; i++ {
		y, _ := f(float64(i))
		fmt.Printf("x = %d   y = %g\n", i, y)
	}
	// Output:
	// x = 0   y = 6
	// x = 1   y = 8
	// x = 2   y = 14
	// x = 3   y = 24
}

func ExampleCompute() {
	r, _ := formula.Compute("2^3^2")
	fmt.Println(r)
	// Output:
	// 64
}

func ExampleExpression_String() {
	e, _ := formula.New("sin cos x")
	fmt.Println(e)
	fmt.Println(e.Optimize())
	// Output:
	// sin(cos(x))
	// sin∘cos(x)
}
