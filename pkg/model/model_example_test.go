package model_test

import (
	"fmt"

	. "github.com/sohaibafifi/xcsp2cpo/pkg/model"
)

// ExampleSum shows the coefficient form of a weighted sum.
func ExampleSum() {
	c := Sum{
		Variables:    []string{"x", "y"},
		Coefficients: []int{2, 3},
		Condition:    NewCondition(OpLE, IntOperand(20)),
	}
	fmt.Println(c.Render())
	// Output:
	// 2*x + 3*y <= 20;
}

// ExampleChannel shows the m×n link statements of a channel constraint.
func ExampleChannel() {
	c := Channel{List1: []string{"x[0]", "x[1]"}, List2: []string{"y[0]", "y[1]"}}
	fmt.Println(c.Render())
	// Output:
	// (x[0] == 0) == (y[0] == 0);
	// (x[0] == 1) == (y[1] == 0);
	// (x[1] == 0) == (y[0] == 1);
	// (x[1] == 1) == (y[1] == 1);
}

func ExampleDomain_Render() {
	d, _ := ParseDomain("1..3 7 2")
	fmt.Println(d.Render())
	// Output:
	// 1..3, 7
}
