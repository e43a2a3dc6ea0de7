package convert_test

import (
	"fmt"

	"github.com/sohaibafifi/xcsp2cpo/pkg/convert"
)

func ExampleConvertString() {
	doc := `
<instance format="XCSP3" type="COP">
  <variables>
    <array id="x" size="[3]"> 0..9 </array>
  </variables>
  <constraints>
    <allDifferent> x[] </allDifferent>
    <intension> gt(x[0],add(x[1],x[2])) </intension>
  </constraints>
  <objectives>
    <minimize type="sum"> x[] </minimize>
  </objectives>
</instance>`

	text, err := convert.ConvertString(doc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(text)
	// Output:
	// // Variables
	// x = [intVar(0..9), intVar(0..9), intVar(0..9)];
	//
	// // Constraints
	// alldiff([x[0], x[1], x[2]]);
	// (x[0] > (x[1] + x[2]));
	//
	// // Objective
	// minimize(sum([x[0], x[1], x[2]]));
}

func ExampleGetVersion() {
	fmt.Println(convert.GetVersion())
	// Output: 0.1.0
}
