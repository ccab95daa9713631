package param_test

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/param"
)

func ExampleSmooth() {
	s := param.NewSmooth[float32](0, 4)
	s.Set(1)

	for range 5 {
		fmt.Printf("%.2f ", s.Tick())
	}
	fmt.Println()

	// Output:
	// 0.25 0.50 0.75 1.00 1.00
}
