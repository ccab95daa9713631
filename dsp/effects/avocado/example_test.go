package avocado_test

import (
	"fmt"

	"github.com/cwbudde/algo-remaincalm/dsp/effects/avocado"
)

func ExampleNew() {
	a, err := avocado.New(48000, avocado.WithSeed(42))
	if err != nil {
		fmt.Println(err)
		return
	}

	a.SetParameterValue(avocado.ParamLength, 250)
	fmt.Println(a.Programs()[0].Name)
	fmt.Println(a.SlotSamples())
	// Output:
	// Avocado Default
	// 12000
}
