package spatial_test

import (
	"fmt"

	"github.com/cwbudde/algo-fx/dsp/effects/spatial"
)

func ExampleFlip_ProcessFrame() {
	f := spatial.NewFlip(spatial.FlipInvertBoth)

	l, r := f.ProcessFrame(0.5, -0.3)
	fmt.Println(f.Mode(), l, r)
	// Output:
	// invert-both -0.5 0.3
}

func ExampleMidSideEncoder() {
	enc, err := spatial.NewMidSideEncoder()
	if err != nil {
		fmt.Println("error")
		return
	}

	dec, err := spatial.NewMidSideDecoder()
	if err != nil {
		fmt.Println("error")
		return
	}

	mid, side := enc.ProcessFrame(0.75, 0.25)
	l, r := dec.ProcessFrame(mid, side)
	fmt.Println(mid, side, l, r)
	// Output:
	// 1 0.5 0.75 0.25
}
