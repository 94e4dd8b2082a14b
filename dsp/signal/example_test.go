package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-eeg/dsp/signal"
)

func ExampleLinspace() {
	t, err := signal.Linspace(0, 1, 5)
	if err != nil {
		panic(err)
	}
	fmt.Println(t)

	// Output:
	// [0 0.25 0.5 0.75 1]
}

func ExampleNormalize() {
	x, err := signal.Normalize([]float64{-0.5, 0.25, 1}, 0.8)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f %.2f %.2f\n", x[0], x[1], x[2])

	// Output:
	// -0.40 0.20 0.80
}
