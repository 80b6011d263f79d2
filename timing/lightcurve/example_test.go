package lightcurve_test

import (
	"fmt"

	"github.com/cwbudde/algo-nicer/timing/core"
	"github.com/cwbudde/algo-nicer/timing/lightcurve"
)

func ExampleNormalize() {
	res, err := lightcurve.Normalize(lightcurve.Input{
		Time:       core.Series{0, 1, 2, 3},
		Counts:     core.Series{10, 20, 30, 40},
		Detectors:  core.Series{2, 2, 2, 2},
		Background: core.Series{2, 4, 6, 8},
	}, core.WithMinCount(30))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(res.Edges, res.Time, res.Value)
	// Output:
	// [0 2 3 4] [0.5 2 3] [6 12 16]
}
