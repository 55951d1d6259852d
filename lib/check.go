package lib

/* check.go implements the "check" mode, which validates a configuration
without running anything expensive. */

import (
	"fmt"
	"math"
)

// Check runs sanity tests on the processed arguments that go beyond the
// parse-time validation, printing a description of each problem found. It
// returns true if no problems were detected.
func Check(args *Args) bool {
	ok := true

	vol := math.Abs(args.R.Det())
	norm2 := args.R.Norm2()
	// A lattice this flat will technically invert, but every tolerance-based
	// comparison downstream becomes meaningless.
	if vol < 1e-8*math.Pow(norm2/3, 1.5) {
		fmt.Printf("The lattice vectors are nearly linearly dependent " +
			"(cell volume %g). Geometric comparisons at tolerance %g will " +
			"not be reliable.\n", vol, args.Tolerance)
		ok = false
	}

	if len(args.KPoints) == 0 {
		fmt.Println("The [kmesh] section contains no k-points, so the " +
			"'supercell' and 'cellmap' modes will fail.")
		ok = false
	}

	for i, k := range args.KPoints {
		for j := 0; j < 3; j++ {
			if k[j] < -0.5 || k[j] >= 0.5 {
				fmt.Printf("k-point %d, (%g %g %g), is outside the " +
					"centered zone [-0.5, 0.5). It will be wrapped, which " +
					"is usually fine but may not be what you intended.\n",
					i+1, k[0], k[1], k[2])
			}
		}
	}

	return ok
}
