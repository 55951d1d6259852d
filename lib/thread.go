package lib

/* thread.go contains functions useful for multi-threading. */

import (
	"runtime"

	g_error "github.com/phil-mansfield/bravais/lib/error"
)

// SetThreads caps the number of OS threads used by the symmetry scan and any
// other parallel loops. n = -1 or 0 uses every core.
func SetThreads(n int) {
	if n <= 0 {
		runtime.GOMAXPROCS(runtime.NumCPU())
		return
	}
	if n > runtime.NumCPU() {
		g_error.External("%d threads requested, but your system only has " +
			"%d cores. If you want bravais to use the maximum number of " +
			"threads, set Threads=-1.", n, runtime.NumCPU())
	}
	runtime.GOMAXPROCS(n)
}
