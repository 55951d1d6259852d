/*package lib contains the configuration layer shared by the bravais CLI
modes. Almost all of the heavy lifting is done by lib/'s subpackages: lattice
reduction and symmetry search live in lib/lattice, supercell construction in
lib/supercell, and the real-space cell map in lib/cellmap.
*/
package lib

import (
	"github.com/phil-mansfield/bravais/lib/geom"
)

// Args stores fully processed configuration information. It is the
// post-validation version of Config.
type Args struct {
	// R is the unit lattice. Its columns are lattice vectors.
	R geom.Mat
	// Truncated marks Cartesian directions that are non-periodic.
	Truncated [3]bool
	// KPoints is the irreducible k-point list in fractional reciprocal
	// coordinates.
	KPoints []geom.Vec
	// InvertList is []int{1}, or []int{1, -1} when the mesh should also be
	// closed under inversion (time reversal).
	InvertList []int

	Tolerance float64
	Threads int

	CellMapFile string
	CellMapCache string
}
