/*package cellmap partitions real space into a weighted map of unit-cell
lattice images. The map assigns a weight in (0, 1] to every unit-cell lattice
vector whose image lies inside or on the boundary of the supercell's
Wigner-Seitz cell; boundary cells shared between periodic images of the
supercell split a unit weight evenly. The result is the table needed to
interpolate plane-wave quantities between the unit cell and the supercell.*/
package cellmap

import (
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/bravais/lib/geom"
	"github.com/phil-mansfield/bravais/lib/wigner"
)

// Map assigns an interpolation weight to each unit-cell lattice vector,
// keyed by its three integer lattice coordinates. The weights sum to the
// number of unit cells in the supercell.
type Map map[geom.IVec]float64

// Build enumerates the unit-cell lattice vectors of R whose Cartesian image
// lies in the Wigner-Seitz cell of the supercell lattice RSuper and assigns
// their weights. Interior cells get weight 1; cells on the cell boundary are
// grouped into supercell-translation equivalence classes, each class sharing
// a unit weight evenly.
//
// The returned error is an internal-consistency failure (the weights did not
// sum to the cell count): it indicates a bug in the geometric predicates, not
// a bad input, and callers should treat it as fatal.
func Build(R, RSuper geom.Mat, tol float64) (Map, error) {
	ws := wigner.New(RSuper, tol)
	rMax := ws.CircumRadius()

	// Axis-aligned bounding box in lattice-index space that is guaranteed to
	// contain every cell that could intersect the Wigner-Seitz cell.
	invR := R.Inverse()
	iCellMax := geom.IVec{ }
	for l := 0; l < 3; l++ {
		iCellMax[l] = 1 + int(math.Ceil(rMax*invR.Row(l).Norm()))
	}

	superInv := RSuper.Inverse().Mul(R)
	nCells := int(math.Round(math.Abs(1 / superInv.Det())))

	m := Map{ }
	surface := []geom.IVec{ }
	for i0 := -iCellMax[0]; i0 <= iCellMax[0]; i0++ {
		for i1 := -iCellMax[1]; i1 <= iCellMax[1]; i1++ {
			for i2 := -iCellMax[2]; i2 <= iCellMax[2]; i2++ {
				iCell := geom.IVec{ i0, i1, i2 }
				xCell := superInv.MulVec(iCell.Float())
				if ws.OnBoundary(xCell) {
					// Multiplicity not known until all surface cells are in.
					surface = append(surface, iCell)
				} else if ws.BoundaryDistance(xCell) > 0 {
					m[iCell] = 1
				}
			}
		}
	}

	resolveSurface(m, surface, superInv, tol)

	weightSum := 0.0
	for _, w := range m { weightSum += w }
	if math.Abs(weightSum/float64(nCells) - 1) > tol {
		return nil, fmt.Errorf("Cell map weights sum to %g, but the " +
			"supercell contains %d unit cells. This is an internal " +
			"consistency failure in the Wigner-Seitz boundary handling.",
			weightSum, nCells)
	}
	return m, nil
}

// resolveSurface groups boundary cells into classes equivalent under a
// supercell lattice translation and gives every member of a class of size n
// the weight 1/n.
func resolveSurface(m Map, surface []geom.IVec, superInv geom.Mat, tol float64) {
	grouped := make([]bool, len(surface))
	for i := range surface {
		if grouped[i] { continue }
		class := []geom.IVec{ surface[i] }
		for j := i + 1; j < len(surface); j++ {
			if grouped[j] { continue }
			diff := superInv.MulVec(surface[j].Sub(surface[i]).Float())
			if _, err := geom.RoundVec(diff); err < tol {
				class = append(class, surface[j])
				grouped[j] = true
			}
		}
		weight := 1 / float64(len(class))
		for _, iCell := range class { m[iCell] = weight }
	}
}

// SortedCells returns the map's keys in lexicographic order. Go map
// iteration is randomized, so dumps and tests need a deterministic order.
func (m Map) SortedCells() []geom.IVec {
	cells := make([]geom.IVec, 0, len(m))
	for iCell := range m { cells = append(cells, iCell) }
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i], cells[j]
		if a[0] != b[0] { return a[0] < b[0] }
		if a[1] != b[1] { return a[1] < b[1] }
		return a[2] < b[2]
	})
	return cells
}
