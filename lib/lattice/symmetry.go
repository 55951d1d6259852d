package lattice

/* symmetry.go finds the point group of a Bravais lattice by brute force:
every candidate integer matrix is tested for leaving the metric tensor of the
reduced basis invariant. */

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/phil-mansfield/bravais/lib/geom"
)

// Symmetries is the result of a point-group search. Ops holds the accepted
// operations as integer matrices acting on lattice coordinates of the
// original (unreduced) lattice. It always contains the identity, and for a
// lattice with no symmetry beyond inversion it can legitimately be very
// small. The embedded Reduction is the reduced basis the search ran in.
type Symmetries struct {
	Reduction
	Ops []geom.IMat
}

// FindSymmetries returns every point-group operation of the lattice R, i.e.
// every integer change of basis that leaves the metric tensor of R invariant
// to within the relative tolerance tol. truncated marks Cartesian directions
// that are non-periodic (slab or wire geometries): operations that would
// couple a truncated direction to a periodic one are discarded.
func FindSymmetries(R geom.Mat, truncated [3]bool, tol float64) Symmetries {
	red := Reduce(R, tol)
	metric := red.Reduced.Transpose().Mul(red.Reduced)
	thresh := tol * metric.Norm()

	// The scan is embarrassingly parallel: each worker tests a contiguous
	// index range and keeps its own accepted list, so the merged result is
	// still in candidate-index order.
	workers := runtime.GOMAXPROCS(0)
	if workers > NumCandidates { workers = NumCandidates }
	found := make([][]geom.IMat, workers)

	group := errgroup.Group{ }
	for w := 0; w < workers; w++ {
		w := w
		group.Go(func() error {
			lo := w * NumCandidates / workers
			hi := (w + 1) * NumCandidates / workers
			for n := lo; n < hi; n++ {
				m := Candidate(n)
				mf := m.Float()
				diff := metric.Sub(mf.Transpose().Mul(metric).Mul(mf))
				if diff.Norm() < thresh {
					found[w] = append(found[w], m)
				}
			}
			return nil
		})
	}
	// The workers are pure computations and never return errors.
	_ = group.Wait()

	sym := Symmetries{ red, []geom.IMat{ } }
	for w := range found {
		for _, m := range found[w] {
			// Map back to the original lattice's coordinate system.
			mOrig := red.T.Mul(m).Mul(red.TInv)
			if mixesTruncated(mOrig, truncated) { continue }
			sym.Ops = append(sym.Ops, mOrig)
		}
	}
	return sym
}

// mixesTruncated returns true if the operation has a nonzero entry connecting
// a truncated direction with a periodic one, which would be unphysical for
// slab/wire boundary conditions.
func mixesTruncated(m geom.IMat, truncated [3]bool) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if m[i][j] != 0 && truncated[i] != truncated[j] { return true }
		}
	}
	return false
}
