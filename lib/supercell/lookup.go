package supercell

/* lookup.go implements the fuzzy point index used to deduplicate k-points
during mesh closure. Points live in fractional reciprocal coordinates and are
periodic with period 1 along each axis, so lookups must match across the zone
seam: 0.4999 and -0.5 are the same point. */

import (
	"math"

	"github.com/phil-mansfield/bravais/lib/geom"
)

type lookupEntry struct {
	i int
	p geom.Vec
}

// PeriodicLookup is an approximate lookup table over fractional 3-vectors.
// Two points match when their wrapped difference d satisfies
// d.(metric*d) <= tol^2 * tr(metric)/3, i.e. tol behaves like a relative
// tolerance on fractional coordinates regardless of the metric's scale.
//
// Internally points are binned on a periodic grid. The bin width is always
// enormous compared to the tolerance, so a query only ever needs to inspect
// the 27 bins around its own.
type PeriodicLookup struct {
	metric geom.Mat
	tol2 float64
	bins int
	buckets map[geom.IVec][]lookupEntry
}

// NewPeriodicLookup creates a lookup that measures distances with the given
// metric tensor and matching tolerance tol. capacity is a hint for the number
// of points that will be inserted and only affects bucket sizing.
func NewPeriodicLookup(metric geom.Mat, tol float64, capacity int) *PeriodicLookup {
	bins := int(math.Cbrt(float64(capacity))) + 1
	if bins < 4 { bins = 4 }
	if bins > 64 { bins = 64 }

	scale := (metric[0][0] + metric[1][1] + metric[2][2]) / 3
	return &PeriodicLookup{
		metric: metric,
		tol2: tol * tol * scale,
		bins: bins,
		buckets: map[geom.IVec][]lookupEntry{ },
	}
}

// bin maps a fractional point to its periodic grid cell.
func (pl *PeriodicLookup) bin(p geom.Vec) geom.IVec {
	b := geom.IVec{ }
	for i := 0; i < 3; i++ {
		f := p[i] - math.Floor(p[i])
		b[i] = int(f * float64(pl.bins)) % pl.bins
	}
	return b
}

// Insert adds a point with an associated index. The caller is responsible for
// not inserting duplicates: call Find first.
func (pl *PeriodicLookup) Insert(i int, p geom.Vec) {
	b := pl.bin(p)
	pl.buckets[b] = append(pl.buckets[b], lookupEntry{ i, p })
}

// Find returns the index of a previously inserted point that matches p to
// within the lookup's tolerance. The second return value is false if no
// inserted point matches.
func (pl *PeriodicLookup) Find(p geom.Vec) (int, bool) {
	b := pl.bin(p)
	for di := -1; di <= 1; di++ {
		for dj := -1; dj <= 1; dj++ {
			for dk := -1; dk <= 1; dk++ {
				nb := geom.IVec{
					((b[0]+di)%pl.bins + pl.bins) % pl.bins,
					((b[1]+dj)%pl.bins + pl.bins) % pl.bins,
					((b[2]+dk)%pl.bins + pl.bins) % pl.bins,
				}
				for _, e := range pl.buckets[nb] {
					d := wrapDiff(p.Sub(e.p))
					if d.Dot(pl.metric.MulVec(d)) <= pl.tol2 {
						return e.i, true
					}
				}
			}
		}
	}
	return -1, false
}

// wrapDiff wraps each component of a fractional difference into [-0.5, 0.5).
func wrapDiff(d geom.Vec) geom.Vec {
	for i := 0; i < 3; i++ {
		d[i] -= math.Floor(0.5 + d[i])
	}
	return d
}
