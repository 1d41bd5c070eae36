package duct

import (
	"errors"
	"math"
	"sort"

	"fanduct/profile"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// loft is an SDF3 that interpolates a stack of closed 2D profiles
// placed on planes normal to +x. Between neighbouring stations the
// profile distance is blended linearly in x; outside the first and
// last stations the slab term caps the solid with flat end faces.
type loft struct {
	xs       []float64
	profiles []sdf.SDF2
	bb       r3.Box
}

// Loft builds a solid through the given stations. Each station's
// superellipse is polygonized with points vertices. At least two
// stations with strictly increasing positions are required.
func Loft(stations []profile.Station, points int) (sdf.SDF3, error) {
	if len(stations) < 2 {
		return nil, errors.New("loft needs at least 2 stations")
	}
	if points < 3 {
		return nil, errors.New("loft needs at least 3 profile points")
	}
	s := &loft{
		xs:       make([]float64, len(stations)),
		profiles: make([]sdf.SDF2, len(stations)),
	}
	yz := r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for i, st := range stations {
		if i > 0 && st.Pos <= stations[i-1].Pos {
			return nil, errors.New("loft station positions must be strictly increasing")
		}
		wire := must2.Polygon(st.Shape.Points(points))
		s.xs[i] = st.Pos
		s.profiles[i] = wire
		wb := wire.Bounds()
		yz.Min = r2.Vec{X: math.Min(yz.Min.X, wb.Min.X), Y: math.Min(yz.Min.Y, wb.Min.Y)}
		yz.Max = r2.Vec{X: math.Max(yz.Max.X, wb.Max.X), Y: math.Max(yz.Max.Y, wb.Max.Y)}
	}
	s.bb = r3.Box{
		Min: r3.Vec{X: s.xs[0], Y: yz.Min.X, Z: yz.Min.Y},
		Max: r3.Vec{X: s.xs[len(s.xs)-1], Y: yz.Max.X, Z: yz.Max.Y},
	}
	return s, nil
}

// Evaluate returns the minimum distance to the lofted solid.
func (s *loft) Evaluate(p r3.Vec) float64 {
	q := r2.Vec{X: p.Y, Y: p.Z}
	n := len(s.xs)
	var a float64
	i := sort.SearchFloat64s(s.xs, p.X)
	switch i {
	case 0:
		a = s.profiles[0].Evaluate(q)
	case n:
		a = s.profiles[n-1].Evaluate(q)
	default:
		k := (p.X - s.xs[i-1]) / (s.xs[i] - s.xs[i-1])
		a = mix(s.profiles[i-1].Evaluate(q), s.profiles[i].Evaluate(q), k)
	}
	// Distance to the axial slab between the end stations.
	b := math.Max(s.xs[0]-p.X, p.X-s.xs[n-1])

	// Same quadrant logic as a two-profile loft: inside/outside the
	// slab crossed with inside/outside the blended profile.
	switch {
	case b > 0 && a < 0:
		return b
	case b > 0 && a >= 0:
		return math.Hypot(a, b)
	case b <= 0 && a < 0:
		return math.Max(a, b)
	}
	return a
}

// Bounds returns the bounding box of the lofted solid.
func (s *loft) Bounds() r3.Box {
	return s.bb
}

func mix(x, y, k float64) float64 {
	return x + k*(y-x)
}
