package profile

import "math"

// Station pairs a position along the transition axis with the cross
// section profile there.
type Station struct {
	Pos   float64
	Shape Params
}

// Blend returns the cross section at fraction s between from (s=0) and
// to (s=1). The cross-sectional area is an exact affine blend of the
// end areas. The shape parameters are blended linearly to fix the
// aspect ratio and corner sharpness, then the semi-axes are rescaled
// uniformly to hit the area target: a linear area taper matches the
// physical flow transition better than blending the shape alone.
func Blend(from, to Params, s float64) Params {
	target := from.Area() + s*(to.Area()-from.Area())
	q := Params{
		A: from.A + s*(to.A-from.A),
		B: from.B + s*(to.B-from.B),
		N: from.N + s*(to.N-from.N),
	}
	scale := 1.0
	if raw := q.Area(); raw != 0 {
		scale = math.Sqrt(target / raw)
	}
	q.A *= scale
	q.B *= scale
	return q
}

// Stations lays out sections+1 stations between two end profiles.
// Positions run from offsetStart to length-offsetEnd in equal steps
// along the axis; station 0 carries the from profile. Nonzero offsets
// inset the end stations, which is how an inner shell keeps clear of
// the outer shell's end faces for a robust boolean subtraction.
func Stations(from, to Params, length float64, sections int, offsetStart, offsetEnd float64) []Station {
	if sections < 1 {
		panic("need at least 1 loft section")
	}
	effective := length - offsetStart - offsetEnd
	stations := make([]Station, sections+1)
	for i := range stations {
		s := float64(i) / float64(sections)
		stations[i] = Station{
			Pos:   offsetStart + effective*s,
			Shape: Blend(from, to, s),
		}
	}
	return stations
}
