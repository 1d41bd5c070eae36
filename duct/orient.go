package duct

import (
	"fmt"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// LayFlat rotates s about the y axis so the duct's sloped underside
// rests on the build plate, then drops it onto z=0. The slope is read
// off a coarse inspection mesh as the rise of the lowest edge between
// the two end faces. Returns the reoriented part and the applied
// rotation in degrees.
func LayFlat(s sdf.SDF3, inspectCells int) (sdf.SDF3, float64, error) {
	tris, err := inspect(s, inspectCells)
	if err != nil {
		return nil, 0, fmt.Errorf("lay flat: %w", err)
	}
	outlet, err := faceBounds(tris, -1)
	if err != nil {
		return nil, 0, fmt.Errorf("lay flat, outlet face: %w", err)
	}
	inlet, err := faceBounds(tris, +1)
	if err != nil {
		return nil, 0, fmt.Errorf("lay flat, inlet face: %w", err)
	}
	length := inlet.Max.X - outlet.Min.X
	if length <= 0 {
		return nil, 0, fmt.Errorf("lay flat: end faces out of order over %g", length)
	}
	angle := math.Atan((inlet.Min.Z - outlet.Min.Z) / length)

	// Rotating about +y by atan(slope) levels the two lowest edges:
	// for any two points, Δz' = cosθ·(Δz − slope·Δx).
	flat := sdf.Transform3D(s, sdf.RotateY(angle))
	sin, cos := math.Sincos(angle)
	zmin := math.Inf(1)
	for _, t := range tris {
		for _, v := range t.V {
			zmin = math.Min(zmin, cos*v.Z-sin*v.X)
		}
	}
	flat = sdf.Transform3D(flat, sdf.Translate3D(r3.Vec{Z: -zmin}))
	return flat, sdf.RtoD(angle), nil
}

// DoorCutout trims everything beyond the door edge: the smallest x of
// any floor-contact vertex marks where the part would foul the open
// cabinet door, and an oversized prism removes all geometry past it.
func DoorCutout(s sdf.SDF3, floorTol float64, inspectCells int) (sdf.SDF3, error) {
	tris, err := inspect(s, inspectCells)
	if err != nil {
		return nil, fmt.Errorf("door cutout: %w", err)
	}
	minX, err := floorMinX(tris, floorTol)
	if err != nil {
		return nil, fmt.Errorf("door cutout: %w", err)
	}
	bb := s.Bounds()
	size := r3.Sub(bb.Max, bb.Min)
	prism := sdf.Transform3D(
		must3.Box(r3.Vec{X: 2 * size.X, Y: 2 * size.Y, Z: 2 * size.Z}, 0),
		sdf.Translate3D(r3.Vec{
			X: minX - size.X,
			Y: bb.Min.Y + 0.5*size.Y,
			Z: bb.Min.Z + 0.5*size.Z,
		}))
	return sdf.Difference3D(s, prism), nil
}
