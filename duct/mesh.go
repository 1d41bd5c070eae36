package duct

import (
	"errors"
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// Face and vertex queries run on a coarse inspection mesh instead of
// the SDF itself: end faces and floor contact are features of the
// triangulated surface, which is also what ends up in the STL.

// alignTol is how far a unit normal may deviate from ±x̂ and still
// count as an end-face triangle.
const alignTol = 1e-4

// inspect triangulates s at the given octree resolution.
func inspect(s sdf.SDF3, cells int) ([]render.Triangle3, error) {
	return render.RenderAll(render.NewOctreeRenderer(s, cells))
}

// faceBounds returns the bounding box of the end face looking along
// dir (+1 for the +x face, -1 for the -x face): the cluster of
// x-aligned triangles at the extremal plane in that direction.
func faceBounds(tris []render.Triangle3, dir float64) (r3.Box, error) {
	extreme := math.Inf(-1)
	spanMin, spanMax := math.Inf(1), math.Inf(-1)
	aligned := tris[:0:0]
	for _, t := range tris {
		for _, v := range t.V {
			spanMin = math.Min(spanMin, v.X)
			spanMax = math.Max(spanMax, v.X)
		}
		if t.Normal().X*dir < 1-alignTol {
			continue
		}
		aligned = append(aligned, t)
		for _, v := range t.V {
			extreme = math.Max(extreme, v.X*dir)
		}
	}
	if len(aligned) == 0 {
		return r3.Box{}, errors.New("no axis-aligned end face found")
	}
	// Keep only the triangles on the extremal plane; a counterbore or
	// step elsewhere on the part may face the same way.
	posTol := 1e-3 * (spanMax - spanMin)
	bb := r3.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
	found := false
	for _, t := range aligned {
		onPlane := true
		for _, v := range t.V {
			if extreme-v.X*dir > posTol {
				onPlane = false
				break
			}
		}
		if !onPlane {
			continue
		}
		found = true
		for _, v := range t.V {
			bb.Min = r3.Vec{X: math.Min(bb.Min.X, v.X), Y: math.Min(bb.Min.Y, v.Y), Z: math.Min(bb.Min.Z, v.Z)}
			bb.Max = r3.Vec{X: math.Max(bb.Max.X, v.X), Y: math.Max(bb.Max.Y, v.Y), Z: math.Max(bb.Max.Z, v.Z)}
		}
	}
	if !found {
		return r3.Box{}, errors.New("end face cluster is empty")
	}
	return bb, nil
}

// floorMinX returns the smallest x among mesh vertices within floorTol
// of the build plate (z below floorTol).
func floorMinX(tris []render.Triangle3, floorTol float64) (float64, error) {
	minX := math.Inf(1)
	for _, t := range tris {
		for _, v := range t.V {
			if v.Z < floorTol && v.X < minX {
				minX = v.X
			}
		}
	}
	if math.IsInf(minX, 1) {
		return 0, errors.New("no vertices on the build plate")
	}
	return minX, nil
}
