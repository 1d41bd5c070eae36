package duct

import (
	"math"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// FlangeConfig describes the mounting flange on the inlet end: a
// rounded-square plate with four fastener holes on a square bolt
// pattern and a central bore matching the duct opening.
type FlangeConfig struct {
	Size         float64 // plate edge length
	Thickness    float64
	HoleSpacing  float64 // edge of the square the hole centers sit on
	HoleDiameter float64
	CornerRadius float64
}

// AttachFlange welds the flange plate onto the +x end face of s at
// x=pos, drills the fastener holes through it and opens the central
// bore of boreDiameter. The bore reaches one overlap into the duct so
// the plate cannot seal the opening it is mounted on. AttachFlange
// works in duct coordinates and must run before any reorientation.
func AttachFlange(s sdf.SDF3, pos, boreDiameter, overlap float64, k FlangeConfig) sdf.SDF3 {
	// Plate sketched in the yz plane, extruded along x, its back face
	// resting on the duct end face.
	onEnd := sdf.Translate3D(r3.Vec{X: pos + 0.5*k.Thickness}).Mul(sdf.RotateY(0.5 * math.Pi))
	plate := sdf.Extrude3D(must2.Box(r2.Vec{X: k.Size, Y: k.Size}, k.CornerRadius), k.Thickness)
	flanged := sdf.Union3D(s, sdf.Transform3D(plate, onEnd))

	cuts := make([]sdf.SDF3, 0, 5)
	drill := must3.Cylinder(4*k.Thickness, k.HoleDiameter/2, 0)
	half := k.HoleSpacing / 2
	for _, at := range []r2.Vec{
		{X: half, Y: half}, {X: -half, Y: half},
		{X: half, Y: -half}, {X: -half, Y: -half},
	} {
		cuts = append(cuts, sdf.Transform3D(drill,
			sdf.Translate3D(r3.Vec{X: pos, Y: at.X, Z: at.Y}).Mul(sdf.RotateY(0.5*math.Pi))))
	}
	bore := must3.Cylinder(k.Thickness+2*overlap, boreDiameter/2, 0)
	cuts = append(cuts, sdf.Transform3D(bore, onEnd))
	return sdf.Difference3D(flanged, sdf.Union3D(cuts...))
}
