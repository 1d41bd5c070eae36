// Package duct builds a printable transition duct: a thin-walled loft
// from a rounded-rectangle outlet to a circular inlet, with a drilled
// mounting flange on the inlet end. The finished part is rotated to
// rest flat on the build plate and trimmed where it would collide with
// a cabinet door edge.
package duct

import (
	"errors"
	"math"

	"fanduct/profile"

	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config holds every dimension of the part. All lengths share one unit
// (millimetres in practice).
type Config struct {
	// Inlet bore, the fan side. The outer diameter adds two walls.
	InletInnerDiameter float64
	// Shell thickness everywhere except the lofted midsection, where
	// the inner and outer shells taper independently.
	WallThickness float64
	// Axial distance from the outlet plane to the inlet plane.
	TransitionLength float64
	// Outer envelope of the rectangular outlet.
	OutletOuterWidth  float64
	OutletOuterHeight float64
	// Superellipse exponent of the rectangular end. 2 is an ellipse,
	// 10 gives corners tight enough to print against a flat gap.
	RectExponent float64
	// Loft discretization.
	LoftSections  int
	ProfilePoints int
	// Boolean margin. The inner shell is inset by this much at the
	// outlet and the inlet bore pokes through by the same amount, so
	// the subtraction never leaves a coincident-face membrane.
	Overlap float64

	Flange FlangeConfig

	// Vertices below this height count as resting on the build plate
	// when locating the door cutout.
	FloorTolerance float64
	// Cell count of the coarse meshes used for face and vertex
	// queries. Export resolution is chosen by the caller.
	InspectCells int
}

// InletOuterDiameter returns the inlet bore plus two walls.
func (c Config) InletOuterDiameter() float64 {
	return c.InletInnerDiameter + 2*c.WallThickness
}

// OutletInnerWidth returns the outlet opening width.
func (c Config) OutletInnerWidth() float64 {
	return c.OutletOuterWidth - 2*c.WallThickness
}

// OutletInnerHeight returns the outlet opening height.
func (c Config) OutletInnerHeight() float64 {
	return c.OutletOuterHeight - 2*c.WallThickness
}

func (c Config) validate() error {
	switch {
	case c.InletInnerDiameter <= 0, c.WallThickness <= 0,
		c.TransitionLength <= 0, c.OutletOuterWidth <= 0, c.OutletOuterHeight <= 0:
		return errors.New("duct dimensions must be positive")
	case c.OutletInnerWidth() <= 0 || c.OutletInnerHeight() <= 0:
		return errors.New("outlet too small for the wall thickness")
	case c.RectExponent <= 0:
		return errors.New("rectangle exponent must be positive")
	case c.LoftSections < 1:
		return errors.New("need at least 1 loft section")
	case c.ProfilePoints < 3:
		return errors.New("need at least 3 profile points")
	case c.Overlap < 0:
		return errors.New("overlap must not be negative")
	case c.Flange.Size <= 0, c.Flange.Thickness <= 0,
		c.Flange.HoleSpacing <= 0, c.Flange.HoleDiameter <= 0:
		return errors.New("flange dimensions must be positive")
	case c.Flange.CornerRadius < 0:
		return errors.New("flange corner radius must not be negative")
	case c.FloorTolerance <= 0:
		return errors.New("floor tolerance must be positive")
	case c.InspectCells < 2:
		return errors.New("need at least 2 inspection cells")
	}
	return nil
}

// Hollow returns the open duct shell: the outer loft with the inner
// loft carved out and the inlet opening cleared. The outlet plane sits
// on x=0 and the inlet plane on x=TransitionLength, both normal to +x.
func Hollow(c Config) (sdf.SDF3, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	return hollow(c)
}

func hollow(c Config) (sdf.SDF3, error) {
	outletOuter := profile.Rect(c.OutletOuterWidth, c.OutletOuterHeight, c.RectExponent)
	inletOuter := profile.Circle(c.InletOuterDiameter())
	outer, err := Loft(
		profile.Stations(outletOuter, inletOuter, c.TransitionLength, c.LoftSections, 0, 0),
		c.ProfilePoints,
	)
	if err != nil {
		return nil, err
	}

	outletInner := profile.Rect(c.OutletInnerWidth(), c.OutletInnerHeight(), c.RectExponent)
	inletInner := profile.Circle(c.InletInnerDiameter)
	// The inner shell runs one overlap longer so that after insetting
	// both ends it spans [overlap, length]: inset at the outlet,
	// flush at the inlet.
	inner, err := Loft(
		profile.Stations(outletInner, inletInner, c.TransitionLength+c.Overlap,
			c.LoftSections, c.Overlap, c.Overlap),
		c.ProfilePoints,
	)
	if err != nil {
		return nil, err
	}
	shell := sdf.Difference3D(outer, inner)
	if c.Overlap == 0 {
		return shell, nil
	}

	// The inner shell ends flush with the inlet plane, which leaves
	// the boolean result ambiguous there. A short bore straddling the
	// plane clears the opening.
	bore := must3.Cylinder(2*c.Overlap, (c.InletInnerDiameter-c.Overlap)/2, 0)
	open := sdf.Transform3D(bore,
		sdf.Translate3D(r3.Vec{X: c.TransitionLength}).Mul(sdf.RotateY(0.5*math.Pi)))
	return sdf.Difference3D(shell, open), nil
}

// Build assembles the finished part: hollow shell, flange, lay-flat
// rotation onto the build plate, door-edge cutout.
func Build(c Config) (sdf.SDF3, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	s, err := hollow(c)
	if err != nil {
		return nil, err
	}
	s = AttachFlange(s, c.TransitionLength, c.InletInnerDiameter, c.Overlap, c.Flange)
	s, _, err = LayFlat(s, c.InspectCells)
	if err != nil {
		return nil, err
	}
	return DoorCutout(s, c.FloorTolerance, c.InspectCells)
}
