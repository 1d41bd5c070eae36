// Generates a printable transition duct that adapts a round inline fan
// to a flat slot under a cabinet door: superellipse loft from a
// 233x20 mm rectangular outlet to a Ø125 mm inlet with a drilled
// mounting flange, laid flat for printing and trimmed at the door
// edge. Writes the STL, a preview render and a cross-section plot.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"fanduct/duct"
	"fanduct/internal/stlio"

	"github.com/soypat/sdf/render"
)

const (
	// Fan side. The duct slips over a 125 mm inline fan outlet.
	inletInnerDiameter = 125.0
	wallThickness      = 1.6
	// Axial length of the transition.
	transitionLength = 170.0
	// Door slot side, outer envelope.
	outletOuterWidth  = 233.0
	outletOuterHeight = 20.0
	// Superellipse exponent at the rectangular end.
	rectExponent = 10.0

	loftSections  = 40
	profilePoints = 128
	// Margin for boolean cuts so faces never coincide exactly.
	overlap = 0.01

	flangeThickness      = 1.8
	flangeSize           = inletInnerDiameter + 2*wallThickness
	mountingHoleSpacing  = 105.0
	mountingHoleDiameter = 4.3
	flangeCornerRadius   = flangeSize * 0.1

	// Vertices under 1 mm count as resting on the build plate.
	floorTolerance = 1.0
	// Mesh resolutions: coarse for face/vertex queries, fine for the
	// exported STL (about 0.6 mm cells over the part).
	inspectCells = 128
	exportCells  = 400

	stlPath      = "stl/door_fan_duct.stl"
	previewPath  = "fig/duct.png"
	sectionsPath = "fig/sections.png"
)

func config() duct.Config {
	return duct.Config{
		InletInnerDiameter: inletInnerDiameter,
		WallThickness:      wallThickness,
		TransitionLength:   transitionLength,
		OutletOuterWidth:   outletOuterWidth,
		OutletOuterHeight:  outletOuterHeight,
		RectExponent:       rectExponent,
		LoftSections:       loftSections,
		ProfilePoints:      profilePoints,
		Overlap:            overlap,
		Flange: duct.FlangeConfig{
			Size:         flangeSize,
			Thickness:    flangeThickness,
			HoleSpacing:  mountingHoleSpacing,
			HoleDiameter: mountingHoleDiameter,
			CornerRadius: flangeCornerRadius,
		},
		FloorTolerance: floorTolerance,
		InspectCells:   inspectCells,
	}
}

func main() {
	part, err := duct.Build(config())
	if err != nil {
		log.Fatal(err)
	}
	bb := part.Bounds()
	fmt.Printf("Final part: X=%.1f, Y=%.1f, Z=%.1f\n",
		bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z)

	if err := os.MkdirAll(filepath.Dir(stlPath), 0777); err != nil {
		log.Fatal(err)
	}
	if err := render.CreateSTL(stlPath, render.NewOctreeRenderer(part, exportCells)); err != nil {
		log.Fatal(err)
	}
	tris, err := stlio.ReadFile(stlPath)
	if err != nil && !errors.Is(err, stlio.ErrNormalMismatch) {
		log.Fatal(err)
	}
	if err := stlio.Manifold(tris); err != nil {
		log.Fatalf("exported mesh not closed: %s", err)
	}
	fmt.Printf("STL written to %s (%d triangles, closed manifold)\n", stlPath, len(tris))

	if err := os.MkdirAll(filepath.Dir(previewPath), 0777); err != nil {
		log.Fatal(err)
	}
	if err := stlToPNG(stlPath, previewPath, defaultView); err != nil {
		fmt.Println("Not displaying part - preview failed:", err)
	} else {
		fmt.Println("Preview written to", previewPath)
	}
	if err := plotSections(sectionsPath, config()); err != nil {
		fmt.Println("Section plot failed:", err)
	} else {
		fmt.Println("Section plot written to", sectionsPath)
	}
}
