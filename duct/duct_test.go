package duct

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"fanduct/internal/stlio"
	"fanduct/profile"

	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/floats/scalar"
)

// testConfig returns the documented part dimensions.
func testConfig() Config {
	return Config{
		InletInnerDiameter: 125.0,
		WallThickness:      1.6,
		TransitionLength:   170.0,
		OutletOuterWidth:   233.0,
		OutletOuterHeight:  20.0,
		RectExponent:       10.0,
		LoftSections:       40,
		ProfilePoints:      128,
		Overlap:            0.01,
		Flange: FlangeConfig{
			Size:         128.2,
			Thickness:    1.8,
			HoleSpacing:  105.0,
			HoleDiameter: 4.3,
			CornerRadius: 12.82,
		},
		FloorTolerance: 1.0,
		InspectCells:   128,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := testConfig().validate(); err != nil {
		t.Fatalf("documented defaults rejected: %s", err)
	}
	for _, tc := range []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero inlet", func(c *Config) { c.InletInnerDiameter = 0 }},
		{"negative wall", func(c *Config) { c.WallThickness = -1 }},
		{"zero length", func(c *Config) { c.TransitionLength = 0 }},
		{"outlet thinner than two walls", func(c *Config) { c.OutletOuterHeight = 3 }},
		{"zero exponent", func(c *Config) { c.RectExponent = 0 }},
		{"zero sections", func(c *Config) { c.LoftSections = 0 }},
		{"two profile points", func(c *Config) { c.ProfilePoints = 2 }},
		{"negative overlap", func(c *Config) { c.Overlap = -0.01 }},
		{"zero flange thickness", func(c *Config) { c.Flange.Thickness = 0 }},
		{"negative corner radius", func(c *Config) { c.Flange.CornerRadius = -1 }},
		{"zero floor tolerance", func(c *Config) { c.FloorTolerance = 0 }},
		{"one inspect cell", func(c *Config) { c.InspectCells = 1 }},
	} {
		c := testConfig()
		tc.mutate(&c)
		if err := c.validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestHollowEndFaces(t *testing.T) {
	c := testConfig()
	s, err := Hollow(c)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := inspect(s, 256)
	if err != nil {
		t.Fatal(err)
	}
	const tol = 2.0 // meshing tolerance at this resolution
	outlet, err := faceBounds(tris, -1)
	if err != nil {
		t.Fatal(err)
	}
	if w := outlet.Max.Y - outlet.Min.Y; !scalar.EqualWithinAbs(w, c.OutletOuterWidth, tol) {
		t.Errorf("outlet face width = %g, want about %g", w, c.OutletOuterWidth)
	}
	if h := outlet.Max.Z - outlet.Min.Z; !scalar.EqualWithinAbs(h, c.OutletOuterHeight, tol) {
		t.Errorf("outlet face height = %g, want about %g", h, c.OutletOuterHeight)
	}
	inlet, err := faceBounds(tris, +1)
	if err != nil {
		t.Fatal(err)
	}
	want := c.InletOuterDiameter()
	if d := inlet.Max.Y - inlet.Min.Y; !scalar.EqualWithinAbs(d, want, tol) {
		t.Errorf("inlet face y extent = %g, want about %g", d, want)
	}
	if d := inlet.Max.Z - inlet.Min.Z; !scalar.EqualWithinAbs(d, want, tol) {
		t.Errorf("inlet face z extent = %g, want about %g", d, want)
	}
}

func TestHollowZeroOverlapManifold(t *testing.T) {
	c := testConfig()
	c.Overlap = 0
	s, err := Hollow(c)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := inspect(s, 256)
	if err != nil {
		t.Fatal(err)
	}
	if err := stlio.Manifold(tris); err != nil {
		t.Errorf("zero-overlap shell mesh not closed: %s", err)
	}
}

func TestLayFlatKnownAngle(t *testing.T) {
	// Loft between ellipses of z semi-axis 10 and 30 over x span 100:
	// the underside drops 20 over a run of 100 toward +x, so laying it
	// flat rotates by atan(-0.2).
	s, err := Loft([]profile.Station{
		{Pos: 0, Shape: profile.Params{A: 20, B: 10, N: 2}},
		{Pos: 100, Shape: profile.Params{A: 20, B: 30, N: 2}},
	}, 128)
	if err != nil {
		t.Fatal(err)
	}
	flat, angle, err := LayFlat(s, 128)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Atan(-0.2) * 180 / math.Pi
	if !scalar.EqualWithinAbs(angle, want, 0.2) {
		t.Errorf("lay-flat angle = %g°, want about %g°", angle, want)
	}
	tris, err := inspect(flat, 128)
	if err != nil {
		t.Fatal(err)
	}
	zmin := math.Inf(1)
	for _, tri := range tris {
		for _, v := range tri.V {
			zmin = math.Min(zmin, v.Z)
		}
	}
	if math.Abs(zmin) > 0.5 {
		t.Errorf("lowest vertex after lay flat at z=%g, want about 0", zmin)
	}
}

func TestDoorCutout(t *testing.T) {
	c := testConfig()
	s, err := hollow(c)
	if err != nil {
		t.Fatal(err)
	}
	s = AttachFlange(s, c.TransitionLength, c.InletInnerDiameter, c.Overlap, c.Flange)
	s, _, err = LayFlat(s, c.InspectCells)
	if err != nil {
		t.Fatal(err)
	}
	tris, err := inspect(s, c.InspectCells)
	if err != nil {
		t.Fatal(err)
	}
	edge, err := floorMinX(tris, c.FloorTolerance)
	if err != nil {
		t.Fatal(err)
	}
	cut, err := DoorCutout(s, c.FloorTolerance, c.InspectCells)
	if err != nil {
		t.Fatal(err)
	}
	tris, err = inspect(cut, c.InspectCells)
	if err != nil {
		t.Fatal(err)
	}
	for _, tri := range tris {
		for _, v := range tri.V {
			if v.X < edge-0.5 {
				t.Fatalf("vertex at x=%g survives past the door edge x=%g", v.X, edge)
			}
		}
	}
	// Nothing rests below z = -1, so the floor selection comes back
	// empty.
	if _, err := DoorCutout(s, -1, c.InspectCells); err == nil {
		t.Error("expected error for empty floor selection")
	}
}

func TestBuildDefaultsExportsClosedMesh(t *testing.T) {
	if testing.Short() {
		t.Skip("full pipeline render")
	}
	part, err := Build(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "duct.stl")
	if err := render.CreateSTL(path, render.NewOctreeRenderer(part, 300)); err != nil {
		t.Fatal(err)
	}
	tris, err := stlio.ReadFile(path)
	if err != nil && !errors.Is(err, stlio.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(tris) == 0 {
		t.Fatal("no triangles read back")
	}
	if err := stlio.Manifold(tris); err != nil {
		t.Errorf("exported mesh not closed: %s", err)
	}
}
