package duct_test

import (
	"os"
	"path/filepath"
	"testing"

	"fanduct/duct"
	"fanduct/profile"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	"github.com/soypat/sdf/render"
)

const benchQuality = 300

// The two benchmarks render comparable round-to-rectangle lofts, one
// per kernel, to keep an eye on octree renderer cost at part scale.

func BenchmarkOctreeLoft(b *testing.B) {
	s, err := duct.Loft(profile.Stations(
		profile.Rect(233, 20, 10), profile.Circle(128.2), 170, 40, 0, 0), 128)
	if err != nil {
		b.Fatal(err)
	}
	output := filepath.Join(b.TempDir(), "loft.stl")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		render.CreateSTL(output, render.NewOctreeRenderer(s, benchQuality))
	}
}

func BenchmarkSDFXLoft(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	rect, err := sdfxsdf.Box2D(sdfxsdf.V2{X: 233, Y: 20}, 3)
	if err != nil {
		b.Fatal(err)
	}
	circle, err := sdfxsdf.Circle2D(64.1)
	if err != nil {
		b.Fatal(err)
	}
	s, err := sdfxsdf.Loft3D(rect, circle, 170, 0)
	if err != nil {
		b.Fatal(err)
	}
	output := filepath.Join(b.TempDir(), "sdfx_loft.stl")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(s, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
}
