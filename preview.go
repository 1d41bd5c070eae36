package main

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// Scale down images relative to Full HD resolution.
	fhdScaler     = 0.4
	width, height = int(1920. * fhdScaler), int(1080. * fhdScaler)
)

type viewConfig struct {
	lookat r3.Vec // what position to look at
	up     r3.Vec // which way is up
	eyepos r3.Vec // camera position
	far    float64
	near   float64
}

var defaultView = viewConfig{
	up:     r3.Vec{Z: 1},
	eyepos: r3.Vec{X: 2.4, Y: 2.4, Z: 2.4}, // iso view.
	near:   1,
	far:    10,
}

// stlToPNG rasterizes an STL into a shaded snapshot with fauxgl. The
// mesh is fit into a bi-unit cube so the view constants work for any
// part size.
func stlToPNG(stlName, outputname string, view viewConfig) error {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		return err
	}
	const (
		scale = 1  // optional supersampling
		fovy  = 30 // vertical field of view in degrees
	)
	eye := fauxgl.V(view.eyepos.X, view.eyepos.Y, view.eyepos.Z)
	center := fauxgl.V(view.lookat.X, view.lookat.Y, view.lookat.Z)
	up := fauxgl.V(view.up.X, view.up.Y, view.up.Z)
	light := fauxgl.V(-0.75, 1, 0.25).Normalize()

	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.near, view.far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#468966")
	context.Shader = shader
	context.DrawMesh(mesh)
	// Downsample for antialiasing.
	image := resize.Resize(uint(width), uint(height), context.Image(), resize.Bilinear)
	return fauxgl.SavePNG(outputname, image)
}
