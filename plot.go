package main

import (
	"fmt"

	"fanduct/duct"
	"fanduct/profile"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// plotSections draws the outer cross-section outlines at a handful of
// stations along the transition, outlet to inlet.
func plotSections(path string, c duct.Config) error {
	const (
		sections = 8
		points   = 128
	)
	p := plot.New()
	p.Title.Text = "duct cross sections, outlet to inlet"
	p.X.Label.Text = "y [mm]"
	p.Y.Label.Text = "z [mm]"

	outlet := profile.Rect(c.OutletOuterWidth, c.OutletOuterHeight, c.RectExponent)
	inlet := profile.Circle(c.InletOuterDiameter())
	for i, st := range profile.Stations(outlet, inlet, c.TransitionLength, sections, 0, 0) {
		pts := st.Shape.Points(points)
		xys := make(plotter.XYs, len(pts)+1)
		for j, q := range pts {
			xys[j].X, xys[j].Y = q.X, q.Y
		}
		xys[len(pts)] = xys[0] // close the outline
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("x=%.0f", st.Pos), line)
	}
	return p.Save(24*vg.Centimeter, 14*vg.Centimeter, path)
}
