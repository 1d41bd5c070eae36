// Package profile generates superellipse cross sections and
// interpolates them along a transition axis.
//
// A superellipse is the closed curve |x/a|^n + |y/b|^n = 1. With n=2 it
// is an ellipse; as n grows it approaches a rectangle with rounded
// corners. Profiles stay superellipses all the way to the rectangular
// end so that lofting between them remains smooth.
package profile

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Params describes a superellipse cross section.
type Params struct {
	A float64 // semi-axis along the local x direction
	B float64 // semi-axis along the local y direction
	N float64 // shape exponent: 2 is an ellipse, larger is boxier
}

// Circle returns the parameters of a circle of diameter d.
func Circle(d float64) Params {
	return Params{A: d / 2, B: d / 2, N: 2}
}

// Rect returns the parameters of a rounded-rectangle approximation
// of size w by h with shape exponent n.
func Rect(w, h, n float64) Params {
	return Params{A: w / 2, B: h / 2, N: n}
}

// Area returns the closed-form superellipse area
//
//	A = 4ab·Γ(1+1/n)² / Γ(1+2/n)
func (q Params) Area() float64 {
	g := math.Gamma(1 + 1/q.N)
	return 4 * q.A * q.B * g * g / math.Gamma(1+2/q.N)
}

// Point returns the point on the curve at parametric angle t in
// radians. t is not the geometric angle of the point except at n=2.
func (q Params) Point(t float64) r2.Vec {
	sin, cos := math.Sincos(t)
	return r2.Vec{X: q.A * axis(cos, q.N), Y: q.B * axis(sin, q.N)}
}

// axis computes sign(c)·|c|^(2/n). The degenerate c=0 case maps to
// exactly 0 to avoid sign ambiguity.
func axis(c, n float64) float64 {
	if c == 0 {
		return 0
	}
	return math.Copysign(math.Pow(math.Abs(c), 2/n), c)
}

// Points returns count points on the curve at equal parametric angle
// steps in [0, 2π). The first and last points are distinct; the path
// closes implicitly. Points panics on invalid parameters.
func (q Params) Points(count int) []r2.Vec {
	switch {
	case count < 3:
		panic("superellipse needs at least 3 points")
	case q.N <= 0:
		panic("superellipse exponent must be positive")
	case q.A <= 0 || q.B <= 0:
		panic("superellipse semi-axes must be positive")
	}
	step := 2 * math.Pi / float64(count)
	points := make([]r2.Vec, count)
	for i := range points {
		points[i] = q.Point(step * float64(i))
	}
	return points
}
