// Package stlio reads binary STL files back for verification: header
// and triangle validation plus a closed-manifold check on the edge
// graph. It exists so an exported mesh can be judged printable without
// opening it in a slicer.
package stlio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/chewxy/math32"
	"github.com/soypat/sdf/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNormalMismatch flags triangles whose stored normal disagrees with
// the normal computed from the vertices. The triangles are still
// returned; many renderers emit sloppy normals on near-degenerate
// facets.
var ErrNormalMismatch = errors.New("stored triangle normal disagrees with vertices")

// ReadFile reads a binary STL file.
func ReadFile(path string) ([]render.Triangle3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads a binary STL stream. On ErrNormalMismatch the triangles
// are returned alongside the error; any other error is fatal.
func Read(r io.Reader) ([]render.Triangle3, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("STL header: %w", err)
	}
	if header.Count == 0 {
		return nil, errors.New("STL header declares 0 triangles")
	}
	var (
		d          stlTriangle
		mismatches int
	)
	tris := make([]render.Triangle3, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		if err := binary.Read(r, binary.LittleEndian, &d); err != nil {
			return nil, fmt.Errorf("%d/%d STL triangles read: %w", i, header.Count, err)
		}
		if err := d.validate(); err != nil {
			if !errors.Is(err, ErrNormalMismatch) {
				return nil, fmt.Errorf("triangle %d: %w", i, err)
			}
			mismatches++
		}
		tris = append(tris, d.triangle())
	}
	if mismatches > 0 {
		return tris, fmt.Errorf("%d triangles: %w", mismatches, ErrNormalMismatch)
	}
	return tris, nil
}

// quantum is the vertex welding grid pitch for the manifold check:
// fine enough to keep distinct mesh vertices apart at sane cell sizes,
// coarse enough to absorb float32 round-off between triangles that
// share an edge.
const quantum = 1e-4

// Manifold reports whether the triangles form a closed surface: every
// undirected edge must be shared by exactly two triangles. Vertices
// are welded onto a grid of pitch quantum before matching.
func Manifold(tris []render.Triangle3) error {
	if len(tris) == 0 {
		return errors.New("empty mesh")
	}
	type vertex [3]int64
	type edge [2]vertex
	edges := make(map[edge]int, 3*len(tris))
	for _, t := range tris {
		var v [3]vertex
		for i, p := range t.V {
			v[i] = vertex{quantize(p.X), quantize(p.Y), quantize(p.Z)}
		}
		// Slivers thinner than the weld pitch collapse to a repeated
		// edge; drop them rather than double-count it.
		if v[0] == v[1] || v[1] == v[2] || v[2] == v[0] {
			continue
		}
		for i := 0; i < 3; i++ {
			a, b := v[i], v[(i+1)%3]
			if less(b, a) {
				a, b = b, a
			}
			edges[edge{a, b}]++
		}
	}
	if len(edges) == 0 {
		return errors.New("mesh collapsed to slivers")
	}
	for e, n := range edges {
		if n != 2 {
			return fmt.Errorf("edge %v-%v shared by %d triangles, want 2", e[0], e[1], n)
		}
	}
	return nil
}

func quantize(x float64) int64 {
	return int64(math.Round(x / quantum))
}

func less(a, b [3]int64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

type stlHeader struct {
	_     [80]uint8
	Count uint32
}

type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16
}

func (t stlTriangle) validate() error {
	const (
		epsilon = 1e-12
		normTol = 5e-2
	)
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN vertex")
	}
	if equalWithin3F32(t.Vertex1, t.Vertex2, epsilon) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, epsilon) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, epsilon) {
		return errors.New("degenerate triangle")
	}
	calc := t.normalFromVertices()
	neg := [3]float32{-calc[0], -calc[1], -calc[2]}
	if !equalWithin3F32(calc, t.Normal, normTol) && !equalWithin3F32(neg, t.Normal, normTol) {
		return ErrNormalMismatch
	}
	return nil
}

func (t stlTriangle) normalFromVertices() [3]float32 {
	v1 := vecFrom3F32(t.Vertex1)
	v2 := vecFrom3F32(t.Vertex2)
	v3 := vecFrom3F32(t.Vertex3)
	n := r3.Unit(r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1)))
	return [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
}

func (t stlTriangle) triangle() render.Triangle3 {
	return render.Triangle3{V: [3]r3.Vec{
		vecFrom3F32(t.Vertex1),
		vecFrom3F32(t.Vertex2),
		vecFrom3F32(t.Vertex3),
	}}
}

func vecFrom3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}
