package shapes

import (
	"fmt"
	"math"

	"github.com/soypat/shapes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

const pi = math.Pi

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// ReadAttrib returns a newly allocated buffer with the values of v.
// It returns nil if g does not support v.
func ReadAttrib(g Generator, v AttribVariant) []float32 {
	n := g.ValuesPerVertex(v)
	if n == 0 {
		return nil
	}
	dst := make([]float32, n*g.VertexCount())
	g.AttribValues(v, dst)
	return dst
}

// ReadIndices returns a newly allocated copy of a draw variant's index buffer.
func ReadIndices(g Generator, drawVariant int) []uint32 {
	dst := make([]uint32, g.IndexCount(drawVariant))
	g.Indices(drawVariant, dst)
	return dst
}

// ReadInstructions returns a newly allocated copy of a draw variant's operations.
func ReadInstructions(g Generator, drawVariant int) []DrawOp {
	dst := make([]DrawOp, g.OperationCount(drawVariant))
	g.Instructions(drawVariant, dst)
	return dst
}

// Variants returns every attribute variant g supports, ordered by kind.
func Variants(g Generator) []AttribVariant {
	var vs []AttribVariant
	for _, k := range g.AttribKinds().Kinds() {
		n := g.AttribVariants(k)
		for i := 0; i < n; i++ {
			vs = append(vs, k.Variant(i))
		}
	}
	return vs
}

// Vectors converts a buffer of n-component values into vectors using
// the first three components. Missing components are zero.
func Vectors(values []float32, n int) []r3.Vec {
	if n <= 0 {
		panic("non-positive component count")
	}
	vecs := make([]r3.Vec, len(values)/n)
	for i := range vecs {
		off := i * n
		var v [3]float64
		for c := 0; c < n && c < 3; c++ {
			v[c] = float64(values[off+c])
		}
		vecs[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
	}
	return vecs
}

// Positions returns the vertex positions of g as vectors, reading
// the position variant v. It panics if v has less than 3 components.
func Positions(g Generator, v AttribVariant) []r3.Vec {
	n := g.ValuesPerVertex(v)
	if n < 3 {
		panic(fmt.Sprintf("position variant %s has %d components, need at least 3", v, n))
	}
	return Vectors(ReadAttrib(g, v), n)
}

// BoundingSphereOf returns a sphere enclosing pts centered at their
// bounding box center.
func BoundingSphereOf(pts []r3.Vec) Sphere {
	if len(pts) == 0 {
		return Sphere{}
	}
	bb := d3.Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		bb = bb.Include(p)
	}
	c := bb.Center()
	var r2 float64
	for _, p := range pts {
		r2 = math.Max(r2, r3.Norm2(r3.Sub(p, c)))
	}
	return Sphere{Center: c, Radius: math.Sqrt(r2)}
}

// MustDrawVariant panics if drawVariant is out of range for g.
func MustDrawVariant(g Generator, drawVariant int) {
	if drawVariant < 0 || drawVariant >= g.DrawVariants() {
		panic(fmt.Sprintf("draw variant %d out of range [0,%d)", drawVariant, g.DrawVariants()))
	}
}

// MustFit panics if a buffer of length have can not hold want elements.
func MustFit(what string, have, want int) {
	if have < want {
		panic(fmt.Sprintf("%s buffer too short: length %d, need %d", what, have, want))
	}
}
