package shapes

import (
	"github.com/soypat/shapes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// transformed applies an affine transform to the geometry of a generator.
// Positions and pivots are mapped as points, normals by the inverse transpose
// and tangents as directions. Other attributes are forwarded untouched.
type transformed struct {
	Delegate
	t      d3.Transform
	normal d3.Transform
	inv    d3.Transform
	// mirror is set when the transform flips handedness, reversing winding.
	mirror bool
}

func newTransformed(g Generator, t d3.Transform) *transformed {
	if g == nil {
		panic("nil Generator argument")
	}
	return &transformed{
		Delegate: Delegate{Gen: g},
		t:        t,
		normal:   t.NormalTransform(),
		inv:      t.Inv(),
		mirror:   t.Det() < 0,
	}
}

// Translated returns g with positions moved by offset.
func Translated(g Generator, offset r3.Vec) Generator {
	return newTransformed(g, d3.Translation(offset))
}

// Scaled returns g with positions scaled by factor about the origin.
// Negative factors mirror the shape; winding of draw operations is
// flipped accordingly. It panics if a factor is zero.
func Scaled(g Generator, factor r3.Vec) Generator {
	if factor.X == 0 || factor.Y == 0 || factor.Z == 0 {
		panic("zero scale factor")
	}
	return newTransformed(g, d3.Scaling(factor))
}

// Centered returns g translated so its bounding sphere is centered
// at the origin.
func Centered(g Generator) Generator {
	c := g.BoundingSphere().Center
	return newTransformed(g, d3.Translation(r3.Scale(-1, c)))
}

func (m *transformed) AttribValues(v AttribVariant, dst []float32) {
	m.Gen.AttribValues(v, dst)
	var apply func(r3.Vec) r3.Vec
	switch v.Kind {
	case Position, Pivot:
		apply = m.t.Transform
	case Normal:
		apply = func(n r3.Vec) r3.Vec { return r3.Unit(m.normal.Direction(n)) }
	case Tangent, Bitangent:
		apply = func(d r3.Vec) r3.Vec { return r3.Unit(m.t.Direction(d)) }
	default:
		return
	}
	n := m.Gen.ValuesPerVertex(v)
	if n < 3 {
		return
	}
	nv := m.Gen.VertexCount()
	for i := 0; i < nv; i++ {
		p := dst[i*n : i*n+3]
		q := apply(r3.Vec{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])})
		p[0], p[1], p[2] = float32(q.X), float32(q.Y), float32(q.Z)
	}
}

func (m *transformed) Instructions(drawVariant int, dst []DrawOp) {
	m.Gen.Instructions(drawVariant, dst)
	if !m.mirror {
		return
	}
	n := m.Gen.OperationCount(drawVariant)
	for i := range dst[:n] {
		dst[i].CW = !dst[i].CW
	}
}

func (m *transformed) BoundingSphere() Sphere {
	s := m.Gen.BoundingSphere()
	return Sphere{
		Center: m.t.Transform(s.Center),
		Radius: s.Radius * m.t.MaxScale(),
	}
}

// RayIntersections maps rays into the wrapped generator's space. Ray
// parameters are invariant under affine maps so hits need no conversion.
func (m *transformed) RayIntersections(rays []Ray, hits []Hit) bool {
	ri, ok := m.Gen.(RayIntersector)
	if !ok {
		return false
	}
	local := make([]Ray, len(rays))
	for i, r := range rays {
		o := m.inv.Transform(r.Origin)
		local[i] = Ray{Origin: o, Direction: m.inv.Direction(r.Direction)}
	}
	return ri.RayIntersections(local, hits)
}

// Array replicates g copies times, each copy moved by offset from the
// previous one.
type Array struct {
	Delegate
	offset r3.Vec
	copies int
}

var _ Generator = (*Array)(nil)

// NewArray returns an Array of g. It panics if copies is less than 1.
func NewArray(g Generator, offset r3.Vec, copies int) *Array {
	if g == nil {
		panic("nil Generator argument")
	}
	if copies < 1 {
		panic("copies must be at least 1")
	}
	return &Array{Delegate: Delegate{Gen: g}, offset: offset, copies: copies}
}

func (a *Array) VertexCount() int { return a.copies * a.Gen.VertexCount() }

func (a *Array) AttribValues(v AttribVariant, dst []float32) {
	n := a.Gen.ValuesPerVertex(v)
	nv := a.Gen.VertexCount()
	size := n * nv
	MustFit("attribute", len(dst), size*a.copies)
	a.Gen.AttribValues(v, dst[:size])
	for k := 1; k < a.copies; k++ {
		copy(dst[k*size:(k+1)*size], dst[:size])
	}
	if (v.Kind != Position && v.Kind != Pivot) || n < 3 {
		return
	}
	for k := 1; k < a.copies; k++ {
		off := r3.Scale(float64(k), a.offset)
		for i := 0; i < nv; i++ {
			p := dst[k*size+i*n:]
			p[0] += float32(off.X)
			p[1] += float32(off.Y)
			p[2] += float32(off.Z)
		}
	}
}

// IndexType widens the wrapped index type if needed to address all copies.
func (a *Array) IndexType(drawVariant int) IndexType {
	it := a.Gen.IndexType(drawVariant)
	if it == IndexNone {
		return IndexNone
	}
	wide := IndexTypeFor(uint32(a.VertexCount() - 1))
	if wide > it {
		return wide
	}
	return it
}

func (a *Array) IndexCount(drawVariant int) int {
	return a.copies * a.Gen.IndexCount(drawVariant)
}

func (a *Array) Indices(drawVariant int, dst []uint32) {
	n := a.Gen.IndexCount(drawVariant)
	MustFit("index", len(dst), n*a.copies)
	a.Gen.Indices(drawVariant, dst[:n])
	restart := a.Gen.IndexType(drawVariant).RestartIndex()
	newRestart := a.IndexType(drawVariant).RestartIndex()
	nv := uint32(a.Gen.VertexCount())
	for k := a.copies - 1; k >= 0; k-- {
		base := uint32(k) * nv
		for i := 0; i < n; i++ {
			idx := dst[i]
			if idx == restart {
				idx = newRestart
			} else {
				idx += base
			}
			dst[k*n+i] = idx
		}
	}
}

func (a *Array) OperationCount(drawVariant int) int {
	return a.copies * a.Gen.OperationCount(drawVariant)
}

func (a *Array) Instructions(drawVariant int, dst []DrawOp) {
	n := a.Gen.OperationCount(drawVariant)
	MustFit("instruction", len(dst), n*a.copies)
	a.Gen.Instructions(drawVariant, dst[:n])
	it := a.IndexType(drawVariant)
	stride := a.Gen.VertexCount()
	if it != IndexNone {
		stride = a.Gen.IndexCount(drawVariant)
	}
	for i := 0; i < n; i++ {
		if dst[i].Indexed() {
			dst[i].IndexType = it
			if dst[i].PrimitiveRestart {
				dst[i].RestartIndex = it.RestartIndex()
			}
		}
	}
	for k := 1; k < a.copies; k++ {
		for i := 0; i < n; i++ {
			op := dst[i]
			op.First += k * stride
			dst[k*n+i] = op
		}
	}
}

func (a *Array) BoundingSphere() Sphere {
	s := a.Gen.BoundingSphere()
	half := float64(a.copies-1) / 2
	return Sphere{
		Center: r3.Add(s.Center, r3.Scale(half, a.offset)),
		Radius: s.Radius + half*r3.Norm(a.offset),
	}
}

// RayIntersections reports false; copies are intersected generically.
func (a *Array) RayIntersections(rays []Ray, hits []Hit) bool { return false }
