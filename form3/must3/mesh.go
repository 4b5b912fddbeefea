package must3

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// attrib is one precomputed attribute variant.
type attrib struct {
	variant shapes.AttribVariant
	n       int
	data    []float32
}

// drawList is the index buffer and operations of a single draw variant.
type drawList struct {
	itype   shapes.IndexType
	indices []uint32
	ops     []shapes.DrawOp
}

// mesh holds precomputed vertex data shared by all generators of this
// package. Index data is laid out by the layout callback every time
// capabilities change.
type mesh struct {
	shapes.Base
	// fixed capabilities can not be disabled.
	fixed   shapes.Capabilities
	nverts  int
	attribs []attrib
	lists   []drawList
	bound   shapes.Sphere
	layout  func(caps shapes.Capabilities) []drawList
}

// newIndexedMesh returns a mesh which always draws with indices.
// Optional capabilities are enabled by default.
func newIndexedMesh(optional shapes.Capabilities, layout func(shapes.Capabilities) []drawList) mesh {
	return mesh{
		Base:   shapes.NewBase(optional | shapes.IndexedDrawing),
		fixed:  shapes.IndexedDrawing,
		layout: layout,
	}
}

// relayout rebuilds index data. Must be called once vertex data is set.
func (m *mesh) relayout() {
	m.lists = m.layout(m.Capabilities())
}

func (m *mesh) Enable(c shapes.Capabilities, on bool) bool {
	if !on && c&m.fixed != 0 {
		return false
	}
	if !m.Base.Enable(c, on) {
		return false
	}
	m.relayout()
	return true
}

func (m *mesh) setPositions(pos []ms3.Vec) {
	m.nverts = len(pos)
	m.addVec3(shapes.Position.Variant(0), pos)
	pts := make([]r3.Vec, len(pos))
	for i, p := range pos {
		pts[i] = r3.Vec{X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
	}
	m.bound = shapes.BoundingSphereOf(pts)
}

func (m *mesh) addVec3(v shapes.AttribVariant, vecs []ms3.Vec) {
	if len(vecs) != m.nverts {
		panic("attribute length mismatch with vertex count")
	}
	data := make([]float32, 0, 3*len(vecs))
	for _, p := range vecs {
		data = append(data, p.X, p.Y, p.Z)
	}
	m.attribs = append(m.attribs, attrib{variant: v, n: 3, data: data})
}

func (m *mesh) addValues(v shapes.AttribVariant, n int, data []float32) {
	if len(data) != n*m.nverts {
		panic("attribute length mismatch with vertex count")
	}
	m.attribs = append(m.attribs, attrib{variant: v, n: n, data: data})
}

func (m *mesh) find(v shapes.AttribVariant) *attrib {
	for i := range m.attribs {
		if m.attribs[i].variant == v {
			return &m.attribs[i]
		}
	}
	return nil
}

func (m *mesh) VertexCount() int { return m.nverts }

func (m *mesh) AttribKinds() (kinds shapes.AttribKinds) {
	for _, a := range m.attribs {
		kinds = kinds.With(a.variant.Kind)
	}
	return kinds
}

func (m *mesh) AttribVariants(kind shapes.AttribKind) (n int) {
	for _, a := range m.attribs {
		if a.variant.Kind == kind {
			n++
		}
	}
	return n
}

func (m *mesh) ValuesPerVertex(v shapes.AttribVariant) int {
	a := m.find(v)
	if a == nil {
		return 0
	}
	return a.n
}

func (m *mesh) AttribValues(v shapes.AttribVariant, dst []float32) {
	a := m.find(v)
	if a == nil {
		panic("unsupported attribute variant " + v.String())
	}
	shapes.MustFit("attribute", len(dst), len(a.data))
	copy(dst, a.data)
}

func (m *mesh) list(drawVariant int) *drawList {
	shapes.MustDrawVariant(m, drawVariant)
	return &m.lists[drawVariant]
}

func (m *mesh) DrawVariants() int { return len(m.lists) }

func (m *mesh) IndexType(drawVariant int) shapes.IndexType { return m.list(drawVariant).itype }

func (m *mesh) IndexCount(drawVariant int) int { return len(m.list(drawVariant).indices) }

func (m *mesh) Indices(drawVariant int, dst []uint32) {
	l := m.list(drawVariant)
	shapes.MustFit("index", len(dst), len(l.indices))
	copy(dst, l.indices)
}

func (m *mesh) OperationCount(drawVariant int) int { return len(m.list(drawVariant).ops) }

func (m *mesh) Instructions(drawVariant int, dst []shapes.DrawOp) {
	l := m.list(drawVariant)
	shapes.MustFit("instruction", len(dst), len(l.ops))
	copy(dst, l.ops)
}

func (m *mesh) BoundingSphere() shapes.Sphere { return m.bound }

// triangleList returns an indexed Triangles draw list over tris.
func triangleList(nverts int, tris [][3]uint32, cw bool) drawList {
	it := shapes.IndexTypeFor(uint32(nverts - 1))
	indices := make([]uint32, 0, 3*len(tris))
	for _, t := range tris {
		indices = append(indices, t[0], t[1], t[2])
	}
	return drawList{
		itype:   it,
		indices: indices,
		ops: []shapes.DrawOp{{
			Mode:      shapes.Triangles,
			IndexType: it,
			Count:     len(indices),
			CW:        cw,
		}},
	}
}

// stripList returns strips joined by restart indices if caps allow,
// or one operation per strip otherwise.
func stripList(caps shapes.Capabilities, nverts int, strips [][]uint32, cw bool) drawList {
	it := shapes.IndexTypeFor(uint32(nverts - 1))
	var l drawList
	l.itype = it
	if caps.Restart() {
		first := true
		for _, s := range strips {
			if !first {
				l.indices = append(l.indices, it.RestartIndex())
			}
			first = false
			l.indices = append(l.indices, s...)
		}
		l.ops = []shapes.DrawOp{{
			Mode:             shapes.TriangleStrip,
			IndexType:        it,
			Count:            len(l.indices),
			RestartIndex:     it.RestartIndex(),
			PrimitiveRestart: true,
			CW:               cw,
		}}
		return l
	}
	for _, s := range strips {
		l.ops = append(l.ops, shapes.DrawOp{
			Mode:      shapes.TriangleStrip,
			IndexType: it,
			First:     len(l.indices),
			Count:     len(s),
			CW:        cw,
		})
		l.indices = append(l.indices, s...)
	}
	return l
}

func vec(x, y, z float32) ms3.Vec { return ms3.Vec{X: x, Y: y, Z: z} }
