package must3

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

// boxFace describes one face of an axis aligned cube. u cross v equals n.
type boxFace struct {
	n, u, v ms3.Vec
}

var boxFaces = [6]boxFace{
	{n: vec(1, 0, 0), u: vec(0, 1, 0), v: vec(0, 0, 1)},
	{n: vec(-1, 0, 0), u: vec(0, 0, 1), v: vec(0, 1, 0)},
	{n: vec(0, 1, 0), u: vec(0, 0, 1), v: vec(1, 0, 0)},
	{n: vec(0, -1, 0), u: vec(1, 0, 0), v: vec(0, 0, 1)},
	{n: vec(0, 0, 1), u: vec(1, 0, 0), v: vec(0, 1, 0)},
	{n: vec(0, 0, -1), u: vec(0, 1, 0), v: vec(1, 0, 0)},
}

// quad corner coordinates in face space, counter-clockwise.
var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// Cube is an axis aligned cube centered at the origin made of 6 flat
// shaded faces, 4 vertices each.
type Cube struct {
	mesh
	size   float32
	inward bool
}

var _ shapes.Generator = (*Cube)(nil)

// NewCube returns a cube with edge length size. Faces are drawn as two
// triangles each, or as one strip each when strips are enabled.
func NewCube(size float64) *Cube {
	if size <= 0 {
		panic("size <= 0")
	}
	c := &Cube{size: float32(size)}
	c.build()
	return c
}

// NewSkybox returns a cube of edge length 2 meant to be seen from inside.
// Its draw operations are flagged clockwise and its normals point inward.
func NewSkybox() *Cube {
	c := &Cube{size: 2, inward: true}
	c.build()
	return c
}

func (c *Cube) build() {
	c.mesh = newIndexedMesh(shapes.ElementStrips|shapes.PrimitiveRestart, c.layout)
	h := c.size / 2
	var pos, normal, tangent, bitan, pivot, box, face []ms3.Vec
	for fi, f := range boxFaces {
		center := ms3.Scale(h, f.n)
		n := f.n
		if c.inward {
			n = ms3.Scale(-1, n)
		}
		for _, q := range quadCorners {
			p := ms3.Add(center, ms3.Add(ms3.Scale(q[0]*h, f.u), ms3.Scale(q[1]*h, f.v)))
			pos = append(pos, p)
			normal = append(normal, n)
			tangent = append(tangent, f.u)
			bitan = append(bitan, f.v)
			pivot = append(pivot, center)
			box = append(box, ms3.AddScalar(0.5, ms3.Scale(1/c.size, p)))
			face = append(face, vec((q[0]+1)/2, (q[1]+1)/2, float32(fi)))
		}
	}
	c.setPositions(pos)
	c.addVec3(shapes.Normal.Variant(0), normal)
	c.addVec3(shapes.BoxCoord.Variant(0), box)
	if !c.inward {
		c.addVec3(shapes.Tangent.Variant(0), tangent)
		c.addVec3(shapes.Bitangent.Variant(0), bitan)
		c.addVec3(shapes.Pivot.Variant(0), pivot)
		c.addVec3(shapes.FaceCoord.Variant(0), face)
	}
	c.relayout()
}

// layout returns the faces as draw variant 0 and the face outlines
// as Lines in draw variant 1.
func (c *Cube) layout(caps shapes.Capabilities) []drawList {
	const nverts = 24
	var faces drawList
	if caps.Strips() {
		strips := make([][]uint32, 6)
		for f := range strips {
			b := uint32(4 * f)
			strips[f] = []uint32{b, b + 1, b + 3, b + 2}
		}
		faces = stripList(caps, nverts, strips, c.inward)
	} else {
		tris := make([][3]uint32, 0, 12)
		for f := 0; f < 6; f++ {
			b := uint32(4 * f)
			tris = append(tris, [3]uint32{b, b + 1, b + 2}, [3]uint32{b, b + 2, b + 3})
		}
		faces = triangleList(nverts, tris, c.inward)
	}
	it := shapes.IndexTypeFor(nverts - 1)
	lines := drawList{itype: it}
	for f := 0; f < 6; f++ {
		b := uint32(4 * f)
		for k := uint32(0); k < 4; k++ {
			lines.indices = append(lines.indices, b+k, b+(k+1)%4)
		}
	}
	lines.ops = []shapes.DrawOp{{Mode: shapes.Lines, IndexType: it, Count: len(lines.indices)}}
	return []drawList{faces, lines}
}
