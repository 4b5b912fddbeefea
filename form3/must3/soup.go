package must3

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// Soup is an unindexed triangle list with flat normals. Every triangle
// owns its three vertices.
type Soup struct {
	mesh
}

// NewSoup returns a Soup of the triangles. Triangles are assumed
// counter-clockwise seen from outside.
func NewSoup(tris []r3.Triangle) *Soup {
	if len(tris) == 0 {
		panic("no triangles")
	}
	pos := make([]ms3.Vec, 0, 3*len(tris))
	normal := make([]ms3.Vec, 0, 3*len(tris))
	for _, t := range tris {
		n := r3.Unit(t.Normal())
		nf := vec(float32(n.X), float32(n.Y), float32(n.Z))
		for _, v := range t {
			pos = append(pos, vec(float32(v.X), float32(v.Y), float32(v.Z)))
			normal = append(normal, nf)
		}
	}
	return newSoup(pos, normal)
}

// NewSDF renders a signed distance function with uniform marching cubes
// over cells cells along its longest bounding box dimension.
func NewSDF(s sdf.SDF3, cells int) *Soup {
	if s == nil {
		panic("nil SDF3 argument")
	}
	if cells < 2 {
		panic("cells < 2")
	}
	tris := render.ToTriangles(s, render.NewMarchingCubesUniform(cells))
	if len(tris) == 0 {
		panic("SDF3 rendered to no triangles")
	}
	pos := make([]ms3.Vec, 0, 3*len(tris))
	normal := make([]ms3.Vec, 0, 3*len(tris))
	for _, t := range tris {
		n := t.Normal()
		nf := vec(float32(n.X), float32(n.Y), float32(n.Z))
		for j := 0; j < 3; j++ {
			pos = append(pos, vec(float32(t[j].X), float32(t[j].Y), float32(t[j].Z)))
			normal = append(normal, nf)
		}
	}
	return newSoup(pos, normal)
}

func newSoup(pos, normal []ms3.Vec) *Soup {
	s := &Soup{}
	nverts := len(pos)
	s.mesh.layout = func(shapes.Capabilities) []drawList {
		return []drawList{{ops: []shapes.DrawOp{{Mode: shapes.Triangles, Count: nverts}}}}
	}
	s.setPositions(pos)
	s.addVec3(shapes.Normal.Variant(0), normal)
	s.relayout()
	return s
}
