package must3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

var (
	icoVertices = func() [12]ms3.Vec {
		t := (1 + math32.Sqrt(5)) / 2
		return [12]ms3.Vec{
			vec(-1, t, 0), vec(1, t, 0), vec(-1, -t, 0), vec(1, -t, 0),
			vec(0, -1, t), vec(0, 1, t), vec(0, -1, -t), vec(0, 1, -t),
			vec(t, 0, -1), vec(t, 0, 1), vec(-t, 0, -1), vec(-t, 0, 1),
		}
	}()
	icoFaces = [20][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron is a regular icosahedron with smooth vertex normals.
type Icosahedron struct {
	mesh
}

// NewIcosahedron returns an icosahedron inscribed in a sphere of radius.
func NewIcosahedron(radius float64) *Icosahedron {
	if radius <= 0 {
		panic("radius <= 0")
	}
	r := float32(radius)
	ico := &Icosahedron{}
	ico.mesh = newIndexedMesh(0, func(shapes.Capabilities) []drawList {
		return []drawList{triangleList(len(icoVertices), icoFaces[:], false)}
	})
	pos := make([]ms3.Vec, len(icoVertices))
	normal := make([]ms3.Vec, len(icoVertices))
	for i, v := range icoVertices {
		normal[i] = ms3.Unit(v)
		pos[i] = ms3.Scale(r, normal[i])
	}
	ico.setPositions(pos)
	ico.addVec3(shapes.Normal.Variant(0), normal)
	ico.relayout()
	return ico
}
