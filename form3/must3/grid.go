package must3

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

// surfaceFunc evaluates a parametric surface at u,v in [0,1]. The
// partial derivative along u crossed with the one along v must point
// out of the surface.
type surfaceFunc func(u, v float32) (pos, normal, tangent ms3.Vec)

// grid is a seam duplicated (sections+1)*(rings+1) vertex lattice.
type grid struct {
	sections, rings int
	pos, normal     []ms3.Vec
	tangent, bitan  []ms3.Vec
	wrap            []float32
}

func newGrid(sections, rings int, f surfaceFunc) grid {
	n := (sections + 1) * (rings + 1)
	g := grid{
		sections: sections,
		rings:    rings,
		pos:      make([]ms3.Vec, 0, n),
		normal:   make([]ms3.Vec, 0, n),
		tangent:  make([]ms3.Vec, 0, n),
		bitan:    make([]ms3.Vec, 0, n),
		wrap:     make([]float32, 0, 2*n),
	}
	for j := 0; j <= rings; j++ {
		v := float32(j) / float32(rings)
		for i := 0; i <= sections; i++ {
			u := float32(i) / float32(sections)
			p, nrm, tan := f(u, v)
			g.pos = append(g.pos, p)
			g.normal = append(g.normal, nrm)
			g.tangent = append(g.tangent, tan)
			g.bitan = append(g.bitan, ms3.Cross(nrm, tan))
			g.wrap = append(g.wrap, u, v)
		}
	}
	return g
}

func (g *grid) index(i, j int) uint32 {
	return uint32(j*(g.sections+1) + i)
}

// addTo sets the grid's vertex attributes on m.
func (g *grid) addTo(m *mesh) {
	m.setPositions(g.pos)
	m.addVec3(shapes.Normal.Variant(0), g.normal)
	m.addVec3(shapes.Tangent.Variant(0), g.tangent)
	m.addVec3(shapes.Bitangent.Variant(0), g.bitan)
	m.addValues(shapes.WrapCoord.Variant(0), 2, g.wrap)
}

// triangles returns two counter-clockwise triangles per lattice cell.
// When collapsed is set the first and last rings are single points
// and the degenerate triangle of cells touching them is dropped.
func (g *grid) triangles(collapsed bool) [][3]uint32 {
	tris := make([][3]uint32, 0, 2*g.sections*g.rings)
	for j := 0; j < g.rings; j++ {
		for i := 0; i < g.sections; i++ {
			a, b := g.index(i, j), g.index(i+1, j)
			c, d := g.index(i+1, j+1), g.index(i, j+1)
			if !collapsed || j != 0 {
				tris = append(tris, [3]uint32{a, b, c})
			}
			if !collapsed || j != g.rings-1 {
				tris = append(tris, [3]uint32{a, c, d})
			}
		}
	}
	return tris
}

// strips returns one triangle strip per ring band. The first triangle
// of each strip is counter-clockwise.
func (g *grid) strips() [][]uint32 {
	strips := make([][]uint32, g.rings)
	for j := range strips {
		s := make([]uint32, 0, 2*(g.sections+1))
		for i := 0; i <= g.sections; i++ {
			s = append(s, g.index(i, j+1), g.index(i, j))
		}
		strips[j] = s
	}
	return strips
}

// layout returns the grid's draw list for caps.
func (g *grid) layout(caps shapes.Capabilities, collapsed bool) []drawList {
	nverts := len(g.pos)
	if caps.Strips() {
		return []drawList{stripList(caps, nverts, g.strips(), false)}
	}
	return []drawList{triangleList(nverts, g.triangles(collapsed), false)}
}
