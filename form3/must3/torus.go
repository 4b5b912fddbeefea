package must3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

// TorusParms configures a torus around the Y axis.
type TorusParms struct {
	// Major is the distance from the center to the tube center.
	Major float64
	// Minor is the tube radius.
	Minor    float64
	Sections int
	Rings    int
}

// Torus is a torus centered at the origin.
type Torus struct {
	mesh
	grid grid
}

func NewTorus(p TorusParms) *Torus {
	if p.Minor <= 0 || p.Major <= 0 {
		panic("radius <= 0")
	}
	if p.Minor >= p.Major {
		panic("minor radius must be smaller than major radius")
	}
	if p.Sections < 3 || p.Rings < 3 {
		panic("sections or rings < 3")
	}
	R, r := float32(p.Major), float32(p.Minor)
	t := &Torus{}
	t.grid = newGrid(p.Sections, p.Rings, func(u, v float32) (pos, normal, tangent ms3.Vec) {
		st, ct := math32.Sincos(2 * math32.Pi * u)
		sp, cp := math32.Sincos(2 * math32.Pi * v)
		normal = vec(cp*ct, -sp, cp*st)
		center := vec(R*ct, 0, R*st)
		return ms3.Add(center, ms3.Scale(r, normal)), normal, vec(-st, 0, ct)
	})
	t.mesh = newIndexedMesh(shapes.ElementStrips|shapes.PrimitiveRestart, func(caps shapes.Capabilities) []drawList {
		return t.grid.layout(caps, false)
	})
	t.grid.addTo(&t.mesh)
	t.relayout()
	return t
}
