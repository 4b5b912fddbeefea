package must3

import (
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

// PlaneParms configures a subdivided plane.
type PlaneParms struct {
	Width, Depth         float64
	WidthDivs, DepthDivs int
	// Weight, if set, produces a Weight attribute evaluated at each
	// vertex's x,z position.
	Weight func(x, z float64) float64
}

// Plane is a rectangle in the XZ plane centered at the origin facing +Y.
type Plane struct {
	mesh
	grid grid
}

// NewPlane returns a plane. Divisions below 1 are taken as 1.
func NewPlane(p PlaneParms) *Plane {
	if p.Width <= 0 || p.Depth <= 0 {
		panic("plane dimensions <= 0")
	}
	p.WidthDivs = max(p.WidthDivs, 1)
	p.DepthDivs = max(p.DepthDivs, 1)
	w, d := float32(p.Width), float32(p.Depth)
	pl := &Plane{}
	pl.grid = newGrid(p.WidthDivs, p.DepthDivs, func(u, v float32) (pos, normal, tangent ms3.Vec) {
		return vec(w*(u-0.5), 0, d*(0.5-v)), vec(0, 1, 0), vec(1, 0, 0)
	})
	pl.mesh = newIndexedMesh(shapes.ElementStrips|shapes.PrimitiveRestart, func(caps shapes.Capabilities) []drawList {
		return pl.grid.layout(caps, false)
	})
	pl.grid.addTo(&pl.mesh)
	if p.Weight != nil {
		weights := make([]float32, len(pl.grid.pos))
		for i, q := range pl.grid.pos {
			weights[i] = float32(p.Weight(float64(q.X), float64(q.Z)))
		}
		pl.addValues(shapes.Weight.Variant(0), 1, weights)
	}
	pl.relayout()
	return pl
}

// NewQuad returns a unit plane made of a single quad, two triangles
// sharing one edge.
func NewQuad() *Plane {
	pl := NewPlane(PlaneParms{Width: 1, Depth: 1})
	pl.Enable(shapes.ElementStrips|shapes.PrimitiveRestart, false)
	return pl
}
