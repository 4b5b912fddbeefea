package must3

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shapes"
)

// SphereParms configures a UV sphere.
type SphereParms struct {
	Radius float64
	// Sections is the number of divisions around the Y axis.
	Sections int
	// Rings is the number of divisions from pole to pole.
	Rings int
}

// Sphere is a UV sphere centered at the origin with poles on the Y axis.
// Seam and pole vertices are duplicated so wrap coordinates are continuous.
type Sphere struct {
	mesh
	parms SphereParms
	grid  grid
}

var _ shapes.RayIntersector = (*Sphere)(nil)

// NewSphere returns a sphere. Rings are drawn as strips joined by
// primitive restart unless those capabilities are disabled.
func NewSphere(p SphereParms) *Sphere {
	if p.Radius <= 0 {
		panic("radius <= 0")
	}
	if p.Sections < 3 {
		panic("sections < 3")
	}
	if p.Rings < 2 {
		panic("rings < 2")
	}
	r := float32(p.Radius)
	s := &Sphere{parms: p}
	s.grid = newGrid(p.Sections, p.Rings, func(u, v float32) (pos, normal, tangent ms3.Vec) {
		theta := 2 * math32.Pi * u
		phi := math32.Pi * v
		st, ct := math32.Sincos(theta)
		sp, cp := math32.Sincos(phi)
		normal = vec(sp*ct, cp, sp*st)
		return ms3.Scale(r, normal), normal, vec(-st, 0, ct)
	})
	s.mesh = newIndexedMesh(shapes.ElementStrips|shapes.PrimitiveRestart, func(caps shapes.Capabilities) []drawList {
		return s.grid.layout(caps, true)
	})
	s.grid.addTo(&s.mesh)
	pivot := make([]ms3.Vec, len(s.grid.pos))
	s.addVec3(shapes.Pivot.Variant(0), pivot)
	s.bound = shapes.Sphere{Radius: p.Radius}
	s.relayout()
	return s
}

// RayIntersections intersects rays with the exact sphere surface.
func (s *Sphere) RayIntersections(rays []shapes.Ray, hits []shapes.Hit) bool {
	shapes.MustFit("hit", len(hits), len(rays))
	exact := shapes.Sphere{Radius: s.parms.Radius}
	for i, r := range rays {
		hits[i] = exact.IntersectRay(r)
	}
	return true
}
