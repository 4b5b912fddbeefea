package topology

import (
	"math"

	"github.com/soypat/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// rayEpsilon rejects rays nearly parallel to a triangle's plane.
const rayEpsilon = 1e-12

// Intersector intersects rays with the triangles of one draw variant of
// a generator. It is independent of Topology and safe for concurrent use.
type Intersector struct {
	bound shapes.Sphere
	tris  [][3]r3.Vec
}

// NewIntersector flattens a draw variant of g for ray intersection.
func NewIntersector(g shapes.Generator, drawVariant int) *Intersector {
	faces := Flatten(g, drawVariant)
	pos := shapes.Positions(g, shapes.Position.Variant(0))
	tris := make([][3]r3.Vec, len(faces))
	for i, f := range faces {
		tris[i] = [3]r3.Vec{pos[f.Indices[0]], pos[f.Indices[1]], pos[f.Indices[2]]}
	}
	return &Intersector{bound: g.BoundingSphere(), tris: tris}
}

// Intersect writes to hits[i] the nearest intersection of rays[i] with
// a triangle facing the ray. Triangles whose canonical normal points
// along the ray direction are culled. Rays missing the bounding sphere
// are not tested against triangles.
func (in *Intersector) Intersect(rays []shapes.Ray, hits []shapes.Hit) {
	shapes.MustFit("hit", len(hits), len(rays))
	for i, r := range rays {
		hits[i] = shapes.Hit{}
		if !in.bound.IntersectsRay(r) {
			continue
		}
		best := math.Inf(1)
		for k := range in.tris {
			if t, ok := intersectTriangle(r, &in.tris[k]); ok && t < best {
				best = t
			}
		}
		if !math.IsInf(best, 1) {
			hits[i] = shapes.Hit{T: best, OK: true}
		}
	}
}

// intersectTriangle returns the strictly positive parameter at which r
// crosses the front face of tri using the Möller-Trumbore algorithm.
func intersectTriangle(r shapes.Ray, tri *[3]r3.Vec) (float64, bool) {
	e1 := r3.Sub(tri[1], tri[0])
	e2 := r3.Sub(tri[2], tri[0])
	if r3.Dot(r3.Cross(e1, e2), r.Direction) >= 0 {
		return 0, false // Back facing or edge on.
	}
	p := r3.Cross(r.Direction, e2)
	det := r3.Dot(e1, p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r3.Sub(r.Origin, tri[0])
	u := r3.Dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := r3.Cross(s, e1)
	v := r3.Dot(r.Direction, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := r3.Dot(e2, q) * inv
	return t, t > 0
}

// RayIntersections intersects rays with g. Generators implementing
// shapes.RayIntersector are asked first, otherwise draw variant 0 is
// intersected triangle by triangle.
func RayIntersections(g shapes.Generator, rays []shapes.Ray, hits []shapes.Hit) {
	if ri, ok := g.(shapes.RayIntersector); ok && ri.RayIntersections(rays, hits) {
		return
	}
	NewIntersector(g, 0).Intersect(rays, hits)
}
