package topology_test

import (
	"math"
	"testing"

	"github.com/soypat/shapes"
	"github.com/soypat/shapes/form3/must3"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestIntersectCube(t *testing.T) {
	cube := must3.NewCube(1)
	in := topology.NewIntersector(cube, 0)
	for _, test := range []struct {
		name string
		ray  shapes.Ray
		want shapes.Hit
	}{
		{
			name: "front face",
			ray:  shapes.Ray{Origin: r3.Vec{X: -2, Y: 0.1, Z: 0.2}, Direction: r3.Vec{X: 1}},
			want: shapes.Hit{T: 1.5, OK: true},
		},
		{
			name: "unnormalized direction",
			ray:  shapes.Ray{Origin: r3.Vec{X: -2, Y: 0.25}, Direction: r3.Vec{X: 3}},
			want: shapes.Hit{T: 0.5, OK: true},
		},
		{
			name: "outside bounding sphere",
			ray:  shapes.Ray{Origin: r3.Vec{X: -2, Y: 5}, Direction: r3.Vec{X: 1}},
		},
		{
			name: "pointing away",
			ray:  shapes.Ray{Origin: r3.Vec{X: -2}, Direction: r3.Vec{X: -1}},
		},
		{
			name: "back faces culled from inside",
			ray:  shapes.Ray{Direction: r3.Vec{Z: 1}},
		},
		{
			name: "inside bounding sphere but missing cube",
			ray:  shapes.Ray{Origin: r3.Vec{X: -2, Y: 0.6}, Direction: r3.Vec{X: 1}},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			hits := make([]shapes.Hit, 1)
			in.Intersect([]shapes.Ray{test.ray}, hits)
			got := hits[0]
			if got.OK != test.want.OK || !scalar.EqualWithinAbs(got.T, test.want.T, 1e-6) {
				t.Errorf("got %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestIntersectSkyboxFromInside(t *testing.T) {
	sky := must3.NewSkybox()
	hits := make([]shapes.Hit, 1)
	topology.RayIntersections(sky, []shapes.Ray{{Origin: r3.Vec{X: 0.1, Z: 0.2}, Direction: r3.Vec{Y: 1}}}, hits)
	if !hits[0].OK || !scalar.EqualWithinAbs(hits[0].T, 1, 1e-6) {
		t.Errorf("got %+v, want hit at 1", hits[0])
	}
}

func TestRayIntersectionsOverride(t *testing.T) {
	// The generic path intersects the tessellation, the sphere override
	// the exact surface.
	sphere := must3.NewSphere(must3.SphereParms{Radius: 1, Sections: 6, Rings: 3})
	rays := []shapes.Ray{{Origin: r3.Vec{X: -3, Y: 0.1, Z: 0.05}, Direction: r3.Vec{X: 1}}}
	exact := make([]shapes.Hit, 1)
	topology.RayIntersections(sphere, rays, exact)
	want := 3 - math.Sqrt(1-0.1*0.1-0.05*0.05)
	if !exact[0].OK || !scalar.EqualWithinAbs(exact[0].T, want, 1e-12) {
		t.Errorf("override: got %+v, want hit at %g", exact[0], want)
	}
	tess := make([]shapes.Hit, 1)
	topology.NewIntersector(sphere, 0).Intersect(rays, tess)
	if !tess[0].OK || tess[0].T <= exact[0].T {
		t.Errorf("tessellated: got %+v, want hit beyond %g", tess[0], exact[0].T)
	}
}
