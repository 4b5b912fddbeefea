package form3

import (
	"fmt"
	"runtime/debug"

	"github.com/deadsy/sdfx/sdf"
	"github.com/soypat/shapes/form3/must3"
	"gonum.org/v1/gonum/spatial/r3"
)

type (
	SphereParms = must3.SphereParms
	TorusParms  = must3.TorusParms
	PlaneParms  = must3.PlaneParms
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// catch converts a panic of a must3 constructor into an error.
func catch(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Cube returns a cube of edge length size centered at the origin.
func Cube(size float64) (c *must3.Cube, err error) {
	defer catch(&err)
	return must3.NewCube(size), err
}

// Skybox returns a cube of edge length 2 with faces pointing inward.
func Skybox() (c *must3.Cube, err error) {
	defer catch(&err)
	return must3.NewSkybox(), err
}

// Sphere returns a UV sphere centered at the origin.
func Sphere(p SphereParms) (s *must3.Sphere, err error) {
	defer catch(&err)
	return must3.NewSphere(p), err
}

// Torus returns a torus around the Y axis.
func Torus(p TorusParms) (t *must3.Torus, err error) {
	defer catch(&err)
	return must3.NewTorus(p), err
}

// Plane returns a subdivided rectangle in the XZ plane facing +Y.
func Plane(p PlaneParms) (pl *must3.Plane, err error) {
	defer catch(&err)
	return must3.NewPlane(p), err
}

// Quad returns a unit square made of two triangles.
func Quad() *must3.Plane {
	return must3.NewQuad()
}

// Icosahedron returns a regular icosahedron inscribed in a sphere of radius.
func Icosahedron(radius float64) (ico *must3.Icosahedron, err error) {
	defer catch(&err)
	return must3.NewIcosahedron(radius), err
}

// Triangles returns an unindexed generator of tris. Degenerate
// triangles are rejected.
func Triangles(tris []r3.Triangle) (s *must3.Soup, err error) {
	if len(tris) == 0 {
		return nil, ErrMsg("no triangles")
	}
	for i, t := range tris {
		if t.IsDegenerate(0) {
			return nil, ErrMsg(fmt.Sprintf("triangle %d is degenerate", i))
		}
	}
	defer catch(&err)
	return must3.NewSoup(tris), err
}

// FromSDF renders s with marching cubes into an unindexed generator.
func FromSDF(s sdf.SDF3, cells int) (soup *must3.Soup, err error) {
	if s == nil {
		return nil, ErrMsg("nil SDF3 argument")
	}
	defer catch(&err)
	return must3.NewSDF(s, cells), err
}
