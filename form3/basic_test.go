package form3_test

import (
	"strings"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/soypat/shapes"
	"github.com/soypat/shapes/form3"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestConstructorErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		make func() error
		msg  string
	}{
		{"cube", func() error { _, err := form3.Cube(0); return err }, "size"},
		{"sphere sections", func() error {
			_, err := form3.Sphere(form3.SphereParms{Radius: 1, Sections: 2, Rings: 4})
			return err
		}, "sections"},
		{"sphere rings", func() error {
			_, err := form3.Sphere(form3.SphereParms{Radius: 1, Sections: 4, Rings: 1})
			return err
		}, "rings"},
		{"torus", func() error {
			_, err := form3.Torus(form3.TorusParms{Major: 1, Minor: 0, Sections: 8, Rings: 8})
			return err
		}, "radius"},
		{"plane", func() error { _, err := form3.Plane(form3.PlaneParms{Width: -1, Depth: 1}); return err }, "plane"},
		{"icosahedron", func() error { _, err := form3.Icosahedron(-1); return err }, "radius"},
		{"no triangles", func() error { _, err := form3.Triangles(nil); return err }, "no triangles"},
		{"degenerate", func() error {
			_, err := form3.Triangles([]r3.Triangle{{{X: 0}, {X: 1}, {X: 2}}})
			return err
		}, "degenerate"},
		{"nil sdf", func() error { _, err := form3.FromSDF(nil, 10); return err }, "nil SDF3"},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := test.make()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), test.msg) {
				t.Errorf("error %q does not mention %q", err, test.msg)
			}
		})
	}
}

func TestGeneratorsClosed(t *testing.T) {
	sphere, err := form3.Sphere(form3.SphereParms{Radius: 1, Sections: 16, Rings: 8})
	if err != nil {
		t.Fatal(err)
	}
	torus, err := form3.Torus(form3.TorusParms{Major: 2, Minor: 0.5, Sections: 16, Rings: 8})
	if err != nil {
		t.Fatal(err)
	}
	ico, err := form3.Icosahedron(1)
	if err != nil {
		t.Fatal(err)
	}
	cube, err := form3.Cube(2)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		name string
		g    shapes.Generator
	}{
		{"sphere", sphere},
		{"torus", torus},
		{"icosahedron", ico},
		{"cube", cube},
	} {
		t.Run(test.name, func(t *testing.T) {
			// Disable strips so no degenerate pole triangles appear.
			test.g.Enable(shapes.ElementStrips, false)
			info := topology.New(test.g, topology.DefaultOptions()).Info()
			if info.BoundaryEdges != 0 || info.Components != 1 {
				t.Errorf("surface not closed: %v", info)
			}
			if 2*info.Edges != 3*info.Triangles {
				t.Errorf("closed triangle mesh must have 3/2 edges per triangle: %v", info)
			}
		})
	}
}

func TestPlaneOpen(t *testing.T) {
	pl, err := form3.Plane(form3.PlaneParms{Width: 2, Depth: 1, WidthDivs: 4, DepthDivs: 2})
	if err != nil {
		t.Fatal(err)
	}
	info := topology.New(pl, topology.DefaultOptions()).Info()
	// The rim of a 4x2 grid has 12 cell edges.
	if info.Triangles != 16 || info.BoundaryEdges != 12 {
		t.Errorf("unexpected plane topology %v", info)
	}
	if !scalar.EqualWithinAbs(info.Area, 2, 1e-6) {
		t.Errorf("plane area %g, want 2", info.Area)
	}
	quad := form3.Quad()
	if quad.IndexCount(0) != 6 || quad.Capabilities().Strips() {
		t.Errorf("quad should be two plain triangles, got %d indices caps %s", quad.IndexCount(0), quad.Capabilities())
	}
}

func TestTorusNormalsOutward(t *testing.T) {
	torus, err := form3.Torus(form3.TorusParms{Major: 2, Minor: 0.5, Sections: 12, Rings: 6})
	if err != nil {
		t.Fatal(err)
	}
	pos := shapes.Positions(torus, shapes.Position.Variant(0))
	normals := shapes.Positions(torus, shapes.Normal.Variant(0))
	for _, f := range topology.Flatten(torus, 0) {
		a, b, c := pos[f.Indices[0]], pos[f.Indices[1]], pos[f.Indices[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Dot(n, normals[f.Indices[0]]) <= 0 {
			t.Fatalf("face %v wound against its normal", f.Indices)
		}
	}
	for i, p := range pos {
		// Distance from the tube center circle equals the minor radius.
		ring := r3.Scale(2, r3.Unit(r3.Vec{X: p.X, Z: p.Z}))
		if d := r3.Norm(r3.Sub(p, ring)); !scalar.EqualWithinAbs(d, 0.5, 1e-5) {
			t.Fatalf("vertex %d at distance %g from tube center", i, d)
		}
	}
}

func TestFromSDF(t *testing.T) {
	box, err := sdf.Box3D(v3.Vec{X: 2, Y: 2, Z: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	soup, err := form3.FromSDF(box, 20)
	if err != nil {
		t.Fatal(err)
	}
	if soup.VertexCount() == 0 || soup.VertexCount()%3 != 0 {
		t.Fatalf("got %d vertices", soup.VertexCount())
	}
	if soup.Capabilities() != 0 || soup.IndexType(0) != shapes.IndexNone {
		t.Error("soup must be unindexed")
	}
	for i, p := range shapes.Positions(soup, shapes.Position.Variant(0)) {
		if max(abs(p.X), abs(p.Y), abs(p.Z)) > 1.2 {
			t.Fatalf("vertex %d at %v outside box", i, p)
		}
	}
	opts := topology.DefaultOptions()
	opts.Features = topology.FeatureArea
	area := topology.New(soup, opts).TotalArea()
	if area < 0.85*24 || area > 24*1.05 {
		t.Errorf("marched box area %g, want about 24", area)
	}
}

func TestTriangles(t *testing.T) {
	soup, err := form3.Triangles([]r3.Triangle{
		{{X: 0}, {X: 1}, {Y: 1}},
		{{X: 1}, {X: 1, Y: 1}, {Y: 1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	normals := shapes.Positions(soup, shapes.Normal.Variant(0))
	for i, n := range normals {
		if n != (r3.Vec{Z: 1}) {
			t.Errorf("vertex %d normal %v, want +Z", i, n)
		}
	}
	if topology.New(soup, topology.DefaultOptions()).EdgeCount() != 1 {
		t.Error("triangles should share the diagonal")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
