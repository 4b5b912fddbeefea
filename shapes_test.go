package shapes_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/soypat/shapes"
	"github.com/soypat/shapes/form3/must3"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestIndexTypeFor(t *testing.T) {
	for _, test := range []struct {
		max  uint32
		want shapes.IndexType
	}{
		{0, shapes.IndexU8},
		{254, shapes.IndexU8},
		{255, shapes.IndexU16},
		{65534, shapes.IndexU16},
		{65535, shapes.IndexU32},
	} {
		if got := shapes.IndexTypeFor(test.max); got != test.want {
			t.Errorf("IndexTypeFor(%d) = %s, want %s", test.max, got, test.want)
		}
	}
}

func TestBaseEnable(t *testing.T) {
	b := shapes.NewBase(shapes.ElementStrips | shapes.PrimitiveRestart)
	if b.Capabilities() != shapes.ElementStrips|shapes.PrimitiveRestart {
		t.Fatalf("supported capabilities not enabled: %s", b.Capabilities())
	}
	if b.Enable(shapes.ElementFans, true) {
		t.Error("enabled unsupported fans")
	}
	if !b.Enable(shapes.ElementStrips|shapes.ElementFans, false) {
		t.Error("disabling must always succeed")
	}
	if got := b.Capabilities().String(); got != "restart" {
		t.Errorf("got %q, want restart", got)
	}
}

func TestRequiring(t *testing.T) {
	soup := must3.NewSoup([]r3.Triangle{{{X: 0}, {X: 1}, {Y: 1}}})
	r := shapes.Requiring{Delegate: shapes.Delegate{Gen: soup}, Caps: shapes.IndexedDrawing}
	if !r.Capabilities().Indexed() {
		t.Error("required capability not reported")
	}
	if r.Enable(shapes.IndexedDrawing, false) {
		t.Error("disabled required capability")
	}
	if !r.Enable(shapes.IndexedDrawing, true) {
		t.Error("enabling required capability failed")
	}
	if r.Enable(shapes.ElementStrips, true) {
		t.Error("soup does not support strips")
	}
	if r.RayIntersections(nil, nil) {
		t.Error("soup has no ray intersection override")
	}
}

// counting counts buffer queries reaching the wrapped generator.
type counting struct {
	shapes.Delegate
	attribs, indices, ops int
}

func (c *counting) AttribValues(v shapes.AttribVariant, dst []float32) {
	c.attribs++
	c.Gen.AttribValues(v, dst)
}

func (c *counting) Indices(drawVariant int, dst []uint32) {
	c.indices++
	c.Gen.Indices(drawVariant, dst)
}

func (c *counting) Instructions(drawVariant int, dst []shapes.DrawOp) {
	c.ops++
	c.Gen.Instructions(drawVariant, dst)
}

func TestCached(t *testing.T) {
	cube := must3.NewCube(1)
	inner := &counting{Delegate: shapes.Delegate{Gen: cube}}
	c := shapes.NewCached(inner)
	for i := 0; i < 3; i++ {
		shapes.ReadAttrib(c, shapes.Position.Variant(0))
		shapes.ReadIndices(c, 0)
		shapes.ReadInstructions(c, 0)
	}
	if inner.attribs != 1 || inner.indices != 1 || inner.ops != 1 {
		t.Fatalf("wrapped generator queried %d/%d/%d times, want once each", inner.attribs, inner.indices, inner.ops)
	}
	strips := shapes.ReadIndices(c, 0)
	if !c.Enable(shapes.ElementStrips, false) {
		t.Fatal("could not disable strips")
	}
	tris := shapes.ReadIndices(c, 0)
	if inner.indices != 2 {
		t.Errorf("index cache not invalidated by Enable")
	}
	if reflect.DeepEqual(strips, tris) || len(tris) != 36 {
		t.Errorf("got %d indices after disabling strips, want 36", len(tris))
	}
	shapes.ReadAttrib(c, shapes.Position.Variant(0))
	if inner.attribs != 1 {
		t.Error("attribute cache invalidated by Enable")
	}
	if c.RayIntersections(nil, nil) {
		t.Error("cube has no ray intersection override")
	}
}

func TestArray(t *testing.T) {
	quad := must3.NewQuad()
	offset := r3.Vec{X: 2}
	arr := shapes.NewArray(quad, offset, 3)
	if arr.VertexCount() != 12 || arr.IndexCount(0) != 18 || arr.OperationCount(0) != 3 {
		t.Fatalf("got %d vertices %d indices %d ops", arr.VertexCount(), arr.IndexCount(0), arr.OperationCount(0))
	}
	base := shapes.ReadIndices(quad, 0)
	got := shapes.ReadIndices(arr, 0)
	for k := 0; k < 3; k++ {
		for i, idx := range base {
			if got[k*len(base)+i] != idx+uint32(4*k) {
				t.Fatalf("copy %d index %d: got %d, want %d", k, i, got[k*len(base)+i], idx+uint32(4*k))
			}
		}
	}
	ops := shapes.ReadInstructions(arr, 0)
	for k, op := range ops {
		if op.First != 6*k || op.Count != 6 {
			t.Errorf("op %d: got %s", k, op)
		}
	}
	pos := shapes.Positions(arr, shapes.Position.Variant(0))
	for i := 4; i < 12; i++ {
		d := r3.Sub(pos[i], pos[i-4])
		if !scalar.EqualWithinAbs(d.X, 2, 1e-6) || d.Y != 0 || d.Z != 0 {
			t.Fatalf("vertex %d not offset from previous copy: %v", i, d)
		}
	}
	b := arr.BoundingSphere()
	if !scalar.EqualWithinAbs(b.Center.X, 2, 1e-9) || !scalar.EqualWithinAbs(b.Radius, quad.BoundingSphere().Radius+2, 1e-9) {
		t.Errorf("unexpected bounding sphere %+v", b)
	}
	topo := topology.New(arr, topology.DefaultOptions())
	if info := topo.Info(); info.Triangles != 6 || info.Components != 3 {
		t.Errorf("unexpected array topology %v", info)
	}
	if !scalar.EqualWithinAbs(topo.TotalArea(), 3, 1e-6) {
		t.Errorf("array area %g, want 3", topo.TotalArea())
	}
}

func TestArrayWidensRestart(t *testing.T) {
	const copies = 20
	cube := must3.NewCube(1)
	arr := shapes.NewArray(cube, r3.Vec{Y: 3}, copies)
	if cube.IndexType(0) != shapes.IndexU8 || arr.IndexType(0) != shapes.IndexU16 {
		t.Fatalf("got index types %s and %s, want u8 and u16", cube.IndexType(0), arr.IndexType(0))
	}
	for _, op := range shapes.ReadInstructions(arr, 0) {
		if !op.PrimitiveRestart || op.RestartIndex != math.MaxUint16 || op.IndexType != shapes.IndexU16 {
			t.Fatalf("restart not widened: %s", op)
		}
	}
	for _, idx := range shapes.ReadIndices(arr, 0) {
		if idx != math.MaxUint16 && idx >= uint32(arr.VertexCount()) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	topo := topology.New(arr, topology.DefaultOptions())
	if topo.TriangleCount() != 12*copies {
		t.Errorf("got %d triangles, want %d", topo.TriangleCount(), 12*copies)
	}
	if info := topo.Info(); info.Components != copies || info.BoundaryEdges != 0 {
		t.Errorf("unexpected array topology %v", info)
	}
}

func TestScaledMirrorKeepsOrientation(t *testing.T) {
	cube := must3.NewCube(1)
	mirrored := shapes.Scaled(cube, r3.Vec{X: -1, Y: 2, Z: 1})
	ops := shapes.ReadInstructions(mirrored, 0)
	if !ops[0].CW {
		t.Error("mirroring must flip winding")
	}
	pos := shapes.Positions(mirrored, shapes.Position.Variant(0))
	normals := shapes.Positions(mirrored, shapes.Normal.Variant(0))
	for _, f := range topology.Flatten(mirrored, 0) {
		a, b, c := pos[f.Indices[0]], pos[f.Indices[1]], pos[f.Indices[2]]
		n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		if r3.Dot(n, normals[f.Indices[0]]) <= 0 {
			t.Fatalf("face %v winding disagrees with normal", f.Indices)
		}
		if !scalar.EqualWithinAbs(r3.Norm(normals[f.Indices[0]]), 1, 1e-6) {
			t.Fatalf("normal not unit length")
		}
	}
	area := topology.New(mirrored, topology.DefaultOptions()).TotalArea()
	if want := 10.0; !scalar.EqualWithinAbs(area, want, 1e-5) {
		t.Errorf("got area %g, want %g", area, want)
	}
}

func TestTransformedRays(t *testing.T) {
	sphere := must3.NewSphere(must3.SphereParms{Radius: 1, Sections: 8, Rings: 4})
	moved := shapes.Translated(shapes.Scaled(sphere, r3.Vec{X: 2, Y: 2, Z: 2}), r3.Vec{X: 5})
	if b := moved.BoundingSphere(); !scalar.EqualWithinAbs(b.Radius, 2, 1e-12) || b.Center != (r3.Vec{X: 5}) {
		t.Errorf("unexpected bounding sphere %+v", b)
	}
	hits := make([]shapes.Hit, 2)
	rays := []shapes.Ray{
		{Direction: r3.Vec{X: 1}},
		{Direction: r3.Vec{Y: 1}},
	}
	ri, ok := moved.(shapes.RayIntersector)
	if !ok || !ri.RayIntersections(rays, hits) {
		t.Fatal("transformed sphere must forward exact intersection")
	}
	if !hits[0].OK || !scalar.EqualWithinAbs(hits[0].T, 3, 1e-9) {
		t.Errorf("got %+v, want hit at 3", hits[0])
	}
	if hits[1].OK {
		t.Errorf("got %+v, want miss", hits[1])
	}
}

func TestCentered(t *testing.T) {
	ico := must3.NewIcosahedron(1)
	c := shapes.Centered(shapes.Translated(ico, r3.Vec{X: 1, Y: -2, Z: 3}))
	if b := c.BoundingSphere(); r3.Norm(b.Center) > 1e-9 {
		t.Errorf("centered bounding sphere at %v", b.Center)
	}
	for _, p := range shapes.Positions(c, shapes.Position.Variant(0)) {
		if !scalar.EqualWithinAbs(r3.Norm(p), 1, 1e-5) {
			t.Fatalf("vertex %v not on unit sphere", p)
		}
	}
}

func TestSphereIntersectRay(t *testing.T) {
	s := shapes.Sphere{Center: r3.Vec{Z: 1}, Radius: 1}
	for _, test := range []struct {
		ray     shapes.Ray
		want    shapes.Hit
		crosses bool
	}{
		{ray: shapes.Ray{Origin: r3.Vec{Z: -2}, Direction: r3.Vec{Z: 1}}, want: shapes.Hit{T: 2, OK: true}, crosses: true},
		{ray: shapes.Ray{Origin: r3.Vec{Z: 1}, Direction: r3.Vec{Z: 2}}, want: shapes.Hit{T: 0.5, OK: true}, crosses: true},
		{ray: shapes.Ray{Origin: r3.Vec{Z: -2}, Direction: r3.Vec{Z: -1}}},
		{ray: shapes.Ray{Origin: r3.Vec{X: 2, Z: -2}, Direction: r3.Vec{Z: 1}}},
	} {
		if got := s.IntersectRay(test.ray); got != test.want {
			t.Errorf("ray %+v: got %+v, want %+v", test.ray, got, test.want)
		}
		if got := s.IntersectsRay(test.ray); got != test.crosses {
			t.Errorf("ray %+v: IntersectsRay %v, want %v", test.ray, got, test.crosses)
		}
	}
}
