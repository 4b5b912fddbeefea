package render_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/shapes/form3/must3"
	"github.com/soypat/shapes/render"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSTLCreateWriteRead(t *testing.T) {
	cube := must3.NewCube(1)
	path := filepath.Join(t.TempDir(), "cube.stl")
	if err := render.CreateSTL(path, cube); err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	model := render.Faces(cube, 0)
	if len(model) != 12 {
		t.Fatalf("got %d cube faces, want 12", len(model))
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) || b.Len() != 84+50*12 {
		t.Fatalf("WriteSTL and CreateSTL output length mismatch: %d, %d", b.Len(), len(bfile))
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
	got, err := render.ReadSTL(bytes.NewReader(bfile))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(model) {
		t.Fatalf("read %d triangles, wrote %d", len(got), len(model))
	}
	for i := range got {
		for v := 0; v < 3; v++ {
			if d := r3.Norm(r3.Sub(got[i][v], model[i][v])); d > 1e-6 {
				t.Fatalf("triangle %d vertex %d moved by %g", i, v, d)
			}
		}
	}
	// Cross check with an independent reader.
	mesh, err := fauxgl.LoadSTL(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Triangles) != 12 {
		t.Errorf("fauxgl read %d triangles, want 12", len(mesh.Triangles))
	}
	if !scalar.EqualWithinAbs(mesh.SurfaceArea(), 6, 1e-5) {
		t.Errorf("fauxgl surface area %g, want 6", mesh.SurfaceArea())
	}
}

func TestFacesOmitDegenerate(t *testing.T) {
	sphere := must3.NewSphere(must3.SphereParms{Radius: 1, Sections: 8, Rings: 4})
	if !sphere.Capabilities().Strips() {
		t.Skip("sphere draws without strips")
	}
	flat := topology.Flatten(sphere, 0)
	faces := render.Faces(sphere, 0)
	if len(faces) == 0 || len(faces) >= len(flat) {
		t.Fatalf("got %d faces from %d flattened triangles, want pole triangles dropped", len(faces), len(flat))
	}
	var b bytes.Buffer
	if err := render.WriteSTL(&b, faces); err != nil {
		t.Fatal(err)
	}
	if _, err := render.ReadSTL(&b); err != nil {
		t.Fatal(err)
	}
}

// smallReads reads at most 5 triangles per call.
type smallReads struct{ r render.Renderer }

func (s smallReads) ReadTriangles(t []r3.Triangle) (int, error) {
	return s.r.ReadTriangles(t[:min(len(t), 5)])
}

func TestRenderAll(t *testing.T) {
	torus := must3.NewTorus(must3.TorusParms{Major: 1, Minor: 0.25, Sections: 12, Rings: 6})
	want := render.Faces(torus, 0)
	got, err := render.RenderAll(smallReads{render.NewFaceReader(torus, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d triangles, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("triangle %d differs", i)
		}
	}
	// The cube outline draw variant has no triangles.
	n, err := render.NewFaceReader(must3.NewCube(1), 1).ReadTriangles(make([]r3.Triangle, 4))
	if n != 0 || err != io.EOF {
		t.Errorf("outline: got %d, %v, want io.EOF", n, err)
	}
}

func TestReadSTLErrors(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, render.Faces(must3.NewQuad(), 0)); err != nil {
		t.Fatal(err)
	}
	full := b.Bytes()
	for _, test := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"header only", full[:84]},
		{"truncated triangle", full[:84+30]},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := render.ReadSTL(bytes.NewReader(test.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if err := render.WriteSTL(io.Discard, nil); err == nil {
		t.Error("writing no triangles must fail")
	}
}
