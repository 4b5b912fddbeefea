package render_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/soypat/shapes/form3/must3"
	"github.com/soypat/shapes/render"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/plot/cmpimg"
)

func TestPNGDeterministic(t *testing.T) {
	view := render.DefaultView()
	view.Width, view.Height = 96, 64
	ico := render.Faces(must3.NewIcosahedron(1), 0)
	var a, b bytes.Buffer
	if err := render.PNG(&a, ico, view); err != nil {
		t.Fatal(err)
	}
	if err := render.PNG(&b, ico, view); err != nil {
		t.Fatal(err)
	}
	ok, err := cmpimg.Equal("png", a.Bytes(), b.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("rendering the same model twice gave different images")
	}
	img, err := png.Decode(&a)
	if err != nil {
		t.Fatal(err)
	}
	if sz := img.Bounds().Size(); sz.X != 96 || sz.Y != 64 {
		t.Fatalf("got image size %v", sz)
	}
	// The model is fit to the view so the center pixel shows it.
	bg := fauxgl.HexColor(view.Background)
	r, g, bl, _ := img.At(48, 32).RGBA()
	br, bgg, bb, _ := bg.NRGBA().RGBA()
	if r == br && g == bgg && bl == bb {
		t.Error("center pixel shows background")
	}
	var cube bytes.Buffer
	if err := render.PNG(&cube, render.Faces(must3.NewCube(1), 0), view); err != nil {
		t.Fatal(err)
	}
	if ok, _ := cmpimg.Equal("png", a.Bytes(), cube.Bytes()); ok {
		t.Error("cube and icosahedron render the same")
	}
}

func TestPNGErrors(t *testing.T) {
	if err := render.PNG(&bytes.Buffer{}, nil, render.DefaultView()); err == nil {
		t.Error("expected error rendering no triangles")
	}
	view := render.DefaultView()
	view.Width = 0
	if err := render.PNG(&bytes.Buffer{}, render.Faces(must3.NewQuad(), 0), view); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestSamplingHistogram(t *testing.T) {
	topo := topology.New(must3.NewQuad(), topology.DefaultOptions())
	s, err := topology.NewSampler(topo, 3)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := render.SamplingHistogram(&b, s, 2000, 20); err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(&b)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		t.Errorf("got histogram size %dx%d", cfg.Width, cfg.Height)
	}
	if err := render.SamplingHistogram(&b, s, 0, 20); err == nil {
		t.Error("expected error for no samples")
	}
}
