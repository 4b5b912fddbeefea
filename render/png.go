package render

import (
	"errors"
	"image"
	"image/png"
	"io"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/shapes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera and colors of a preview render.
// The model is fit into a bi-unit cube centered at the origin
// before rendering, so the camera is placed relative to that cube.
type View struct {
	Width, Height int
	// Supersample renders at this multiple of the output size before
	// downsampling for antialiasing. Values below 1 are treated as 1.
	Supersample int
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	Eye       r3.Vec
	Near, Far float64
	// vertical field of view in degrees
	FOV float64
	// Hex colors of the object and the background.
	Color, Background string
}

// DefaultView is an isometric view of a 768x432 image.
func DefaultView() View {
	return View{
		Width:       768,
		Height:      432,
		Supersample: 2,
		Up:          r3.Vec{Z: 1},
		Eye:         d3.Elem(2.4),
		Near:        1,
		Far:         10,
		FOV:         30,
		Color:       "#468966",
		Background:  "#FFF8E3",
	}
}

// Image renders tris with Phong shading as seen from view.
func Image(tris []r3.Triangle, view View) (image.Image, error) {
	if len(tris) == 0 {
		return nil, errors.New("no triangles to render")
	}
	if view.Width <= 0 || view.Height <= 0 {
		return nil, errors.New("image size must be positive")
	}
	scale := max(view.Supersample, 1)
	ft := make([]*fauxgl.Triangle, len(tris))
	for i, t := range tris {
		ft[i] = fauxgl.NewTriangleForPoints(fauxv(t[0]), fauxv(t[1]), fauxv(t[2]))
	}
	mesh := fauxgl.NewTriangleMesh(ft)
	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()

	var (
		eye    = fauxv(view.Eye)
		center = fauxv(view.LookAt)
		up     = fauxv(view.Up)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize() // light direction
	)
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(view.Background))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(view.FOV, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(view.Color)
	context.Shader = shader
	context.DrawMesh(mesh)
	img := context.Image()
	if scale > 1 {
		img = resize.Resize(uint(view.Width), uint(view.Height), img, resize.Bilinear)
	}
	return img, nil
}

// PNG writes a preview of tris to w in PNG format.
func PNG(w io.Writer, tris []r3.Triangle, view View) error {
	img, err := Image(tris, view)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes a preview of tris to a PNG file at path.
func SavePNG(path string, tris []r3.Triangle, view View) error {
	img, err := Image(tris, view)
	if err != nil {
		return err
	}
	return fauxgl.SavePNG(path, img)
}

func fauxv(v r3.Vec) fauxgl.Vector { return fauxgl.V(v.X, v.Y, v.Z) }
