// Package render exports generator surfaces: binary STL files, shaded
// PNG previews and sampling histograms.
package render

import (
	"io"

	"github.com/soypat/shapes"
	"github.com/soypat/shapes/topology"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer reads triangles into t until io.EOF.
type Renderer interface {
	ReadTriangles(t []r3.Triangle) (int, error)
}

var _ Renderer = (*FaceReader)(nil)

// Faces returns the counter-clockwise triangles drawn by a draw variant
// of g in position variant 0. Triangles of zero area are omitted.
func Faces(g shapes.Generator, drawVariant int) []r3.Triangle {
	faces := topology.Flatten(g, drawVariant)
	if len(faces) == 0 {
		return nil
	}
	pos := shapes.Positions(g, shapes.Position.Variant(0))
	tris := make([]r3.Triangle, 0, len(faces))
	for _, f := range faces {
		t := r3.Triangle{pos[f.Indices[0]], pos[f.Indices[1]], pos[f.Indices[2]]}
		if r3.Norm2(t.Normal()) == 0 {
			continue
		}
		tris = append(tris, t)
	}
	return tris
}

// FaceReader is a Renderer over the faces of a generator.
type FaceReader struct {
	buf triangle3Buffer
}

// NewFaceReader flattens the draw variant of g once and returns a
// Renderer reading its faces.
func NewFaceReader(g shapes.Generator, drawVariant int) *FaceReader {
	r := &FaceReader{}
	r.buf.Write(Faces(g, drawVariant))
	return r
}

// ReadTriangles implements Renderer.
func (r *FaceReader) ReadTriangles(t []r3.Triangle) (int, error) {
	if r.buf.Len() == 0 {
		return 0, io.EOF
	}
	return r.buf.Read(t), nil
}
