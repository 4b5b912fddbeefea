// Package gldraw uploads generator buffers to OpenGL and replays their
// draw operations. All functions making GL calls require a current
// OpenGL context on the calling thread.
package gldraw

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/go-gl/gl/all-core/gl"
	"github.com/soypat/glgl/v4.6-core/glgl"
	"github.com/soypat/shapes"
)

// Attrib binds an attribute variant to a vertex shader input.
type Attrib struct {
	Variant shapes.AttribVariant
	// Name of the input in the vertex shader source.
	Name string
}

// Batch holds the GPU buffers of one draw variant of a generator.
type Batch struct {
	vao      glgl.VertexArray
	vbo      glgl.VertexBuffer
	ebo      uint32
	vertices int
	itype    shapes.IndexType
	ops      []shapes.DrawOp
}

// Upload interleaves the attribute variants of g into a vertex buffer
// and packs the indices of drawVariant into an element buffer of the
// generator's index type. Attributes are bound to the named inputs of prog.
func Upload(prog glgl.Program, g shapes.Generator, drawVariant int, attribs ...Attrib) (*Batch, error) {
	if len(attribs) == 0 {
		return nil, errors.New("no attributes to upload")
	}
	shapes.MustDrawVariant(g, drawVariant)
	variants := make([]shapes.AttribVariant, len(attribs))
	for i, a := range attribs {
		variants[i] = a.Variant
	}
	data, layout, err := Interleave(g, variants)
	if err != nil {
		return nil, err
	}
	ops := shapes.ReadInstructions(g, drawVariant)
	for _, op := range ops {
		if _, ok := Mode(op.Mode); !ok {
			return nil, fmt.Errorf("primitive %s has no OpenGL core equivalent", op.Mode)
		}
	}
	b := &Batch{vertices: g.VertexCount(), itype: g.IndexType(drawVariant), ops: ops}
	b.vao = glgl.NewVAO()
	b.vbo, err = glgl.NewVertexBuffer(glgl.StaticDraw, data)
	if err != nil {
		return nil, err
	}
	for i, a := range attribs {
		err = b.vao.AddAttribute(b.vbo, glgl.AttribLayout{
			Program: prog,
			Type:    gl.FLOAT,
			Name:    a.Name + "\x00",
			Packing: layout.Components[i],
			Stride:  4 * layout.Stride,
			Offset:  4 * layout.Offsets[i],
		})
		if err != nil {
			b.Delete()
			return nil, fmt.Errorf("binding %s to %q: %w", a.Variant, a.Name, err)
		}
	}
	if b.itype != shapes.IndexNone && g.IndexCount(drawVariant) > 0 {
		packed := packIndices(b.itype, shapes.ReadIndices(g, drawVariant))
		gl.GenBuffers(1, &b.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(packed), gl.Ptr(packed), gl.STATIC_DRAW)
	}
	b.vao.Unbind()
	if err = glgl.Err(); err != nil {
		b.Delete()
		return nil, err
	}
	return b, nil
}

// Draw replays the draw operations of the batch.
func (b *Batch) Draw() error {
	b.vao.Bind()
	defer b.vao.Unbind()
	for _, op := range b.ops {
		if op.Count == 0 {
			continue
		}
		mode, _ := Mode(op.Mode)
		if op.CW {
			gl.FrontFace(gl.CW)
		} else {
			gl.FrontFace(gl.CCW)
		}
		if op.Mode == shapes.Patches {
			gl.PatchParameteri(gl.PATCH_VERTICES, int32(op.PatchVertices))
		}
		if !op.Indexed() {
			gl.DrawArrays(mode, int32(op.First), int32(op.Count))
			continue
		}
		if op.PrimitiveRestart {
			gl.Enable(gl.PRIMITIVE_RESTART)
			gl.PrimitiveRestartIndex(op.RestartIndex)
		}
		offset := uintptr(op.First * b.itype.Size())
		gl.DrawElementsWithOffset(mode, int32(op.Count), glIndexType(b.itype), offset)
		if op.PrimitiveRestart {
			gl.Disable(gl.PRIMITIVE_RESTART)
		}
	}
	gl.FrontFace(gl.CCW)
	return glgl.Err()
}

// Delete frees the GPU buffers of the batch.
func (b *Batch) Delete() {
	b.vbo.Delete()
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
}

// Layout describes interleaved vertex data in units of float32.
type Layout struct {
	Stride     int
	Offsets    []int
	Components []int
}

// Interleave reads the attribute variants of g and interleaves them
// per vertex in the order given.
func Interleave(g shapes.Generator, variants []shapes.AttribVariant) ([]float32, Layout, error) {
	var layout Layout
	for _, v := range variants {
		n := g.ValuesPerVertex(v)
		if n < 1 || n > 4 {
			return nil, Layout{}, fmt.Errorf("attribute %s has %d components per vertex", v, n)
		}
		layout.Offsets = append(layout.Offsets, layout.Stride)
		layout.Components = append(layout.Components, n)
		layout.Stride += n
	}
	nv := g.VertexCount()
	if nv == 0 {
		return nil, Layout{}, errors.New("generator has no vertices")
	}
	data := make([]float32, nv*layout.Stride)
	for i, v := range variants {
		n, off := layout.Components[i], layout.Offsets[i]
		values := shapes.ReadAttrib(g, v)
		for k := 0; k < nv; k++ {
			copy(data[k*layout.Stride+off:], values[k*n:(k+1)*n])
		}
	}
	return data, layout, nil
}

// Mode returns the OpenGL primitive of p. Quads have no core
// profile equivalent.
func Mode(p shapes.PrimitiveType) (uint32, bool) {
	switch p {
	case shapes.Points:
		return gl.POINTS, true
	case shapes.Lines:
		return gl.LINES, true
	case shapes.LineStrip:
		return gl.LINE_STRIP, true
	case shapes.LineLoop:
		return gl.LINE_LOOP, true
	case shapes.Triangles:
		return gl.TRIANGLES, true
	case shapes.TriangleStrip:
		return gl.TRIANGLE_STRIP, true
	case shapes.TriangleFan:
		return gl.TRIANGLE_FAN, true
	case shapes.TrianglesAdjacency:
		return gl.TRIANGLES_ADJACENCY, true
	case shapes.Patches:
		return gl.PATCHES, true
	}
	return 0, false
}

func glIndexType(t shapes.IndexType) uint32 {
	switch t {
	case shapes.IndexU8:
		return gl.UNSIGNED_BYTE
	case shapes.IndexU16:
		return gl.UNSIGNED_SHORT
	}
	return gl.UNSIGNED_INT
}

// packIndices stores indices in native byte order at the width of t.
// Indices are truncated to the width of t; the restart sentinel of a
// narrower type is preserved since it is the type's maximum.
func packIndices(t shapes.IndexType, indices []uint32) []byte {
	size := t.Size()
	b := make([]byte, size*len(indices))
	for i, idx := range indices {
		switch t {
		case shapes.IndexU8:
			b[i] = uint8(idx)
		case shapes.IndexU16:
			binary.NativeEndian.PutUint16(b[2*i:], uint16(idx))
		case shapes.IndexU32:
			binary.NativeEndian.PutUint32(b[4*i:], idx)
		}
	}
	return b
}
