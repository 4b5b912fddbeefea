package topology

import (
	"sync"

	"github.com/soypat/shapes"
)

type patchGen struct {
	shapes.Requiring
	mu    sync.Mutex
	faces map[int][]Face
}

// ToPatches returns a generator drawing the triangles of every draw
// variant of g as Patches of three vertices for tessellation shaders.
// Triangles are emitted in canonical counter-clockwise order.
func ToPatches(g shapes.Generator) shapes.Generator {
	if g == nil {
		panic("nil Generator argument")
	}
	return &patchGen{
		Requiring: shapes.Requiring{
			Delegate: shapes.Delegate{Gen: g},
			Caps:     shapes.IndexedDrawing,
		},
		faces: make(map[int][]Face),
	}
}

func (p *patchGen) flat(drawVariant int) []Face {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.faces[drawVariant]
	if !ok {
		f = Flatten(p.Gen, drawVariant)
		p.faces[drawVariant] = f
	}
	return f
}

func (p *patchGen) Enable(c shapes.Capabilities, on bool) bool {
	ok := p.Requiring.Enable(c, on)
	if ok {
		p.mu.Lock()
		p.faces = make(map[int][]Face)
		p.mu.Unlock()
	}
	return ok
}

func (p *patchGen) IndexType(drawVariant int) shapes.IndexType { return shapes.IndexU32 }
func (p *patchGen) IndexCount(drawVariant int) int             { return 3 * len(p.flat(drawVariant)) }

func (p *patchGen) Indices(drawVariant int, dst []uint32) {
	faces := p.flat(drawVariant)
	shapes.MustFit("index", len(dst), 3*len(faces))
	for i, f := range faces {
		copy(dst[3*i:], f.Indices[:])
	}
}

func (p *patchGen) OperationCount(drawVariant int) int { return 1 }

func (p *patchGen) Instructions(drawVariant int, dst []shapes.DrawOp) {
	shapes.MustFit("operation", len(dst), 1)
	dst[0] = shapes.DrawOp{
		Mode:          shapes.Patches,
		IndexType:     shapes.IndexU32,
		Count:         p.IndexCount(drawVariant),
		PatchVertices: 3,
	}
}
