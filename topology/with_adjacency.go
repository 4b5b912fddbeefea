package topology

import (
	"sync"

	"github.com/soypat/shapes"
)

type adjacencyGen struct {
	shapes.Requiring
	mu    sync.Mutex
	topos map[int]*Topology
}

// WithAdjacency returns a generator drawing every draw variant of g as
// TrianglesAdjacency. Each triangle contributes the six indices
// v0, o0, v1, o1, v2, o2 where oe is the vertex across edge slot e, or
// the triangle's own opposite vertex on boundary edges.
//
// Topologies are built on first use of a draw variant. The returned
// generator reports indexed drawing as permanently enabled.
func WithAdjacency(g shapes.Generator) shapes.Generator {
	if g == nil {
		panic("nil Generator argument")
	}
	return &adjacencyGen{
		Requiring: shapes.Requiring{
			Delegate: shapes.Delegate{Gen: g},
			Caps:     shapes.IndexedDrawing,
		},
		topos: make(map[int]*Topology),
	}
}

func (a *adjacencyGen) topology(drawVariant int) *Topology {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.topos[drawVariant]
	if !ok {
		opts := DefaultOptions()
		opts.DrawVariant = drawVariant
		opts.Features = FeatureAdjacency
		t = New(a.Gen, opts)
		a.topos[drawVariant] = t
	}
	return t
}

// Enable forwards to the wrapped generator and forgets built topologies
// when it succeeds, since triangle order may change.
func (a *adjacencyGen) Enable(c shapes.Capabilities, on bool) bool {
	ok := a.Requiring.Enable(c, on)
	if ok {
		a.mu.Lock()
		a.topos = make(map[int]*Topology)
		a.mu.Unlock()
	}
	return ok
}

func (a *adjacencyGen) IndexType(drawVariant int) shapes.IndexType { return shapes.IndexU32 }

func (a *adjacencyGen) IndexCount(drawVariant int) int {
	return 6 * a.topology(drawVariant).TriangleCount()
}

func (a *adjacencyGen) Indices(drawVariant int, dst []uint32) {
	t := a.topology(drawVariant)
	shapes.MustFit("index", len(dst), 6*t.TriangleCount())
	for i := 0; i < t.TriangleCount(); i++ {
		tri := t.Triangle(i)
		for e := 0; e < 3; e++ {
			dst[6*i+2*e] = tri.Index(e)
			dst[6*i+2*e+1] = t.OppositeIndex(i, e)
		}
	}
}

func (a *adjacencyGen) OperationCount(drawVariant int) int { return 1 }

func (a *adjacencyGen) Instructions(drawVariant int, dst []shapes.DrawOp) {
	shapes.MustFit("operation", len(dst), 1)
	dst[0] = shapes.DrawOp{
		Mode:      shapes.TrianglesAdjacency,
		IndexType: shapes.IndexU32,
		Count:     a.IndexCount(drawVariant),
	}
}
