package topology

import (
	"math"

	"github.com/soypat/shapes"
	"gonum.org/v1/gonum/spatial/r3"
)

// matchTolerance is the fraction of the left triangle's shortest edge
// below which two vertex positions are the same point.
const matchTolerance = 0.1

// builder computes adjacency and metrics of a Topology's triangles.
type builder struct {
	topo *Topology
	pos  []r3.Vec
}

func (b *builder) build(g shapes.Generator) {
	opts := b.topo.opts
	b.pos = shapes.Positions(g, opts.Position)
	nv := uint32(len(b.pos))
	for i := range b.topo.tris {
		for _, idx := range b.topo.tris[i].indices {
			if idx >= nv {
				panic("vertex index out of range of position attribute")
			}
		}
	}
	var weights []float32
	var wn int
	if opts.Features.Weight() {
		wn = g.ValuesPerVertex(opts.Weight)
		if wn > 0 {
			weights = shapes.ReadAttrib(g, opts.Weight)
		}
	}
	tris := b.topo.tris
	if opts.Features.Adjacency() && len(tris) > 1 {
		tree := b.newCornerTree()
		for i := range tris {
			tol := matchTolerance * b.shortestEdge(&tris[i])
			if !(tol > 0) {
				continue
			}
			for _, j := range b.candidates(tree, i, tol) {
				b.link(i, j)
			}
		}
	}
	for i := range tris {
		t := &tris[i]
		if opts.Features.Area() {
			p0, p1, p2 := b.vertex(t, 0), b.vertex(t, 1), b.vertex(t, 2)
			t.area = 0.5 * r3.Norm(r3.Cross(r3.Sub(p1, p0), r3.Sub(p2, p0)))
		}
		if weights != nil {
			var w float64
			for _, idx := range t.indices {
				w += float64(weights[int(idx)*wn])
			}
			t.weight = w
		}
	}
}

func (b *builder) vertex(t *Triangle, v int) r3.Vec {
	return b.pos[t.indices[v]]
}

// link searches for an edge shared by triangles i and j and links
// them through it. Tolerance is derived from triangle i alone.
//
// For every pair of coincident local vertices a of i and c of j,
// the edge candidates are tried in order (prev,prev), (prev,next),
// (next,prev), (next,next) of a and c. The first candidate whose
// other endpoints coincide and whose edge slots are both free is
// accepted and the search ends.
func (b *builder) link(i, j int) {
	L, R := &b.topo.tris[i], &b.topo.tris[j]
	tol := matchTolerance * b.shortestEdge(L)
	tol2 := tol * tol
	same := func(lv, rv int) bool {
		return r3.Norm2(r3.Sub(b.vertex(L, lv), b.vertex(R, rv))) < tol2
	}
	for a := 0; a < 3; a++ {
		for c := 0; c < 3; c++ {
			if !same(a, c) {
				continue
			}
			aPrev, aNext := (a+2)%3, (a+1)%3
			cPrev, cNext := (c+2)%3, (c+1)%3
			for _, cand := range [4][2]int{
				{aPrev, cPrev}, {aPrev, cNext}, {aNext, cPrev}, {aNext, cNext},
			} {
				la, ra := cand[0], cand[1]
				if !same(la, ra) {
					continue
				}
				eL, eR := edgeSlot(a, la), edgeSlot(c, ra)
				if !L.free(eL) || !R.free(eR) {
					continue
				}
				L.adj[eL], L.opp[eL] = j, int8((eR+2)%3)
				R.adj[eR], R.opp[eR] = i, int8((eL+2)%3)
				b.topo.edges[[2]int{i, j}] = Edge{
					Triangles: [2]int{i, j},
					Vertices:  [2][2]int{{a, la}, {c, ra}},
				}
				return
			}
		}
	}
}

func (b *builder) shortestEdge(t *Triangle) float64 {
	p0, p1, p2 := b.vertex(t, 0), b.vertex(t, 1), b.vertex(t, 2)
	return math.Min(r3.Norm(r3.Sub(p1, p0)), math.Min(r3.Norm(r3.Sub(p2, p1)), r3.Norm(r3.Sub(p0, p2))))
}
