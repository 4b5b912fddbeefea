// Package topology reconstructs triangle adjacency of shape generators
// and offers consumers of it: adjacency index buffers, area weighted
// surface sampling, ray intersection and graph export.
//
// A Topology is built once in a single pass and is read only afterwards,
// so it may be queried from multiple goroutines. Candidate triangle pairs
// are found through a k-d tree of vertex positions; pairs are linked in
// ascending order so the result equals that of comparing every pair.
package topology

import (
	"fmt"
	"sort"

	"github.com/soypat/shapes"
)

// Topology holds the triangles of one draw variant of a generator
// with their adjacency and metrics.
type Topology struct {
	opts  Options
	tris  []Triangle
	edges map[[2]int]Edge
}

// Edge is an edge shared by two triangles. Triangles are ordered with
// the smaller index first. Vertices holds each triangle's local edge
// vertices such that Vertices[0][k] and Vertices[1][k] lie on the
// same point.
type Edge struct {
	Triangles [2]int
	Vertices  [2][2]int
}

// New builds the topology of g for opts. It panics if the position
// attribute is missing or has less than 3 components.
func New(g shapes.Generator, opts Options) *Topology {
	if g == nil {
		panic("nil Generator argument")
	}
	faces := Flatten(g, opts.DrawVariant)
	t := &Topology{
		opts:  opts,
		tris:  make([]Triangle, len(faces)),
		edges: make(map[[2]int]Edge),
	}
	for i, f := range faces {
		t.tris[i] = newTriangle(f)
	}
	b := builder{topo: t}
	b.build(g)
	shapes.Logger().Debug("topology built",
		"triangles", len(t.tris),
		"edges", len(t.edges),
		"drawVariant", opts.DrawVariant,
		"features", opts.Features,
	)
	return t
}

// Options returns the options the topology was built with.
func (t *Topology) Options() Options { return t.opts }

func (t *Topology) TriangleCount() int { return len(t.tris) }

// Triangle returns the i'th triangle.
func (t *Topology) Triangle(i int) Triangle {
	if i < 0 || i >= len(t.tris) {
		panic(fmt.Sprintf("triangle %d out of range [0,%d)", i, len(t.tris)))
	}
	return t.tris[i]
}

// OppositeIndex returns the vertex index across edge slot e of
// triangle i. For boundary edges it returns triangle i's own vertex
// opposite of e.
func (t *Topology) OppositeIndex(i, e int) uint32 {
	tri := t.Triangle(i)
	if adj, ok := tri.Adjacent(e); ok {
		return t.tris[adj].indices[tri.opp[e]]
	}
	return tri.indices[(e+2)%3]
}

func (t *Topology) EdgeCount() int { return len(t.edges) }

// Edge returns the edge shared by triangles a and b.
func (t *Topology) Edge(a, b int) (Edge, bool) {
	if a > b {
		a, b = b, a
	}
	e, ok := t.edges[[2]int{a, b}]
	return e, ok
}

// Edges returns all shared edges ordered by triangle indices.
func (t *Topology) Edges() []Edge {
	edges := make([]Edge, 0, len(t.edges))
	for _, e := range t.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i].Triangles, edges[j].Triangles
		return a[0] < b[0] || (a[0] == b[0] && a[1] < b[1])
	})
	return edges
}

// TotalArea returns the sum of triangle areas.
func (t *Topology) TotalArea() (area float64) {
	for i := range t.tris {
		area += t.tris[i].area
	}
	return area
}
