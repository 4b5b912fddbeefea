package topology

// noTriangle marks an edge slot without neighbor.
const noTriangle = -1

// Triangle is a triangle of a Topology. Edge slot e joins local
// vertices e and (e+1)%3; local vertex (e+2)%3 lies opposite of it.
type Triangle struct {
	indices [3]uint32
	// adj holds the neighbor triangle index per edge slot.
	adj [3]int
	// opp holds the neighbor's local vertex opposite the shared edge.
	opp    [3]int8
	area   float64
	weight float64
	cw     bool
}

func newTriangle(f Face) Triangle {
	return Triangle{
		indices: f.Indices,
		adj:     [3]int{noTriangle, noTriangle, noTriangle},
		opp:     [3]int8{-1, -1, -1},
		weight:  3,
		cw:      f.CW,
	}
}

// Index returns the vertex index at local vertex v in canonical order.
func (t Triangle) Index(v int) uint32 { return t.indices[v] }

// Indices returns the three vertex indices in canonical order.
func (t Triangle) Indices() [3]uint32 { return t.indices }

// Adjacent returns the triangle sharing edge slot e, if any.
func (t Triangle) Adjacent(e int) (int, bool) {
	a := t.adj[e]
	return a, a != noTriangle
}

// OppositeSlot returns the local vertex of the adjacent triangle across
// edge slot e, or -1 for boundary edges.
func (t Triangle) OppositeSlot(e int) int { return int(t.opp[e]) }

// Area returns the triangle area or zero if not computed.
func (t Triangle) Area() float64 { return t.area }

// Weight returns the sum of vertex weights. It is 3 when weights were
// not computed or the weight attribute is missing.
func (t Triangle) Weight() float64 { return t.weight }

// CW reports whether the triangle came from a clockwise draw operation.
func (t Triangle) CW() bool { return t.cw }

func (t *Triangle) free(e int) bool { return t.adj[e] == noTriangle }

// edgeSlot returns the slot joining local vertices a and b, which
// must be distinct.
func edgeSlot(a, b int) int {
	if (a+1)%3 == b {
		return a
	}
	return b
}
