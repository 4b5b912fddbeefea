package topology

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// triNode is a triangle as a graph node.
type triNode struct {
	id      int64
	indices [3]uint32
}

func (n triNode) ID() int64     { return n.id }
func (n triNode) DOTID() string { return fmt.Sprintf("t%d", n.id) }
func (n triNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{
		Key:   "label",
		Value: fmt.Sprintf("%d: %d %d %d", n.id, n.indices[0], n.indices[1], n.indices[2]),
	}}
}

// sharedEdge is an Edge as a graph edge.
type sharedEdge struct {
	f, t graph.Node
	e    Edge
}

func (e sharedEdge) From() graph.Node { return e.f }
func (e sharedEdge) To() graph.Node   { return e.t }
func (e sharedEdge) ReversedEdge() graph.Edge {
	e.f, e.t = e.t, e.f
	return e
}
func (e sharedEdge) Attributes() []encoding.Attribute {
	v := e.e.Vertices
	return []encoding.Attribute{{
		Key:   "label",
		Value: fmt.Sprintf("%d-%d/%d-%d", v[0][0], v[0][1], v[1][0], v[1][1]),
	}}
}

// Graph returns the adjacency graph: one node per triangle with the
// triangle index as ID and one edge per shared edge.
func (t *Topology) Graph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	nodes := make([]triNode, len(t.tris))
	for i := range t.tris {
		nodes[i] = triNode{id: int64(i), indices: t.tris[i].indices}
		g.AddNode(nodes[i])
	}
	for _, e := range t.Edges() {
		g.SetEdge(sharedEdge{f: nodes[e.Triangles[0]], t: nodes[e.Triangles[1]], e: e})
	}
	return g
}

// WriteDot writes the adjacency graph in graphviz dot format. Nodes are
// labeled with their vertex indices and edges with the local vertex
// pairs of both triangles.
func (t *Topology) WriteDot(w io.Writer, name string) error {
	b, err := dot.Marshal(t.Graph(), name, "", "\t")
	if err != nil {
		return fmt.Errorf("marshal topology graph: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// Info summarizes a topology.
type Info struct {
	Triangles int
	// Edges is the number of shared edges.
	Edges int
	// BoundaryEdges is the number of triangle edge slots without neighbor.
	BoundaryEdges int
	// Components is the number of edge connected triangle groups.
	Components int
	Area       float64
}

func (i Info) String() string {
	return fmt.Sprintf("triangles=%d edges=%d boundary=%d components=%d area=%g",
		i.Triangles, i.Edges, i.BoundaryEdges, i.Components, i.Area)
}

// Info returns counts describing t.
func (t *Topology) Info() Info {
	info := Info{
		Triangles: len(t.tris),
		Edges:     len(t.edges),
		Area:      t.TotalArea(),
	}
	for i := range t.tris {
		for e := 0; e < 3; e++ {
			if t.tris[i].free(e) {
				info.BoundaryEdges++
			}
		}
	}
	info.Components = len(topo.ConnectedComponents(t.Graph()))
	return info
}
