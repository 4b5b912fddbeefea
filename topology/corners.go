package topology

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	_ kdtree.Interface  = corners{}
	_ kdtree.Comparable = corner{}
)

// corner is a triangle vertex position stored in a k-d tree.
type corner struct {
	pos r3.Vec
	tri int
}

type corners []corner

// newCornerTree indexes the vertex positions of all triangles.
func (b *builder) newCornerTree() *kdtree.Tree {
	tris := b.topo.tris
	cs := make(corners, 0, 3*len(tris))
	for i := range tris {
		for v := 0; v < 3; v++ {
			cs = append(cs, corner{pos: b.vertex(&tris[i], v), tri: i})
		}
	}
	return kdtree.New(cs, false)
}

// candidates returns, in ascending order, the triangles after i with
// a vertex closer than tol to a vertex of triangle i.
func (b *builder) candidates(tree *kdtree.Tree, i int, tol float64) []int {
	var found []int
	for v := 0; v < 3; v++ {
		keep := kdtree.NewDistKeeper(tol * tol)
		tree.NearestSet(keep, corner{pos: b.vertex(&b.topo.tris[i], v), tri: -1})
		for _, c := range keep.Heap {
			if j := c.Comparable.(corner).tri; j > i {
				found = append(found, j)
			}
		}
	}
	sort.Ints(found)
	uniq := found[:0]
	for k, j := range found {
		if k == 0 || j != found[k-1] {
			uniq = append(uniq, j)
		}
	}
	return uniq
}

func (c corners) Index(i int) kdtree.Comparable { return c[i] }
func (c corners) Len() int                      { return len(c) }

func (c corners) Pivot(d kdtree.Dim) int {
	p := cornerPlane{dim: d, corners: c}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (c corners) Slice(start, end int) kdtree.Interface { return c[start:end] }

// Compare returns the signed distance of a from the plane passing through
// b and perpendicular to the dimension d.
func (a corner) Compare(b kdtree.Comparable, d kdtree.Dim) float64 {
	return elem(a.pos, d) - elem(b.(corner).pos, d)
}

func (a corner) Dims() int { return 3 }

// Distance returns the squared Euclidean distance between positions.
func (a corner) Distance(b kdtree.Comparable) float64 {
	return r3.Norm2(r3.Sub(a.pos, b.(corner).pos))
}

func elem(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	}
	return v.Z
}

type cornerPlane struct {
	dim     kdtree.Dim
	corners corners
}

func (p cornerPlane) Less(i, j int) bool {
	return elem(p.corners[i].pos, p.dim) < elem(p.corners[j].pos, p.dim)
}
func (p cornerPlane) Swap(i, j int) {
	p.corners[i], p.corners[j] = p.corners[j], p.corners[i]
}
func (p cornerPlane) Len() int {
	return len(p.corners)
}
func (p cornerPlane) Slice(start, end int) kdtree.SortSlicer {
	p.corners = p.corners[start:end]
	return p
}
