package topology

import (
	"fmt"

	"github.com/soypat/shapes"
)

// pointCloud is a generator of points without indices.
type pointCloud struct {
	shapes.Base
	count    int
	kinds    shapes.AttribKinds
	variants [16]int
	attribs  map[shapes.AttribVariant]pointAttrib
	bound    shapes.Sphere
}

type pointAttrib struct {
	n    int
	data []float32
}

// SurfacePoints returns a generator of count points distributed over
// the surface of draw variant 0 of g. Every attribute variant of g is
// interpolated at the sampled points. The points are drawn by a single
// unindexed Points operation.
func SurfacePoints(g shapes.Generator, count int, seed uint64) (shapes.Generator, error) {
	if count <= 0 {
		return nil, fmt.Errorf("non-positive point count %d", count)
	}
	opts := DefaultOptions()
	opts.Features = FeatureArea | FeatureWeight
	topo := New(g, opts)
	s, err := NewSampler(topo, seed)
	if err != nil {
		return nil, err
	}
	type sample struct {
		tri  int
		bary [3]float64
	}
	samples := make([]sample, count)
	for i := range samples {
		samples[i].tri, samples[i].bary = s.Sample()
	}
	pc := &pointCloud{
		count:   count,
		attribs: make(map[shapes.AttribVariant]pointAttrib),
		bound:   g.BoundingSphere(),
	}
	for _, v := range shapes.Variants(g) {
		n := g.ValuesPerVertex(v)
		values := shapes.ReadAttrib(g, v)
		data := make([]float32, count*n)
		for i, smp := range samples {
			s.Interpolate(smp.tri, smp.bary, v, values, data[i*n:(i+1)*n])
		}
		pc.attribs[v] = pointAttrib{n: n, data: data}
		pc.kinds = pc.kinds.With(v.Kind)
		pc.variants[v.Kind]++
	}
	return pc, nil
}

func (pc *pointCloud) VertexCount() int                { return pc.count }
func (pc *pointCloud) AttribKinds() shapes.AttribKinds { return pc.kinds }
func (pc *pointCloud) AttribVariants(k shapes.AttribKind) int {
	if int(k) >= len(pc.variants) {
		return 0
	}
	return pc.variants[k]
}

func (pc *pointCloud) ValuesPerVertex(v shapes.AttribVariant) int { return pc.attribs[v].n }

func (pc *pointCloud) AttribValues(v shapes.AttribVariant, dst []float32) {
	a, ok := pc.attribs[v]
	if !ok {
		panic(fmt.Sprintf("unsupported attribute variant %s", v))
	}
	shapes.MustFit("attribute", len(dst), len(a.data))
	copy(dst, a.data)
}

func (pc *pointCloud) DrawVariants() int                          { return 1 }
func (pc *pointCloud) IndexType(drawVariant int) shapes.IndexType { return shapes.IndexNone }
func (pc *pointCloud) IndexCount(drawVariant int) int             { return 0 }
func (pc *pointCloud) Indices(drawVariant int, dst []uint32)      { shapes.MustDrawVariant(pc, drawVariant) }
func (pc *pointCloud) OperationCount(drawVariant int) int         { return 1 }

func (pc *pointCloud) Instructions(drawVariant int, dst []shapes.DrawOp) {
	shapes.MustDrawVariant(pc, drawVariant)
	shapes.MustFit("operation", len(dst), 1)
	dst[0] = shapes.DrawOp{Mode: shapes.Points, Count: pc.count}
}

func (pc *pointCloud) BoundingSphere() shapes.Sphere { return pc.bound }
