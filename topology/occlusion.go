package topology

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/soypat/shapes"
	"github.com/soypat/shapes/internal/d3"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrCanceled is returned when occlusion is canceled through its
// progress callback or context.
var ErrCanceled = errors.New("occlusion canceled")

const (
	defaultOcclusionSamples = 64
	// occlusionUnit is the number of vertices processed per work unit.
	occlusionUnit = 64
	// originOffset displaces ray origins off the surface, relative to
	// the bounding sphere radius.
	originOffset = 1e-4
)

// OcclusionParms configures Occlude.
type OcclusionParms struct {
	// Samples is the number of rays cast per vertex. Defaults to 64.
	Samples int
	// Workers is the number of goroutines. Defaults to runtime.NumCPU().
	Workers int
	// Seed makes results reproducible independent of Workers.
	Seed uint64
	// Progress is called after every finished work unit with the number
	// of processed and total vertices. Returning false cancels the
	// remaining work. Calls are serialized.
	Progress func(done, total int) bool
}

// Occlude returns g with an additional Occlusion attribute variant
// holding, per vertex, the fraction of hemisphere rays around the vertex
// normal that hit the surface of draw variant 0. Vertices without normal
// attribute cast rays outward from the bounding sphere center.
//
// Cancellation is checked between work units, work in progress is
// always completed. A canceled call returns ErrCanceled.
func Occlude(ctx context.Context, g shapes.Generator, p OcclusionParms) (shapes.Generator, error) {
	if g == nil {
		panic("nil Generator argument")
	}
	if p.Samples < 0 || p.Workers < 0 {
		return nil, fmt.Errorf("negative occlusion parameter: samples=%d workers=%d", p.Samples, p.Workers)
	}
	if p.Samples == 0 {
		p.Samples = defaultOcclusionSamples
	}
	if p.Workers == 0 {
		p.Workers = runtime.NumCPU()
	}
	oc := occluder{
		parms:     p,
		intersect: NewIntersector(g, 0),
		pos:       shapes.Positions(g, shapes.Position.Variant(0)),
		bound:     g.BoundingSphere(),
	}
	oc.normals = oc.vertexNormals(g)
	oc.result = make([]float32, len(oc.pos))
	if err := oc.run(ctx); err != nil {
		return nil, err
	}
	return &occluded{
		Delegate: shapes.Delegate{Gen: g},
		variant:  shapes.Occlusion.Variant(g.AttribVariants(shapes.Occlusion)),
		values:   oc.result,
	}, nil
}

type occluder struct {
	parms     OcclusionParms
	intersect *Intersector
	pos       []r3.Vec
	normals   []r3.Vec
	bound     shapes.Sphere
	result    []float32

	progressMu sync.Mutex
	done       int
}

func (oc *occluder) vertexNormals(g shapes.Generator) []r3.Vec {
	nv := shapes.Normal.Variant(0)
	if g.ValuesPerVertex(nv) >= 3 {
		normals := shapes.Positions(g, nv)
		for i := range normals {
			normals[i] = r3.Unit(normals[i])
		}
		return normals
	}
	normals := make([]r3.Vec, len(oc.pos))
	for i, p := range oc.pos {
		d := r3.Sub(p, oc.bound.Center)
		if r3.Norm2(d) == 0 {
			d = r3.Vec{Y: 1}
		}
		normals[i] = r3.Unit(d)
	}
	return normals
}

func (oc *occluder) run(ctx context.Context) error {
	total := len(oc.pos)
	units := (total + occlusionUnit - 1) / occlusionUnit
	var (
		next     atomic.Int64
		canceled atomic.Bool
	)
	var group errgroup.Group
	for w := 0; w < oc.parms.Workers; w++ {
		group.Go(func() error {
			rays := make([]shapes.Ray, oc.parms.Samples)
			hits := make([]shapes.Hit, oc.parms.Samples)
			for {
				if canceled.Load() || ctx.Err() != nil {
					return ErrCanceled
				}
				u := int(next.Add(1) - 1)
				if u >= units {
					return nil
				}
				start := u * occlusionUnit
				end := min(start+occlusionUnit, total)
				for v := start; v < end; v++ {
					oc.vertex(v, rays, hits)
				}
				if !oc.report(end-start, total) {
					canceled.Store(true)
				}
			}
		})
	}
	err := group.Wait()
	if err != nil {
		shapes.Logger().Info("occlusion canceled", "done", oc.done, "total", total)
		return err
	}
	shapes.Logger().Debug("occlusion finished", "vertices", total, "samples", oc.parms.Samples, "workers", oc.parms.Workers)
	return nil
}

func (oc *occluder) report(n, total int) bool {
	oc.progressMu.Lock()
	defer oc.progressMu.Unlock()
	oc.done += n
	shapes.Logger().Debug("occlusion progress", "done", oc.done, "total", total)
	if oc.parms.Progress == nil {
		return true
	}
	return oc.parms.Progress(oc.done, total)
}

// vertex casts uniformly distributed rays over the hemisphere around
// the normal of vertex v.
func (oc *occluder) vertex(v int, rays []shapes.Ray, hits []shapes.Hit) {
	rnd := distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(oc.parms.Seed + uint64(v))}
	n := oc.normals[v]
	t, b := d3.Basis(n)
	origin := r3.Add(oc.pos[v], r3.Scale(originOffset*oc.bound.Radius, n))
	for i := range rays {
		z := rnd.Rand()
		r := math.Sqrt(math.Max(0, 1-z*z))
		s, c := math.Sincos(2 * math.Pi * rnd.Rand())
		dir := r3.Add(r3.Add(r3.Scale(r*c, t), r3.Scale(r*s, b)), r3.Scale(z, n))
		rays[i] = shapes.Ray{Origin: origin, Direction: dir}
	}
	oc.intersect.Intersect(rays, hits)
	var hit int
	for _, h := range hits {
		if h.OK {
			hit++
		}
	}
	oc.result[v] = float32(hit) / float32(len(hits))
}

// occluded adds an occlusion attribute variant to a generator.
type occluded struct {
	shapes.Delegate
	variant shapes.AttribVariant
	values  []float32
}

func (o *occluded) AttribKinds() shapes.AttribKinds {
	return o.Gen.AttribKinds().With(shapes.Occlusion)
}

func (o *occluded) AttribVariants(kind shapes.AttribKind) int {
	if kind == shapes.Occlusion {
		return o.variant.Index + 1
	}
	return o.Gen.AttribVariants(kind)
}

func (o *occluded) ValuesPerVertex(v shapes.AttribVariant) int {
	if v == o.variant {
		return 1
	}
	return o.Gen.ValuesPerVertex(v)
}

func (o *occluded) AttribValues(v shapes.AttribVariant, dst []float32) {
	if v != o.variant {
		o.Gen.AttribValues(v, dst)
		return
	}
	shapes.MustFit("attribute", len(dst), len(o.values))
	copy(dst, o.values)
}
