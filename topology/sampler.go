package topology

import (
	"errors"
	"math"
	"sort"

	"github.com/soypat/shapes"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrEmptySurface is returned when a topology has no sampleable area.
var ErrEmptySurface = errors.New("topology has no sampleable surface")

// Sampler draws points uniformly distributed over the surface of a
// Topology, weighting each triangle by its area times its weight.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	topo  *Topology
	cum   []float64
	total float64
	rnd   distuv.Uniform
}

// NewSampler returns a sampler of t seeded with seed. t must have been
// built with the area feature. Equal seeds yield equal sample sequences.
func NewSampler(t *Topology, seed uint64) (*Sampler, error) {
	if !t.opts.Features.Area() {
		return nil, errors.New("topology built without area feature")
	}
	cum := make([]float64, len(t.tris))
	for i := range t.tris {
		cum[i] = t.tris[i].area * t.tris[i].weight
	}
	floats.CumSum(cum, cum)
	if len(cum) == 0 || !(cum[len(cum)-1] > 0) {
		return nil, ErrEmptySurface
	}
	return &Sampler{
		topo:  t,
		cum:   cum,
		total: cum[len(cum)-1],
		rnd:   distuv.Uniform{Min: 0, Max: 1, Src: rand.NewSource(seed)},
	}, nil
}

// Sample returns a random triangle index and barycentric coordinates
// of a point on it.
func (s *Sampler) Sample() (tri int, bary [3]float64) {
	r := s.total * (1 - s.rnd.Rand())
	tri = sort.SearchFloat64s(s.cum, r)
	if tri == len(s.cum) {
		tri-- // Rounding of total.
	}
	a, b := s.rnd.Rand(), s.rnd.Rand()
	if a > b {
		a, b = b, a
	}
	return tri, [3]float64{a, b - a, 1 - b}
}

// Interpolate writes to dst the value of attribute v at barycentric
// coordinates bary of triangle tri. values holds v for all vertices
// with len(dst) components each. Direction kinds are renormalized.
func (s *Sampler) Interpolate(tri int, bary [3]float64, v shapes.AttribVariant, values, dst []float32) {
	interpolate(s.topo.Triangle(tri).indices, bary, v.Kind.IsDirection(), values, dst)
}

func interpolate(idx [3]uint32, bary [3]float64, direction bool, values, dst []float32) {
	n := len(dst)
	var norm float64
	for c := 0; c < n; c++ {
		var x float64
		for k := 0; k < 3; k++ {
			x += bary[k] * float64(values[int(idx[k])*n+c])
		}
		dst[c] = float32(x)
		norm += x * x
	}
	if direction && norm > 0 {
		inv := 1 / math.Sqrt(norm)
		for c := range dst {
			dst[c] = float32(float64(dst[c]) * inv)
		}
	}
}
