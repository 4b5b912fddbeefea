package shapes

import "sync"

// Cached memoizes attribute values, indices and instructions of the
// wrapped generator. Buffer queries are serialized by a mutex so a Cached
// may be shared between goroutines even if the wrapped generator's buffer
// queries are not safe for concurrent use.
type Cached struct {
	Delegate
	mu      sync.Mutex
	attribs map[AttribVariant][]float32
	indices map[int][]uint32
	ops     map[int][]DrawOp
}

var _ Generator = (*Cached)(nil)

// NewCached returns a caching wrapper of g.
func NewCached(g Generator) *Cached {
	if g == nil {
		panic("nil Generator argument")
	}
	return &Cached{
		Delegate: Delegate{Gen: g},
		attribs:  make(map[AttribVariant][]float32),
		indices:  make(map[int][]uint32),
		ops:      make(map[int][]DrawOp),
	}
}

func (c *Cached) Capabilities() Capabilities {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Gen.Capabilities()
}

// Enable forwards the request and drops memoized index data since
// capabilities select how indices are laid out.
func (c *Cached) Enable(caps Capabilities, on bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.Gen.Enable(caps, on)
	if ok {
		clear(c.indices)
		clear(c.ops)
	}
	return ok
}

func (c *Cached) AttribValues(v AttribVariant, dst []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	vals, ok := c.attribs[v]
	if !ok {
		n := c.Gen.ValuesPerVertex(v)
		if n == 0 {
			panic("unsupported attribute variant " + v.String())
		}
		vals = make([]float32, n*c.Gen.VertexCount())
		c.Gen.AttribValues(v, vals)
		c.attribs[v] = vals
	}
	MustFit("attribute", len(dst), len(vals))
	copy(dst, vals)
}

func (c *Cached) Indices(drawVariant int, dst []uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx, ok := c.indices[drawVariant]
	if !ok {
		MustDrawVariant(c.Gen, drawVariant)
		idx = ReadIndices(c.Gen, drawVariant)
		c.indices[drawVariant] = idx
	}
	MustFit("index", len(dst), len(idx))
	copy(dst, idx)
}

func (c *Cached) IndexCount(drawVariant int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx, ok := c.indices[drawVariant]; ok {
		return len(idx)
	}
	return c.Gen.IndexCount(drawVariant)
}

func (c *Cached) Instructions(drawVariant int, dst []DrawOp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops, ok := c.ops[drawVariant]
	if !ok {
		MustDrawVariant(c.Gen, drawVariant)
		ops = ReadInstructions(c.Gen, drawVariant)
		c.ops[drawVariant] = ops
	}
	MustFit("instruction", len(dst), len(ops))
	copy(dst, ops)
}

func (c *Cached) OperationCount(drawVariant int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ops, ok := c.ops[drawVariant]; ok {
		return len(ops)
	}
	return c.Gen.OperationCount(drawVariant)
}

func (c *Cached) RayIntersections(rays []Ray, hits []Hit) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Delegate.RayIntersections(rays, hits)
}
