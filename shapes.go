package shapes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Generator is a procedural mesh source. It exposes flat per-vertex
// attribute buffers, index buffers and the draw operations that
// consume them. A Generator may offer several draw variants, each
// with its own index buffer and instruction list, over one shared
// vertex set.
//
// Methods that fill a caller provided buffer panic if the buffer is
// too short or the variant is not supported.
type Generator interface {
	// Capabilities returns the currently enabled capabilities.
	Capabilities() Capabilities
	// Enable requests enabling or disabling capabilities c and reports
	// whether the request was honored.
	Enable(c Capabilities, on bool) bool

	VertexCount() int
	// AttribKinds returns the set of attribute kinds with at least one variant.
	AttribKinds() AttribKinds
	// AttribVariants returns the number of variants of kind.
	AttribVariants(kind AttribKind) int
	// ValuesPerVertex returns number of float32 values of v per vertex
	// or 0 if v is not supported.
	ValuesPerVertex(v AttribVariant) int
	// AttribValues writes VertexCount()*ValuesPerVertex(v) values to dst.
	AttribValues(v AttribVariant, dst []float32)

	DrawVariants() int
	// IndexType returns IndexNone for unindexed draw variants.
	IndexType(drawVariant int) IndexType
	IndexCount(drawVariant int) int
	// Indices writes IndexCount(drawVariant) indices to dst.
	Indices(drawVariant int, dst []uint32)
	OperationCount(drawVariant int) int
	// Instructions writes OperationCount(drawVariant) operations to dst.
	Instructions(drawVariant int, dst []DrawOp)

	BoundingSphere() Sphere
}

// RayIntersector is implemented by generators able to compute ray hits
// more precisely or faster than the generic triangle intersector.
// RayIntersections reports false when the generator can not provide
// intersections, in which case hits is left untouched.
type RayIntersector interface {
	RayIntersections(rays []Ray, hits []Hit) bool
}

// AttribKind identifies a type of per-vertex data.
type AttribKind uint8

const (
	Position AttribKind = iota
	Normal
	Tangent
	Bitangent
	Pivot
	VertexCoord
	BoxCoord
	FaceCoord
	WrapCoord
	Color
	Weight
	Occlusion
	numKinds
)

var kindNames = [numKinds]string{
	Position:    "position",
	Normal:      "normal",
	Tangent:     "tangent",
	Bitangent:   "bitangent",
	Pivot:       "pivot",
	VertexCoord: "vertexcoord",
	BoxCoord:    "boxcoord",
	FaceCoord:   "facecoord",
	WrapCoord:   "wrapcoord",
	Color:       "color",
	Weight:      "weight",
	Occlusion:   "occlusion",
}

var kindComponents = [numKinds]int{
	Position:    3,
	Normal:      3,
	Tangent:     3,
	Bitangent:   3,
	Pivot:       3,
	VertexCoord: 3,
	BoxCoord:    3,
	FaceCoord:   3,
	WrapCoord:   2,
	Color:       4,
	Weight:      1,
	Occlusion:   1,
}

func (k AttribKind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("AttribKind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Components returns the usual number of values per vertex of kind k.
func (k AttribKind) Components() int {
	if k >= numKinds {
		return 0
	}
	return kindComponents[k]
}

// IsDirection reports whether values of k are unit vectors that must be
// renormalized after interpolation.
func (k AttribKind) IsDirection() bool {
	return k == Normal || k == Tangent || k == Bitangent
}

// Variant returns the i'th variant of kind k.
func (k AttribKind) Variant(i int) AttribVariant {
	return AttribVariant{Kind: k, Index: i}
}

// AttribVariant selects one of possibly several attributes of the same kind,
// i.e. a second set of wrap coordinates.
type AttribVariant struct {
	Kind  AttribKind
	Index int
}

func (v AttribVariant) String() string {
	return fmt.Sprintf("%s%d", v.Kind, v.Index)
}

// AttribKinds is a set of attribute kinds.
type AttribKinds uint16

// KindsOf returns the set containing kinds.
func KindsOf(kinds ...AttribKind) AttribKinds {
	var s AttribKinds
	for _, k := range kinds {
		s = s.With(k)
	}
	return s
}

func (s AttribKinds) Has(k AttribKind) bool            { return s&(1<<k) != 0 }
func (s AttribKinds) With(k AttribKind) AttribKinds    { return s | 1<<k }
func (s AttribKinds) Without(k AttribKind) AttribKinds { return s &^ (1 << k) }

// Kinds returns the kinds in s in ascending order.
func (s AttribKinds) Kinds() []AttribKind {
	var kinds []AttribKind
	for k := AttribKind(0); k < numKinds; k++ {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center r3.Vec
	Radius float64
}

// IntersectsRay reports whether the ray's line passes through the sphere
// in front of the ray origin or the origin lies inside the sphere.
func (s Sphere) IntersectsRay(r Ray) bool {
	oc := r3.Sub(r.Origin, s.Center)
	c := r3.Norm2(oc) - s.Radius*s.Radius
	if c <= 0 {
		return true
	}
	a := r3.Norm2(r.Direction)
	b := r3.Dot(oc, r.Direction)
	if b >= 0 || a == 0 {
		return false
	}
	return b*b-a*c >= 0
}

// IntersectRay returns the smallest positive parameter at which r
// crosses the surface of s.
func (s Sphere) IntersectRay(r Ray) Hit {
	oc := r3.Sub(r.Origin, s.Center)
	a := r3.Norm2(r.Direction)
	if a == 0 {
		return Hit{}
	}
	b := r3.Dot(oc, r.Direction)
	c := r3.Norm2(oc) - s.Radius*s.Radius
	disc := b*b - a*c
	if disc < 0 {
		return Hit{}
	}
	sq := math.Sqrt(disc)
	if t := (-b - sq) / a; t > 0 {
		return Hit{T: t, OK: true}
	}
	if t := (-b + sq) / a; t > 0 {
		return Hit{T: t, OK: true}
	}
	return Hit{}
}

// Ray is a half line starting at Origin. Direction need not be normalized.
type Ray struct {
	Origin    r3.Vec
	Direction r3.Vec
}

// At returns the point at parameter t along r.
func (r Ray) At(t float64) r3.Vec {
	return r3.Add(r.Origin, r3.Scale(t, r.Direction))
}

// Hit is a ray intersection result. OK is false when the ray missed.
type Hit struct {
	T  float64
	OK bool
}
