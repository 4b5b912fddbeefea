package shapes

import (
	"fmt"
	"math"
)

// PrimitiveType is the assembly mode of a draw operation.
type PrimitiveType uint8

const (
	Points PrimitiveType = iota
	Lines
	LineStrip
	LineLoop
	Triangles
	TriangleStrip
	TriangleFan
	TrianglesAdjacency
	Quads
	Patches
)

func (p PrimitiveType) String() string {
	switch p {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "linestrip"
	case LineLoop:
		return "lineloop"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "trianglestrip"
	case TriangleFan:
		return "trianglefan"
	case TrianglesAdjacency:
		return "trianglesadjacency"
	case Quads:
		return "quads"
	case Patches:
		return "patches"
	}
	return fmt.Sprintf("PrimitiveType(%d)", uint8(p))
}

// IndexType is the storage type of an index buffer.
type IndexType uint8

const (
	IndexNone IndexType = iota
	IndexU8
	IndexU16
	IndexU32
)

// Size returns the size in bytes of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexU8:
		return 1
	case IndexU16:
		return 2
	case IndexU32:
		return 4
	}
	return 0
}

// RestartIndex returns the primitive restart sentinel of t, which is
// the largest value representable by t.
func (t IndexType) RestartIndex() uint32 {
	switch t {
	case IndexU8:
		return math.MaxUint8
	case IndexU16:
		return math.MaxUint16
	case IndexU32:
		return math.MaxUint32
	}
	return 0
}

func (t IndexType) String() string {
	switch t {
	case IndexNone:
		return "none"
	case IndexU8:
		return "u8"
	case IndexU16:
		return "u16"
	case IndexU32:
		return "u32"
	}
	return fmt.Sprintf("IndexType(%d)", uint8(t))
}

// IndexTypeFor returns the smallest index type able to store maxIndex
// while keeping the restart sentinel free.
func IndexTypeFor(maxIndex uint32) IndexType {
	switch {
	case maxIndex < math.MaxUint8:
		return IndexU8
	case maxIndex < math.MaxUint16:
		return IndexU16
	}
	return IndexU32
}

// DrawOp describes a single draw call.
//
// For indexed operations First and Count address the index buffer,
// otherwise they address vertices directly.
type DrawOp struct {
	Mode      PrimitiveType
	IndexType IndexType
	First     int
	Count     int
	// PatchVertices is the number of vertices per patch in Patches mode.
	PatchVertices int
	// RestartIndex terminates a strip when PrimitiveRestart is set.
	RestartIndex     uint32
	PrimitiveRestart bool
	// CW is set for clockwise front faces.
	CW bool
}

// Indexed reports whether op reads from the index buffer.
func (op DrawOp) Indexed() bool { return op.IndexType != IndexNone }

func (op DrawOp) String() string {
	s := fmt.Sprintf("%s[%d:%d]", op.Mode, op.First, op.First+op.Count)
	if op.Indexed() {
		s += " " + op.IndexType.String()
	}
	if op.PrimitiveRestart {
		s += fmt.Sprintf(" restart=%d", op.RestartIndex)
	}
	if op.CW {
		s += " cw"
	}
	return s
}
