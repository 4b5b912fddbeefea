package topology

import (
	"fmt"

	"github.com/soypat/shapes"
)

// Face is a triangle as three vertex indices in canonical
// counter-clockwise order. CW records the winding flag of the
// operation the face came from.
type Face struct {
	Indices [3]uint32
	CW      bool
}

func canonical(a, b, c uint32, cw bool) Face {
	if cw {
		return Face{Indices: [3]uint32{a, c, b}, CW: true}
	}
	return Face{Indices: [3]uint32{a, b, c}}
}

// Flattenable reports whether FlattenOp produces triangles for mode.
func Flattenable(mode shapes.PrimitiveType) bool {
	return mode == shapes.Triangles || mode == shapes.TriangleStrip
}

// FlattenOp appends the triangles described by op to dst and returns
// the extended slice. indices is the full index buffer of op's draw
// variant and is ignored for unindexed operations.
//
// Only Triangles and TriangleStrip operations are flattened, other modes
// produce no triangles. For indexed strips with primitive restart, an
// index equal to the restart sentinel always ends the current strip,
// even if a vertex with that index exists.
func FlattenOp(op shapes.DrawOp, indices []uint32, dst []Face) []Face {
	if !Flattenable(op.Mode) {
		shapes.Logger().Debug("skipping draw operation", "op", op)
		return dst
	}
	if op.First < 0 || op.Count < 0 {
		panic(fmt.Sprintf("negative draw range in %s", op))
	}
	indexed := op.Indexed()
	if indexed {
		shapes.MustFit("index", len(indices), op.First+op.Count)
	}
	at := func(k int) uint32 {
		if indexed {
			return indices[op.First+k]
		}
		return uint32(op.First + k)
	}
	switch op.Mode {
	case shapes.Triangles:
		for k := 0; k+2 < op.Count; k += 3 {
			dst = append(dst, canonical(at(k), at(k+1), at(k+2), op.CW))
		}

	case shapes.TriangleStrip:
		restart := indexed && op.PrimitiveRestart
		var (
			window [2]uint32
			n      int // vertices accepted since last restart.
		)
		for k := 0; k < op.Count; k++ {
			idx := at(k)
			if restart && idx == op.RestartIndex {
				n = 0
				continue
			}
			if n < 2 {
				window[n] = idx
				n++
				continue
			}
			if (n-2)%2 == 0 {
				dst = append(dst, canonical(window[0], window[1], idx, op.CW))
			} else {
				dst = append(dst, canonical(window[1], window[0], idx, op.CW))
			}
			window[0], window[1] = window[1], idx
			n++
		}
	}
	return dst
}

// Flatten returns the triangles of all operations of a draw variant
// of g in operation order.
func Flatten(g shapes.Generator, drawVariant int) []Face {
	shapes.MustDrawVariant(g, drawVariant)
	ops := shapes.ReadInstructions(g, drawVariant)
	var indices []uint32
	if g.IndexType(drawVariant) != shapes.IndexNone {
		indices = shapes.ReadIndices(g, drawVariant)
	}
	var faces []Face
	for _, op := range ops {
		faces = FlattenOp(op, indices, faces)
	}
	return faces
}
