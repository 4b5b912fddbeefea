package topology_test

import (
	"reflect"
	"testing"

	"github.com/soypat/shapes"
	"github.com/soypat/shapes/form3/must3"
	"github.com/soypat/shapes/topology"
)

func TestFlattenOp(t *testing.T) {
	const R = 255
	for _, test := range []struct {
		name    string
		op      shapes.DrawOp
		indices []uint32
		want    [][3]uint32
		cw      bool
	}{
		{
			name:    "triangles",
			op:      shapes.DrawOp{Mode: shapes.Triangles, IndexType: shapes.IndexU8, Count: 6},
			indices: []uint32{0, 1, 2, 2, 1, 3},
			want:    [][3]uint32{{0, 1, 2}, {2, 1, 3}},
		},
		{
			name:    "triangles cw",
			op:      shapes.DrawOp{Mode: shapes.Triangles, IndexType: shapes.IndexU8, Count: 3, CW: true},
			indices: []uint32{0, 1, 2},
			want:    [][3]uint32{{0, 2, 1}},
			cw:      true,
		},
		{
			name:    "triangles trailing indices ignored",
			op:      shapes.DrawOp{Mode: shapes.Triangles, IndexType: shapes.IndexU8, First: 1, Count: 5},
			indices: []uint32{9, 4, 5, 6, 7, 8},
			want:    [][3]uint32{{4, 5, 6}},
		},
		{
			name: "unindexed triangles",
			op:   shapes.DrawOp{Mode: shapes.Triangles, First: 3, Count: 3},
			want: [][3]uint32{{3, 4, 5}},
		},
		{
			name:    "strip",
			op:      shapes.DrawOp{Mode: shapes.TriangleStrip, IndexType: shapes.IndexU8, Count: 5},
			indices: []uint32{0, 1, 2, 3, 4},
			want:    [][3]uint32{{0, 1, 2}, {2, 1, 3}, {2, 3, 4}},
		},
		{
			name: "strip restart",
			op: shapes.DrawOp{Mode: shapes.TriangleStrip, IndexType: shapes.IndexU8, Count: 9,
				PrimitiveRestart: true, RestartIndex: R},
			indices: []uint32{0, 1, 2, 3, R, 4, 5, 6, R},
			want:    [][3]uint32{{0, 1, 2}, {2, 1, 3}, {4, 5, 6}},
		},
		{
			name:    "restart index without restart flag is a vertex",
			op:      shapes.DrawOp{Mode: shapes.TriangleStrip, IndexType: shapes.IndexU8, Count: 4, RestartIndex: 2},
			indices: []uint32{0, 1, 2, 3},
			want:    [][3]uint32{{0, 1, 2}, {2, 1, 3}},
		},
		{
			name: "unindexed strip ignores restart",
			op: shapes.DrawOp{Mode: shapes.TriangleStrip, First: 2, Count: 4,
				PrimitiveRestart: true, RestartIndex: 3},
			want: [][3]uint32{{2, 3, 4}, {4, 3, 5}},
		},
		{
			name:    "strip cw",
			op:      shapes.DrawOp{Mode: shapes.TriangleStrip, IndexType: shapes.IndexU8, Count: 4, CW: true},
			indices: []uint32{0, 1, 2, 3},
			want:    [][3]uint32{{0, 2, 1}, {2, 3, 1}},
			cw:      true,
		},
		{
			name:    "lines skipped",
			op:      shapes.DrawOp{Mode: shapes.Lines, IndexType: shapes.IndexU8, Count: 4},
			indices: []uint32{0, 1, 1, 2},
		},
		{
			name: "fan skipped",
			op:   shapes.DrawOp{Mode: shapes.TriangleFan, Count: 5},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			faces := topology.FlattenOp(test.op, test.indices, nil)
			var got [][3]uint32
			for _, f := range faces {
				got = append(got, f.Indices)
				if f.CW != test.cw {
					t.Errorf("face %v: got CW=%v, want %v", f.Indices, f.CW, test.cw)
				}
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("got %v, want %v", got, test.want)
			}
		})
	}
}

func TestFlattenCapabilitiesAgree(t *testing.T) {
	// Strips, separate strip operations and plain triangles describe
	// the same surface.
	for _, caps := range []shapes.Capabilities{
		shapes.ElementStrips | shapes.PrimitiveRestart,
		shapes.ElementStrips,
		0,
	} {
		cube := must3.NewCube(1)
		cube.Enable(shapes.ElementStrips|shapes.PrimitiveRestart, false)
		if caps != 0 && !cube.Enable(caps, true) {
			t.Fatalf("enable %s refused", caps)
		}
		faces := topology.Flatten(cube, 0)
		if len(faces) != 12 {
			t.Errorf("caps %s: got %d triangles, want 12", caps, len(faces))
		}
		topo := topology.New(cube, topology.DefaultOptions())
		if topo.EdgeCount() != 18 {
			t.Errorf("caps %s: got %d edges, want 18", caps, topo.EdgeCount())
		}
	}
}

func TestFlattenSkipsLines(t *testing.T) {
	cube := must3.NewCube(1)
	if faces := topology.Flatten(cube, 1); len(faces) != 0 {
		t.Errorf("outline draw variant produced %d triangles", len(faces))
	}
}
