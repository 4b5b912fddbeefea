package shapes

// Delegate forwards every Generator method to Gen. Modifiers embed
// Delegate and override the methods they change.
type Delegate struct {
	Gen Generator
}

func (d Delegate) Capabilities() Capabilities                  { return d.Gen.Capabilities() }
func (d Delegate) Enable(c Capabilities, on bool) bool         { return d.Gen.Enable(c, on) }
func (d Delegate) VertexCount() int                            { return d.Gen.VertexCount() }
func (d Delegate) AttribKinds() AttribKinds                    { return d.Gen.AttribKinds() }
func (d Delegate) AttribVariants(kind AttribKind) int          { return d.Gen.AttribVariants(kind) }
func (d Delegate) ValuesPerVertex(v AttribVariant) int         { return d.Gen.ValuesPerVertex(v) }
func (d Delegate) AttribValues(v AttribVariant, dst []float32) { d.Gen.AttribValues(v, dst) }
func (d Delegate) DrawVariants() int                           { return d.Gen.DrawVariants() }
func (d Delegate) IndexType(drawVariant int) IndexType         { return d.Gen.IndexType(drawVariant) }
func (d Delegate) IndexCount(drawVariant int) int              { return d.Gen.IndexCount(drawVariant) }
func (d Delegate) Indices(drawVariant int, dst []uint32)       { d.Gen.Indices(drawVariant, dst) }
func (d Delegate) OperationCount(drawVariant int) int          { return d.Gen.OperationCount(drawVariant) }
func (d Delegate) Instructions(drawVariant int, dst []DrawOp) {
	d.Gen.Instructions(drawVariant, dst)
}
func (d Delegate) BoundingSphere() Sphere { return d.Gen.BoundingSphere() }

// RayIntersections forwards to Gen if it implements RayIntersector.
func (d Delegate) RayIntersections(rays []Ray, hits []Hit) bool {
	ri, ok := d.Gen.(RayIntersector)
	return ok && ri.RayIntersections(rays, hits)
}
