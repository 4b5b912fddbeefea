package topology

import (
	"strings"

	"github.com/soypat/shapes"
)

// Features selects which per-triangle data a Topology computes.
type Features uint8

const (
	// FeatureAdjacency links triangles sharing an edge.
	FeatureAdjacency Features = 1 << iota
	// FeatureArea computes triangle areas.
	FeatureArea
	// FeatureWeight sums a per-vertex weight attribute over each triangle.
	FeatureWeight

	AllFeatures = FeatureAdjacency | FeatureArea | FeatureWeight
)

func (f Features) Adjacency() bool { return f&FeatureAdjacency != 0 }
func (f Features) Area() bool      { return f&FeatureArea != 0 }
func (f Features) Weight() bool    { return f&FeatureWeight != 0 }

func (f Features) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	if f.Adjacency() {
		names = append(names, "adjacency")
	}
	if f.Area() {
		names = append(names, "area")
	}
	if f.Weight() {
		names = append(names, "weight")
	}
	return strings.Join(names, "|")
}

// Options selects the data a Topology is built from.
type Options struct {
	DrawVariant int
	// Position must have at least 3 components per vertex.
	Position shapes.AttribVariant
	// Weight is summed over triangle vertices when FeatureWeight is set.
	// A missing weight attribute means a weight of 1 per vertex.
	Weight   shapes.AttribVariant
	Features Features
}

// DefaultOptions returns options computing all features over draw
// variant 0 with the first position and weight attributes.
func DefaultOptions() Options {
	return Options{
		Position: shapes.Position.Variant(0),
		Weight:   shapes.Weight.Variant(0),
		Features: AllFeatures,
	}
}
