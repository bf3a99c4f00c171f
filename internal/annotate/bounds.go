package annotate

import (
	"strings"

	"github.com/cosmosviz/sensor/pkg/core"
)

// ObjectBounds derives the world-space bounding box for a mesh component.
// The default is the owning actor's whole-actor bounds; a mesh asset refines
// it per kind. Returns false when the component must be skipped.
//
// The static-mesh name filter ("mesh" included, "road" excluded) is a
// deliberate fragile naming convention the simulator's scene content
// follows.
func ObjectBounds(mc *core.MeshComponent) (core.BoundingBox, bool) {
	if mc.Kind == core.MeshNone {
		return core.BoundingBox{}, false
	}

	bounds := core.BoundingBox{
		Origin: mc.Owner.BoundsOrigin,
		Extent: mc.Owner.BoundsExtent,
	}

	switch mc.Kind {
	case core.MeshStatic:
		if mc.HasAsset {
			if !strings.Contains(mc.Name, "mesh") || strings.Contains(mc.Name, "road") {
				return core.BoundingBox{}, false
			}
			bounds.Extent = mc.AssetBounds.Extent
		}
	case core.MeshSkinned:
		if mc.HasAsset {
			// Approximate a ground-anchored box for an upright figure.
			bounds.Extent = mc.AssetBounds.Extent
			bounds.Origin = mc.Location
			bounds.Origin.Z += bounds.Extent.Z
		}
	}

	return bounds, true
}
