package annotate

import (
	"strings"

	"github.com/chewxy/math32"

	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

// AnnotateObjects draws per-tick annotations for every visible mesh-bearing
// object: solid boxes for traffic lights and signs, wireframe boxes for
// vehicles and pedestrians, capsules for poles. Components owned by the hero
// actor, ignored vehicles and off-road geometry are skipped. Returns the
// number of objects annotated.
func (a *Annotator) AnnotateObjects(meshes []*core.MeshComponent, hero *core.Actor, ignored map[core.ActorID]bool) int {
	drawn := 0
	for _, mc := range meshes {
		if !mc.Visible {
			continue
		}
		if mc.Owner == nil {
			continue
		}
		if hero != nil && mc.Owner == hero {
			continue
		}
		if ignored != nil && strings.Contains(mc.Owner.Description, "vehicle") && ignored[mc.Owner.ID] {
			continue
		}
		if mc.Location.Z > GroundLevelCutoff {
			continue
		}

		bounds, ok := ObjectBounds(mc)
		if !ok {
			continue
		}

		color := ColorForTag(a.cfg, mc.Tag)

		switch mc.Tag {
		case core.TagTrafficLight, core.TagTrafficSigns:
			a.draw.DrawSolidBox(mc.Location, bounds.Extent, mc.Owner.Transform.Rotation, color, false, render.DepthWorld)

		case core.TagCar, core.TagBicycle, core.TagBus, core.TagMotorcycle,
			core.TagPedestrians, core.TagTrain, core.TagTruck:
			a.draw.DrawBox(bounds.Origin, bounds.Extent, mc.Owner.Transform.Rotation, color, false, render.DepthWorld, a.cfg.VehicleBoxThickness)

		case core.TagPoles:
			halfHeight := math32.Max(bounds.Extent.Z, mc.Owner.BoundsExtent.Z)
			distanceToRoad := mc.Location.Z
			groundOffset := distanceToRoad
			if distanceToRoad > PoleGroundSnapMax {
				groundOffset = 0
			}
			center := mc.Location.Add(core.Vector3{Z: halfHeight})
			a.draw.DrawCapsule(center, halfHeight+groundOffset, PoleCapsuleRadius, core.QuatIdentity(), color, false, render.DepthWorld, a.cfg.PoleThickness)

		default:
			continue
		}
		drawn++
	}
	return drawn
}
