// Package scene builds a small synthetic town for exercising the sensor
// without a running simulator: a hero vehicle, traffic, a signalled
// intersection, boundary splines, a crosswalk and a stencil.
package scene

import (
	"strings"

	"github.com/cosmosviz/sensor/internal/sensor"
	"github.com/cosmosviz/sensor/pkg/core"
)

// Demo is an in-memory scene implementing the world queries.
type Demo struct {
	actors     []*core.Actor
	components []*core.MeshComponent
	lights     []core.TrafficLight
	splines    []*core.BoundarySpline
	roadMap    *demoRoadMap

	// The road map only "comes up" after a few ticks, mirroring how the
	// game mode lags actor spawning.
	roadMapReadyAt uint64
	tick           uint64
}

var _ sensor.World = (*Demo)(nil)

// NewDemo builds the synthetic town. The road map becomes available after
// roadMapReadyAt calls to Advance.
func NewDemo(roadMapReadyAt uint64) *Demo {
	d := &Demo{roadMapReadyAt: roadMapReadyAt}
	d.build()
	return d
}

// Advance moves the demo scene one tick: vehicles creep forward and the
// road map comes up at its configured tick.
func (d *Demo) Advance() {
	d.tick++
	for _, c := range d.components {
		if c.Tag == core.TagCar || c.Tag == core.TagTruck {
			c.Location.X += 50 // half a meter per tick
			if c.Owner != nil {
				c.Owner.Transform.Location.X += 50
			}
		}
	}
}

// Actors implements the world query.
func (d *Demo) Actors() []*core.Actor { return d.actors }

// MeshComponents implements the world query.
func (d *Demo) MeshComponents() []*core.MeshComponent { return d.components }

// TrafficLights implements the world query.
func (d *Demo) TrafficLights() []core.TrafficLight { return d.lights }

// BoundarySplines implements the world query.
func (d *Demo) BoundarySplines() []*core.BoundarySpline { return d.splines }

// RoadMap implements the world query. Nil until the game mode is up.
func (d *Demo) RoadMap() sensor.RoadMap {
	if d.tick < d.roadMapReadyAt {
		return nil
	}
	return d.roadMap
}

func (d *Demo) build() {
	hero := &core.Actor{
		ID:          1,
		Description: "vehicle.lincoln.mkz",
		Attributes:  map[string]string{"role_name": "hero"},
		Transform: core.Transform{
			Location: core.Vector3{X: 0, Y: 0, Z: 40},
			Rotation: core.QuatIdentity(),
		},
		BoundsOrigin: core.Vector3{Z: 75},
		BoundsExtent: core.Vector3{X: 245, Y: 105, Z: 75},
	}
	d.actors = append(d.actors, hero)

	// Traffic: two cars, a truck and a pedestrian ahead of the hero.
	d.addVehicle(2, "vehicle.audi.tt", core.TagCar, core.Vector3{X: 1200, Y: -350, Z: 40},
		core.Vector3{X: 210, Y: 95, Z: 70})
	d.addVehicle(3, "vehicle.nissan.patrol", core.TagCar, core.Vector3{X: 2400, Y: 350, Z: 40},
		core.Vector3{X: 230, Y: 100, Z: 90})
	d.addVehicle(4, "vehicle.carlamotors.firetruck", core.TagTruck, core.Vector3{X: 3600, Y: -350, Z: 40},
		core.Vector3{X: 420, Y: 130, Z: 170})

	walker := &core.Actor{
		ID:          5,
		Description: "walker.pedestrian.0001",
		Transform: core.Transform{
			Location: core.Vector3{X: 1800, Y: 700, Z: 95},
			Rotation: core.QuatIdentity(),
		},
		BoundsOrigin: core.Vector3{Z: 95},
		BoundsExtent: core.Vector3{X: 35, Y: 35, Z: 95},
	}
	d.actors = append(d.actors, walker)
	d.components = append(d.components, &core.MeshComponent{
		Name:     "walker.pedestrian.0001",
		Kind:     core.MeshSkinned,
		Visible:  true,
		Location: walker.Transform.Location,
		Owner:    walker,
		Tag:      core.TagPedestrians,
	})

	// A pole with a traffic light at the first intersection.
	poleLoc := core.Vector3{X: 3000, Y: 620, Z: 0}
	pole := &core.Actor{
		ID:          6,
		Description: "static.prop.pole",
		Transform:   core.Transform{Location: poleLoc, Rotation: core.QuatIdentity()},
	}
	d.actors = append(d.actors, pole)
	d.components = append(d.components, &core.MeshComponent{
		Name:     "SM_pole_mesh_01",
		Kind:     core.MeshStatic,
		Visible:  true,
		Location: poleLoc,
		Owner:    pole,
		Tag:      core.TagPoles,
		AssetBounds: core.BoundingBox{
			Origin: core.Vector3{Z: 350},
			Extent: core.Vector3{X: 12, Y: 12, Z: 350},
		},
		HasAsset: true,
	})

	lightActor := &core.Actor{
		ID:          7,
		Description: "traffic.traffic_light",
		Transform:   core.Transform{Location: poleLoc, Rotation: core.QuatIdentity()},
	}
	d.actors = append(d.actors, lightActor)
	d.lights = append(d.lights, core.TrafficLight{
		Actor: lightActor,
		StopBox: &core.StopBox{
			Location: core.Vector3{X: 3000, Y: 0, Z: 10},
			Extent:   core.Vector3{X: 80, Y: 600, Z: 50},
			Forward:  core.Vector3{X: 1},
			Right:    core.Vector3{Y: 1},
		},
	})

	// Straight two-lane road: driving-lane boundaries plus sidewalk edges.
	d.splines = []*core.BoundarySpline{
		boundary(1, -1, core.BoundaryDriving, core.OrientationLeft, 0),
		boundary(1, -1, core.BoundaryDriving, core.OrientationRight, -700),
		boundary(1, 1, core.BoundaryDriving, core.OrientationRight, 700),
		boundary(1, -2, core.BoundarySidewalk, core.OrientationRight, -900),
		boundary(1, 2, core.BoundarySidewalk, core.OrientationRight, 900),
	}

	// Crosswalk zone in front of the stop line, closed loop.
	crosswalk := []core.Vector3{
		{X: 3200, Y: -800, Z: 5},
		{X: 3500, Y: -800, Z: 5},
		{X: 3500, Y: 800, Z: 5},
		{X: 3200, Y: 800, Z: 5},
		{X: 3200, Y: -800, Z: 5},
	}

	d.roadMap = &demoRoadMap{
		crosswalks: crosswalk,
		stencils: []core.Stencil{
			{
				Transform: core.Transform{
					Location: core.Vector3{X: 2000, Y: -350, Z: 2},
					Rotation: core.QuatIdentity(),
				},
				Width:  1.2,
				Length: 3.5,
			},
		},
		ref: core.GeoReference{Latitude: 48.9987, Longitude: 8.0027},
	}
}

func (d *Demo) addVehicle(id core.ActorID, blueprint string, tag core.SemanticTag, loc, extent core.Vector3) {
	a := &core.Actor{
		ID:           id,
		Description:  blueprint,
		Transform:    core.Transform{Location: loc, Rotation: core.QuatIdentity()},
		BoundsOrigin: core.Vector3{Z: extent.Z},
		BoundsExtent: extent,
	}
	d.actors = append(d.actors, a)
	d.components = append(d.components, &core.MeshComponent{
		// Static mesh components need "mesh" in the name to be picked up.
		Name:     "SM_" + strings.ReplaceAll(blueprint, ".", "_") + "_mesh",
		Kind:     core.MeshStatic,
		Visible:  true,
		Location: loc,
		Owner:    a,
		Tag:      tag,
		AssetBounds: core.BoundingBox{
			Origin: core.Vector3{Z: extent.Z},
			Extent: extent,
		},
		HasAsset: true,
	})
}

// boundary builds a straight 100 m spline at the given lateral offset.
func boundary(road, lane int32, kind core.BoundaryKind, o core.Orientation, offsetY float32) *core.BoundarySpline {
	points := make([]core.Vector3, 0, 11)
	for i := 0; i <= 10; i++ {
		points = append(points, core.Vector3{X: float32(i) * 1000, Y: offsetY, Z: 2})
	}
	return &core.BoundarySpline{
		RoadID:      road,
		LaneID:      lane,
		Kind:        kind,
		Orientation: o,
		Points:      points,
	}
}

// demoRoadMap implements the road-network queries for the synthetic town.
type demoRoadMap struct {
	crosswalks []core.Vector3
	stencils   []core.Stencil
	ref        core.GeoReference
}

func (m *demoRoadMap) CrosswalkZones() []core.Vector3  { return m.crosswalks }
func (m *demoRoadMap) Stencils() []core.Stencil        { return m.stencils }
func (m *demoRoadMap) GeoReference() core.GeoReference { return m.ref }
