package sensor

import (
	"strings"

	"github.com/cosmosviz/sensor/pkg/core"
)

// World is the scene query capability: the per-tick view of the host scene
// graph the sensor annotates. All methods are read-only snapshots.
type World interface {
	// Actors enumerates the actor registry.
	Actors() []*core.Actor
	// MeshComponents enumerates all mesh-bearing scene components.
	MeshComponents() []*core.MeshComponent
	// TrafficLights enumerates traffic-light actors.
	TrafficLights() []core.TrafficLight
	// BoundarySplines enumerates road-boundary spline actors.
	BoundarySplines() []*core.BoundarySpline
	// RoadMap returns the road-network capability, or nil while the game
	// mode has not come up yet.
	RoadMap() RoadMap
}

// RoadMap is the road-network capability consumed for one-time static
// annotations.
type RoadMap interface {
	// CrosswalkZones returns the flat boundary point sequence of all
	// crosswalk zones, with loop-closure repetition.
	CrosswalkZones() []core.Vector3
	// Stencils returns all road-surface stencil records.
	Stencils() []core.Stencil
	// GeoReference anchors the map to geographic coordinates.
	GeoReference() core.GeoReference
}

// heroActor finds the role-tagged player actor in the registry, or nil.
func heroActor(actors []*core.Actor) *core.Actor {
	for _, a := range actors {
		role := a.Attribute("role_name")
		if strings.Contains(role, "hero") || strings.Contains(role, "ego_vehicle") {
			return a
		}
	}
	return nil
}
