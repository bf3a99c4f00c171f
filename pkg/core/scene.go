package core

// ActorID identifies a simulated actor in the host engine's registry.
type ActorID uint32

// Actor is a registry entry for a simulated actor. Attributes carry the
// blueprint variations set at spawn time, including role_name.
type Actor struct {
	ID          ActorID
	Description string // blueprint id, e.g. "vehicle.lincoln.mkz"
	Attributes  map[string]string
	Transform   Transform

	// World bounds as reported by the engine for the whole actor.
	BoundsOrigin Vector3
	BoundsExtent Vector3
}

// Attribute returns the named attribute, or "" when unset.
func (a *Actor) Attribute(name string) string {
	if a == nil || a.Attributes == nil {
		return ""
	}
	return a.Attributes[name]
}

// MeshKind discriminates the mesh capability a component exposes. Resolved
// once per object per frame, never assumed stable across frames.
type MeshKind uint8

const (
	MeshNone MeshKind = iota
	MeshStatic
	MeshSkinned
)

// MeshComponent is a mesh-bearing scene component as observed through the
// scene query capability.
type MeshComponent struct {
	Name     string
	Kind     MeshKind
	Visible  bool
	Location Vector3
	Owner    *Actor
	Tag      SemanticTag

	// Authored bounds of the mesh asset, local to the asset origin. Zero when
	// the component has no mesh asset assigned.
	AssetBounds BoundingBox
	HasAsset    bool
}

// StopBox is the trigger collider of a traffic light, spanning the lanes the
// light controls.
type StopBox struct {
	Location Vector3
	Extent   Vector3 // scaled box extent
	Forward  Vector3 // unit vector along the controlled lane
	Right    Vector3 // unit vector across the controlled lane
}

// TrafficLight is a traffic-light actor. StopBox is nil when the collider is
// not present on the actor.
type TrafficLight struct {
	Actor   *Actor
	StopBox *StopBox
}

// BoundaryKind classifies a road boundary spline by the lane type it bounds.
type BoundaryKind uint8

const (
	BoundaryDriving BoundaryKind = iota
	BoundaryShoulder
	BoundarySidewalk
	BoundaryMedian
	BoundaryOther
)

// String returns the kind name for logs.
func (k BoundaryKind) String() string {
	switch k {
	case BoundaryDriving:
		return "driving"
	case BoundaryShoulder:
		return "shoulder"
	case BoundarySidewalk:
		return "sidewalk"
	case BoundaryMedian:
		return "median"
	default:
		return "other"
	}
}

// Orientation is the side of the lane a boundary spline runs along.
type Orientation uint8

const (
	OrientationLeft Orientation = iota
	OrientationRight
)

// BoundarySpline is a piecewise-linear lane or road-edge boundary owned by the
// host road-network representation. Read-only to this module.
type BoundarySpline struct {
	RoadID      int32
	LaneID      int32
	Kind        BoundaryKind
	Orientation Orientation
	IsJunction  bool
	Points      []Vector3 // ordered world-space control points
}

// Stencil is a flat road-surface marking (arrow, text) from the host map.
// Width and Length are in map units (meters).
type Stencil struct {
	Transform Transform
	Width     float32
	Length    float32
}

// GeoReference anchors the local map frame to geographic coordinates, as
// declared by the map's OpenDRIVE header.
type GeoReference struct {
	Latitude  float64
	Longitude float64
}
