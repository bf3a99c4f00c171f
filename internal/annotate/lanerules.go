package annotate

import "github.com/cosmosviz/sensor/pkg/core"

// splineContext selects which adjacency table applies to a boundary spline.
type splineContext uint8

const (
	ctxJunction splineContext = iota
	ctxLeft
	ctxRight
)

func contextOf(s *core.BoundarySpline) splineContext {
	if s.IsJunction {
		return ctxJunction
	}
	if s.Orientation == core.OrientationLeft {
		return ctxLeft
	}
	return ctxRight
}

// renderRule decides visibility given a spline and its lane neighbor.
type renderRule uint8

const (
	// ruleNever: this boundary is interior to something that should not be
	// outlined here.
	ruleNever renderRule = iota
	// ruleAlways: draw unconditionally.
	ruleAlways
	// ruleSameDirPositive: draw dividers only between same-direction lanes on
	// the positive side of the road (lane id > 0 and lane id product > 0).
	ruleSameDirPositive
	// ruleNegativeLane: draw only on the negative side of the road.
	ruleNegativeLane
)

func (r renderRule) apply(s, neighbor *core.BoundarySpline) bool {
	switch r {
	case ruleAlways:
		return true
	case ruleSameDirPositive:
		return s.LaneID > 0 && s.LaneID*neighbor.LaneID > 0
	case ruleNegativeLane:
		return s.LaneID < 0
	default:
		return false
	}
}

// adjacencyRules is the fixed decision table mapping (context, own boundary
// kind, neighbor boundary kind) to a render rule. Kinds absent from a map
// mean "never".
var adjacencyRules = map[splineContext]map[core.BoundaryKind]map[core.BoundaryKind]renderRule{
	ctxJunction: {
		core.BoundaryDriving: {},
		core.BoundaryShoulder: {},
		core.BoundarySidewalk: {
			core.BoundaryDriving:  ruleAlways,
			core.BoundaryShoulder: ruleAlways,
		},
		core.BoundaryMedian: {
			core.BoundaryDriving:  ruleAlways,
			core.BoundaryShoulder: ruleAlways,
		},
	},
	ctxLeft: {
		core.BoundaryDriving: {
			core.BoundaryDriving: ruleSameDirPositive,
		},
		core.BoundaryShoulder: {},
		core.BoundarySidewalk: {
			core.BoundaryDriving:  ruleSameDirPositive,
			core.BoundaryShoulder: ruleSameDirPositive,
		},
		core.BoundaryMedian: {
			core.BoundaryDriving:  ruleAlways,
			core.BoundaryShoulder: ruleAlways,
		},
	},
	ctxRight: {
		core.BoundaryDriving: {
			core.BoundaryDriving: ruleNegativeLane,
		},
		core.BoundaryShoulder: {},
		core.BoundarySidewalk: {
			core.BoundaryDriving:  ruleNegativeLane,
			core.BoundaryShoulder: ruleNegativeLane,
		},
		core.BoundaryMedian: {
			core.BoundaryDriving:  ruleAlways,
			core.BoundaryShoulder: ruleAlways,
		},
	},
}

// NeighborLaneID returns the lane id of the spline's visibility neighbor:
// the lane one step toward the orientation side, with a two-step correction
// when the step would cross the road centerline (lane ids skip zero).
func NeighborLaneID(s *core.BoundarySpline) int32 {
	if s.Orientation == core.OrientationLeft {
		if s.LaneID == 1 {
			return s.LaneID - 2
		}
		return s.LaneID - 1
	}
	if s.LaneID == -1 {
		return s.LaneID + 2
	}
	return s.LaneID + 1
}

// ShouldRender evaluates the adjacency decision table for a spline against
// one neighbor.
func ShouldRender(s, neighbor *core.BoundarySpline) bool {
	byKind, ok := adjacencyRules[contextOf(s)][s.Kind]
	if !ok {
		return false
	}
	return byKind[neighbor.Kind].apply(s, neighbor)
}
