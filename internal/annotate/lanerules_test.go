package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cosmosviz/sensor/pkg/core"
)

func spline(kind core.BoundaryKind, orientation core.Orientation, laneID int32, junction bool) *core.BoundarySpline {
	return &core.BoundarySpline{
		RoadID:      1,
		LaneID:      laneID,
		Kind:        kind,
		Orientation: orientation,
		IsJunction:  junction,
	}
}

func TestNeighborLaneID(t *testing.T) {
	tests := []struct {
		name        string
		orientation core.Orientation
		laneID      int32
		want        int32
	}{
		{"left steps inward", core.OrientationLeft, 3, 2},
		{"left crosses centerline", core.OrientationLeft, 1, -1},
		{"left negative lane", core.OrientationLeft, -2, -3},
		{"right steps outward", core.OrientationRight, -3, -2},
		{"right crosses centerline", core.OrientationRight, -1, 1},
		{"right positive lane", core.OrientationRight, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := spline(core.BoundaryDriving, tt.orientation, tt.laneID, false)
			assert.Equal(t, tt.want, NeighborLaneID(s))
		})
	}
}

func TestShouldRender(t *testing.T) {
	tests := []struct {
		name     string
		self     *core.BoundarySpline
		neighbor *core.BoundarySpline
		want     bool
	}{
		{
			// Divider between same-direction lanes on the positive side.
			name:     "left driving next to same direction driving",
			self:     spline(core.BoundaryDriving, core.OrientationLeft, 1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, false),
			want:     true,
		},
		{
			// Crossing the centerline: lane id product is negative.
			name:     "left driving next to opposing driving",
			self:     spline(core.BoundaryDriving, core.OrientationLeft, 1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationRight, -1, false),
			want:     false,
		},
		{
			name:     "left driving with negative lane id",
			self:     spline(core.BoundaryDriving, core.OrientationLeft, -2, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, -3, false),
			want:     false,
		},
		{
			name:     "left median next to driving",
			self:     spline(core.BoundaryMedian, core.OrientationLeft, 1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, false),
			want:     true,
		},
		{
			name:     "left shoulder never renders",
			self:     spline(core.BoundaryShoulder, core.OrientationLeft, 1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, false),
			want:     false,
		},
		{
			name:     "left sidewalk next to shoulder on positive side",
			self:     spline(core.BoundarySidewalk, core.OrientationLeft, 2, false),
			neighbor: spline(core.BoundaryShoulder, core.OrientationLeft, 1, false),
			want:     true,
		},
		{
			name:     "right driving on negative side",
			self:     spline(core.BoundaryDriving, core.OrientationRight, -1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationRight, -2, false),
			want:     true,
		},
		{
			name:     "right driving on positive side",
			self:     spline(core.BoundaryDriving, core.OrientationRight, 2, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationRight, 3, false),
			want:     false,
		},
		{
			name:     "right median next to shoulder",
			self:     spline(core.BoundaryMedian, core.OrientationRight, -1, false),
			neighbor: spline(core.BoundaryShoulder, core.OrientationRight, -2, false),
			want:     true,
		},
		{
			name:     "junction driving suppressed",
			self:     spline(core.BoundaryDriving, core.OrientationLeft, 1, true),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, true),
			want:     false,
		},
		{
			name:     "junction sidewalk next to driving",
			self:     spline(core.BoundarySidewalk, core.OrientationLeft, 1, true),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, true),
			want:     true,
		},
		{
			name:     "junction median next to shoulder",
			self:     spline(core.BoundaryMedian, core.OrientationRight, -1, true),
			neighbor: spline(core.BoundaryShoulder, core.OrientationRight, -2, true),
			want:     true,
		},
		{
			name:     "junction sidewalk next to median",
			self:     spline(core.BoundarySidewalk, core.OrientationLeft, 1, true),
			neighbor: spline(core.BoundaryMedian, core.OrientationLeft, 2, true),
			want:     false,
		},
		{
			name:     "sidewalk next to sidewalk never renders",
			self:     spline(core.BoundarySidewalk, core.OrientationLeft, 2, false),
			neighbor: spline(core.BoundarySidewalk, core.OrientationLeft, 1, false),
			want:     false,
		},
		{
			name:     "other kind never renders",
			self:     spline(core.BoundaryOther, core.OrientationLeft, 1, false),
			neighbor: spline(core.BoundaryDriving, core.OrientationLeft, 2, false),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldRender(tt.self, tt.neighbor))
		})
	}
}
