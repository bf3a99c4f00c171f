package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/pkg/core"
)

func TestAnnotateSplines_DrawsRenderableSpline(t *testing.T) {
	a, draw := newTestAnnotator()

	s := spline(core.BoundaryDriving, core.OrientationLeft, 1, false)
	s.Points = []core.Vector3{{X: 0}, {X: 100}, {X: 200}}
	neighbor := spline(core.BoundaryDriving, core.OrientationLeft, -1, false)
	// Lane -1 is the looked-up neighbor for a left lane 1 spline, but the
	// negative product suppresses rendering.
	drawn := a.AnnotateSplines([]*core.BoundarySpline{s, neighbor})
	assert.Equal(t, 0, drawn)
	assert.Equal(t, 0, draw.Persistent().Len())
}

func TestAnnotateSplines_MedianSegmentsAndColor(t *testing.T) {
	a, draw := newTestAnnotator()

	s := spline(core.BoundaryMedian, core.OrientationLeft, 1, false)
	s.Points = []core.Vector3{{X: 0, Z: 10}, {X: 100, Z: 10}, {X: 200, Z: 10}}
	neighbor := spline(core.BoundaryDriving, core.OrientationLeft, -1, false)

	drawn := a.AnnotateSplines([]*core.BoundarySpline{s, neighbor})
	require.Equal(t, 1, drawn)

	lines := draw.Persistent().Lines()
	require.Len(t, lines, 2)
	// Non-driving boundaries use the road-boundaries color; segments are
	// lowered by the road-line thickness.
	assert.Equal(t, a.cfg.RoadBoundariesColor, lines[0].Color)
	assert.Equal(t, float32(10-8), lines[0].Start.Z)
	assert.Equal(t, float32(8), lines[0].Thickness)
}

func TestAnnotateSplines_DrivingUsesLaneLineColor(t *testing.T) {
	a, draw := newTestAnnotator()

	s := spline(core.BoundaryDriving, core.OrientationLeft, 2, false)
	s.Points = []core.Vector3{{X: 0}, {X: 100}}
	neighbor := spline(core.BoundaryDriving, core.OrientationLeft, 1, false)

	drawn := a.AnnotateSplines([]*core.BoundarySpline{s, neighbor})
	require.Equal(t, 1, drawn)
	assert.Equal(t, a.cfg.LaneLinesColor, draw.Persistent().Lines()[0].Color)
}

// Several splines can share the looked-up neighbor lane id; the last one
// examined decides, matching the reference visualization.
func TestAnnotateSplines_LastNeighborWins(t *testing.T) {
	newSidewalk := func() *core.BoundarySpline {
		s := spline(core.BoundarySidewalk, core.OrientationLeft, 2, false)
		s.Points = []core.Vector3{{X: 0}, {X: 100}}
		return s
	}
	allowing := spline(core.BoundaryShoulder, core.OrientationLeft, 1, false)
	suppressing := spline(core.BoundarySidewalk, core.OrientationLeft, 1, false)

	t.Run("suppressing neighbor last", func(t *testing.T) {
		a, draw := newTestAnnotator()
		drawn := a.AnnotateSplines([]*core.BoundarySpline{newSidewalk(), allowing, suppressing})
		assert.Equal(t, 0, drawn)
		assert.Equal(t, 0, draw.Persistent().Len())
	})

	t.Run("allowing neighbor last", func(t *testing.T) {
		a, draw := newTestAnnotator()
		drawn := a.AnnotateSplines([]*core.BoundarySpline{newSidewalk(), suppressing, allowing})
		assert.Equal(t, 1, drawn)
		assert.Equal(t, 1, draw.Persistent().Len())
	})

	t.Run("no matching neighbor", func(t *testing.T) {
		a, draw := newTestAnnotator()
		lonely := spline(core.BoundaryDriving, core.OrientationLeft, 5, false)
		lonely.Points = []core.Vector3{{X: 0}, {X: 100}}
		drawn := a.AnnotateSplines([]*core.BoundarySpline{lonely})
		assert.Equal(t, 0, drawn)
		assert.Equal(t, 0, draw.Persistent().Len())
	})
}

func TestAnnotateSplines_SplinesOnDifferentRoadsDoNotInteract(t *testing.T) {
	a, draw := newTestAnnotator()

	s := spline(core.BoundaryDriving, core.OrientationLeft, 2, false)
	s.Points = []core.Vector3{{X: 0}, {X: 100}}
	neighbor := spline(core.BoundaryDriving, core.OrientationLeft, 1, false)
	neighbor.RoadID = 99 // different road, not a neighbor

	drawn := a.AnnotateSplines([]*core.BoundarySpline{s, neighbor})
	assert.Equal(t, 0, drawn)
	assert.Equal(t, 0, draw.Persistent().Len())
}

func TestAnnotateSplines_ShortSplineSkipped(t *testing.T) {
	a, draw := newTestAnnotator()

	s := spline(core.BoundaryMedian, core.OrientationLeft, 1, false)
	s.Points = []core.Vector3{{X: 0}} // single point, nothing to draw
	neighbor := spline(core.BoundaryDriving, core.OrientationLeft, -1, false)

	a.AnnotateSplines([]*core.BoundarySpline{s, neighbor})
	assert.Equal(t, 0, draw.Persistent().Len())
}
