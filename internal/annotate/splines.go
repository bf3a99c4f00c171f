package annotate

import (
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

// AnnotateSplines draws the renderable lane and road boundary splines as
// persistent polylines. Splines are grouped by road id; visibility is
// decided per spline against its lane neighbors via the adjacency table.
// When several neighbors match the looked-up lane id the last one decides,
// matching the reference behavior. Returns the number of splines drawn.
func (a *Annotator) AnnotateSplines(splines []*core.BoundarySpline) int {
	byRoad := make(map[int32][]*core.BoundarySpline)
	for _, s := range splines {
		byRoad[s.RoadID] = append(byRoad[s.RoadID], s)
	}

	drawn := 0
	for _, group := range byRoad {
		for _, s := range group {
			switch s.Kind {
			case core.BoundaryDriving, core.BoundaryShoulder, core.BoundarySidewalk, core.BoundaryMedian:
			default:
				continue
			}

			neighborLane := NeighborLaneID(s)
			shouldRender := false
			for _, n := range group {
				if n.LaneID != neighborLane {
					continue
				}
				shouldRender = ShouldRender(s, n)
			}

			if shouldRender && a.drawSpline(s) {
				drawn++
			}
		}
	}
	return drawn
}

func (a *Annotator) drawSpline(s *core.BoundarySpline) bool {
	if len(s.Points) < 2 {
		return false
	}

	// Lowered below the road surface offset to avoid z-fighting.
	offset := a.cfg.RoadLineThickness
	lineColor := a.cfg.LaneLinesColor
	if s.Kind != core.BoundaryDriving {
		lineColor = a.cfg.RoadBoundariesColor
	}

	for i := 0; i < len(s.Points)-1; i++ {
		p0 := s.Points[i]
		p1 := s.Points[i+1]
		p0.Z -= offset
		p1.Z -= offset
		a.draw.DrawLine(p0, p1, lineColor, true, render.DepthWorld, a.cfg.RoadLineThickness)
	}
	return true
}
