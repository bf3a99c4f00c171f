package annotate

import (
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

// AnnotateStopLines draws one persistent wait line per traffic light,
// perpendicular to the light's forward axis at its stop-box collider. Lights
// without a collider are skipped. Returns the number of lines drawn.
func (a *Annotator) AnnotateStopLines(lights []core.TrafficLight) int {
	drawn := 0
	for _, light := range lights {
		sb := light.StopBox
		if sb == nil {
			a.log.Debug("traffic light has no stop box collider, skipping stop line")
			continue
		}

		// Half thickness plus small buffer
		stopLineOffset := a.cfg.StopLineThickness*0.5 + StopLineVerticalBuffer
		basePos := core.Vector3{X: sb.Location.X, Y: sb.Location.Y, Z: -stopLineOffset}

		lateral := sb.Right.Scale(-StopLineLateralOffset)
		lineStart := basePos.Add(sb.Forward.Scale(-sb.Extent.X)).Add(lateral)
		lineEnd := basePos.Add(sb.Forward.Scale(sb.Extent.X)).Add(lateral)

		a.draw.DrawLine(lineStart, lineEnd, a.cfg.WaitLinesColor, true, render.DepthWorld, a.cfg.StopLineThickness)
		drawn++
	}
	return drawn
}
