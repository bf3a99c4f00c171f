package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/pkg/core"
)

func TestAnnotateStopLines(t *testing.T) {
	a, draw := newTestAnnotator()

	light := core.TrafficLight{
		Actor: testActor(),
		StopBox: &core.StopBox{
			Location: core.Vector3{X: 1000, Y: 500, Z: 30},
			Extent:   core.Vector3{X: 200, Y: 50, Z: 50},
			Forward:  core.Vector3{X: 1},
			Right:    core.Vector3{Y: 1},
		},
	}

	drawn := a.AnnotateStopLines([]core.TrafficLight{light})
	require.Equal(t, 1, drawn)

	lines := draw.Persistent().Lines()
	require.Len(t, lines, 1)
	l := lines[0]

	// Dropped by half the stop-line thickness plus the buffer; shifted to
	// the lane by the fixed lateral offset; spanning the stop box length.
	wantZ := -(a.cfg.StopLineThickness*0.5 + StopLineVerticalBuffer)
	assert.Equal(t, core.Vector3{X: 1000 - 200, Y: 500 - StopLineLateralOffset, Z: wantZ}, l.Start)
	assert.Equal(t, core.Vector3{X: 1000 + 200, Y: 500 - StopLineLateralOffset, Z: wantZ}, l.End)
	assert.Equal(t, a.cfg.WaitLinesColor, l.Color)
	assert.Equal(t, a.cfg.StopLineThickness, l.Thickness)
}

func TestAnnotateStopLines_MissingColliderSkipped(t *testing.T) {
	a, draw := newTestAnnotator()

	lights := []core.TrafficLight{
		{Actor: testActor()}, // no stop box
		{
			Actor: testActor(),
			StopBox: &core.StopBox{
				Extent:  core.Vector3{X: 100},
				Forward: core.Vector3{X: 1},
				Right:   core.Vector3{Y: 1},
			},
		},
	}

	drawn := a.AnnotateStopLines(lights)
	assert.Equal(t, 1, drawn)
	assert.Len(t, draw.Persistent().Lines(), 1)
}
