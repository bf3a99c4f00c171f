package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/pkg/core"
)

func TestProjectAnchor(t *testing.T) {
	// Null island projects to the web-mercator origin.
	easting, northing := ProjectAnchor(core.GeoReference{})
	assert.InDelta(t, 0, easting, 1e-6)
	assert.InDelta(t, 0, northing, 1e-6)

	// One degree east is ~111.3 km of easting at the equator.
	easting, northing = ProjectAnchor(core.GeoReference{Longitude: 1})
	assert.InDelta(t, 111319.49, easting, 1)
	assert.InDelta(t, 0, northing, 1e-6)
}

func TestAnchorPoint(t *testing.T) {
	pt, err := AnchorPoint(core.GeoReference{Longitude: 1})
	require.NoError(t, err)

	xy, ok := pt.XY()
	require.True(t, ok)
	assert.InDelta(t, 111319.49, xy.X, 1)
	assert.InDelta(t, 0, xy.Y, 1e-6)
}

func TestLocalToWebMercator(t *testing.T) {
	ref := core.GeoReference{Latitude: 0, Longitude: 0}

	// 100 scene units east, 200 south -> one meter easting, two meters
	// south of the anchor.
	x, y := LocalToWebMercator(ref, core.Vector3{X: 100, Y: 200})
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -2, y, 1e-6)
}

func TestLineStringFromPoints(t *testing.T) {
	_, err := LineStringFromPoints([]core.Vector3{{X: 1}})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	ls, err := LineStringFromPoints([]core.Vector3{{}, {X: 3}, {X: 3, Y: 4}})
	require.NoError(t, err)
	assert.InDelta(t, 7, ls.Length(), 1e-9)
}

func TestNetworkLength(t *testing.T) {
	splines := []*core.BoundarySpline{
		{Points: []core.Vector3{{}, {X: 10}}},
		{Points: []core.Vector3{{}, {Y: 5}}},
		{Points: []core.Vector3{{X: 1}}}, // too short, skipped
	}
	assert.InDelta(t, 15, NetworkLength(splines), 1e-9)
}
