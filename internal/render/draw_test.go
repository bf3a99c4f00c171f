package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/pkg/core"
)

func TestDrawLine_RoutesToBatches(t *testing.T) {
	d := NewBatcher(false)

	d.DrawLine(core.Vector3{}, core.Vector3{X: 1}, core.White, false, DepthWorld, 2)
	d.DrawLine(core.Vector3{}, core.Vector3{X: 2}, core.White, true, DepthWorld, 2)

	assert.Equal(t, 1, d.Dynamic().Len())
	assert.Equal(t, 1, d.Persistent().Len())

	// Flushing the dynamic batch must not touch the persistent one.
	d.FlushDynamic()
	assert.Equal(t, 0, d.Dynamic().Len())
	assert.Equal(t, 1, d.Persistent().Len())
}

func TestDrawBox_TwelveEdges(t *testing.T) {
	d := NewBatcher(false)

	d.DrawBox(core.Vector3{Z: 10}, core.Vector3{X: 2, Y: 1, Z: 1}, core.QuatIdentity(), core.RGB(255, 0, 0), false, DepthWorld, 5)

	lines := d.Dynamic().Lines()
	require.Len(t, lines, 12)
	for _, l := range lines {
		assert.Equal(t, float32(5), l.Thickness)
		// Every corner of an axis-aligned box sits at center ± extent.
		for _, p := range []core.Vector3{l.Start, l.End} {
			assert.InDelta(t, 2, absf(p.X), 1e-4)
			assert.InDelta(t, 1, absf(p.Y), 1e-4)
			assert.InDelta(t, 1, absf(p.Z-10), 1e-4)
		}
	}
}

func TestDrawSolidBox_MeshShape(t *testing.T) {
	d := NewBatcher(false)

	d.DrawSolidBox(core.Vector3{}, core.Vector3{X: 1, Y: 1, Z: 1}, core.QuatIdentity(), core.White, true, DepthWorld)

	meshes := d.Persistent().Meshes()
	require.Len(t, meshes, 1)
	assert.Len(t, meshes[0].Vertices, 8)
	assert.Len(t, meshes[0].Indices, 36)
}

func TestDrawCapsule_LineCount(t *testing.T) {
	d := NewBatcher(false)

	d.DrawCapsule(core.Vector3{}, 300, 0.1, core.QuatIdentity(), core.White, false, DepthWorld, 8)

	// Two full circles (16 sides each), four half circles (8 each) and four
	// connecting verticals.
	assert.Len(t, d.Dynamic().Lines(), 2*16+4*8+4)
}

func TestHeadless_DropsEverything(t *testing.T) {
	d := NewBatcher(true)

	d.DrawLine(core.Vector3{}, core.Vector3{X: 1}, core.White, true, DepthWorld, 1)
	d.DrawBox(core.Vector3{}, core.Vector3{X: 1, Y: 1, Z: 1}, core.QuatIdentity(), core.White, false, DepthWorld, 1)
	d.DrawSolidBox(core.Vector3{}, core.Vector3{X: 1, Y: 1, Z: 1}, core.QuatIdentity(), core.White, true, DepthWorld)
	d.DrawCapsule(core.Vector3{}, 10, 0.1, core.QuatIdentity(), core.White, false, DepthWorld, 1)

	assert.Equal(t, 0, d.Dynamic().Len())
	assert.Equal(t, 0, d.Persistent().Len())
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
