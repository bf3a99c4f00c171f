package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/internal/annotate"
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

func TestDemoHasHero(t *testing.T) {
	d := NewDemo(0)

	var hero *core.Actor
	for _, a := range d.Actors() {
		if a.Attribute("role_name") == "hero" {
			hero = a
		}
	}
	require.NotNil(t, hero)
	assert.Equal(t, "vehicle.lincoln.mkz", hero.Description)
}

func TestDemoRoadMapComesUpLate(t *testing.T) {
	d := NewDemo(3)

	assert.Nil(t, d.RoadMap())
	d.Advance()
	d.Advance()
	assert.Nil(t, d.RoadMap())
	d.Advance()

	rm := d.RoadMap()
	require.NotNil(t, rm)
	assert.NotEmpty(t, rm.CrosswalkZones())
	assert.NotEmpty(t, rm.Stencils())
	assert.InDelta(t, 8.0027, rm.GeoReference().Longitude, 1e-6)
}

func TestDemoVehiclesMove(t *testing.T) {
	d := NewDemo(0)

	var car *core.MeshComponent
	for _, c := range d.MeshComponents() {
		if c.Tag == core.TagCar {
			car = c
			break
		}
	}
	require.NotNil(t, car)

	before := car.Location.X
	d.Advance()
	assert.Greater(t, car.Location.X, before)
}

func TestDemoSceneContents(t *testing.T) {
	d := NewDemo(0)

	assert.Len(t, d.TrafficLights(), 1)
	require.NotNil(t, d.TrafficLights()[0].StopBox)
	assert.Len(t, d.BoundarySplines(), 5)

	tags := map[core.SemanticTag]int{}
	for _, c := range d.MeshComponents() {
		tags[c.Tag]++
	}
	assert.Equal(t, 2, tags[core.TagCar])
	assert.Equal(t, 1, tags[core.TagTruck])
	assert.Equal(t, 1, tags[core.TagPedestrians])
	assert.Equal(t, 1, tags[core.TagPoles])
}

// Every non-hero demo component must survive the object annotation pass,
// including the static-mesh name filter.
func TestDemoComponentsAreAnnotatable(t *testing.T) {
	d := NewDemo(0)

	var hero *core.Actor
	for _, a := range d.Actors() {
		if a.Attribute("role_name") == "hero" {
			hero = a
		}
	}
	require.NotNil(t, hero)

	draw := render.NewBatcher(false)
	annot := annotate.New(config.DefaultRenderConfig(), draw, nil)

	// Two cars, the truck, the walker and the pole; the hero is excluded.
	assert.Equal(t, 5, annot.AnnotateObjects(d.MeshComponents(), hero, nil))
	assert.NotEmpty(t, draw.Dynamic().Lines())
}
