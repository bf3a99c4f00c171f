package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/pkg/core"
)

func TestColorForTag(t *testing.T) {
	cfg := config.DefaultRenderConfig()

	tests := []struct {
		tag  core.SemanticTag
		want core.Color
	}{
		{core.TagTrafficLight, cfg.TrafficLightsColor},
		{core.TagTrafficSigns, cfg.TrafficSignsColor},
		{core.TagPoles, cfg.PolesColor},
		{core.TagCar, cfg.CarsColor},
		{core.TagBus, cfg.CarsColor},
		{core.TagMotorcycle, cfg.CarsColor},
		{core.TagTrain, cfg.CarsColor},
		{core.TagTruck, cfg.TrucksColor},
		{core.TagBicycle, cfg.CyclistsColor},
		{core.TagPedestrians, cfg.PedestriansColor},
		{core.TagNone, core.White},
		{core.TagRoads, core.White},
		{core.TagOther, core.White},
		{core.SemanticTag(200), core.White},
	}

	for _, tt := range tests {
		t.Run(tt.tag.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ColorForTag(cfg, tt.tag))
		})
	}
}
