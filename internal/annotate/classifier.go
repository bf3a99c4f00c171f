package annotate

import (
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/pkg/core"
)

// ColorForTag maps a semantic tag to its configured display color. Total over
// the tag enumeration; anything unrecognized renders white.
func ColorForTag(cfg config.RenderConfig, tag core.SemanticTag) core.Color {
	switch tag {
	case core.TagTrafficLight:
		return cfg.TrafficLightsColor
	case core.TagTrafficSigns:
		return cfg.TrafficSignsColor
	case core.TagPoles:
		return cfg.PolesColor
	case core.TagCar, core.TagBus, core.TagMotorcycle, core.TagTrain:
		return cfg.CarsColor
	case core.TagTruck:
		return cfg.TrucksColor
	case core.TagBicycle:
		return cfg.CyclistsColor
	case core.TagPedestrians:
		return cfg.PedestriansColor
	default:
		return core.White
	}
}
