package core

// SemanticTag is the semantic category attached to scene geometry by the host
// engine's tagger. Derived per frame from engine metadata, never stored.
type SemanticTag uint8

const (
	TagNone SemanticTag = iota
	TagRoads
	TagTrafficLight
	TagTrafficSigns
	TagPoles
	TagCar
	TagBus
	TagMotorcycle
	TagTrain
	TagTruck
	TagBicycle
	TagPedestrians
	TagOther
)

// String returns the tag name for logs.
func (t SemanticTag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagRoads:
		return "roads"
	case TagTrafficLight:
		return "traffic_light"
	case TagTrafficSigns:
		return "traffic_signs"
	case TagPoles:
		return "poles"
	case TagCar:
		return "car"
	case TagBus:
		return "bus"
	case TagMotorcycle:
		return "motorcycle"
	case TagTrain:
		return "train"
	case TagTruck:
		return "truck"
	case TagBicycle:
		return "bicycle"
	case TagPedestrians:
		return "pedestrians"
	default:
		return "other"
	}
}
