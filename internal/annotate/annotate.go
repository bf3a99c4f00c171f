// Package annotate implements the per-frame annotation pipeline of the
// cosmos control visualization: it classifies scene objects by semantic tag,
// derives debug geometry for them and emits it into the sensor's line
// batches.
package annotate

import (
	"log/slog"

	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/render"
)

// Tuned heuristics. These are configuration-equivalent literals, not
// derived values.
const (
	// GroundLevelCutoff skips components above this height; assumed to be off
	// the road (parkings, ceilings).
	GroundLevelCutoff float32 = 10000

	// PoleGroundSnapMax is the maximum base height at which a pole capsule is
	// extended down to the ground.
	PoleGroundSnapMax float32 = 250

	// PoleCapsuleRadius is the fixed radius of pole capsules.
	PoleCapsuleRadius float32 = 0.1

	// StopLineLateralOffset shifts stop lines from the light's stop box to
	// the controlled lane.
	StopLineLateralOffset float32 = 710

	// StopLineVerticalBuffer is added below half the stop-line thickness to
	// avoid z-fighting with the road mesh.
	StopLineVerticalBuffer float32 = 2
)

// Annotator draws semantic annotations into a batcher using the loaded
// render configuration.
type Annotator struct {
	cfg  config.RenderConfig
	draw *render.Batcher
	log  *slog.Logger
}

// New returns an annotator. The logger may be nil for a silent annotator.
func New(cfg config.RenderConfig, draw *render.Batcher, log *slog.Logger) *Annotator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Annotator{cfg: cfg, draw: draw, log: log}
}
