package annotate

import (
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/render"
)

func newTestAnnotator() (*Annotator, *render.Batcher) {
	draw := render.NewBatcher(false)
	return New(config.DefaultRenderConfig(), draw, nil), draw
}
