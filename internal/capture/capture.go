// Package capture renders batched annotation geometry into camera images
// and hands them off to a sink on a dedicated goroutine, so rasterization
// never blocks the simulation tick.
package capture

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

// Frame is a snapshot of the annotation state at one simulation tick.
type Frame struct {
	Tick   uint64
	Time   time.Time
	Pose   core.Transform
	Lines  []render.Line
	Meshes []render.Mesh
}

// Requester accepts frames for asynchronous rendering. Request must not
// block; it reports whether the frame was accepted.
type Requester interface {
	Request(frame Frame) bool
}

// Sink receives rendered frames.
type Sink interface {
	WriteFrame(ctx context.Context, img image.Image, frame Frame) error
}

// Renderer rasterizes a frame through a pinhole camera.
type Renderer struct {
	camera     Camera
	background core.Color
}

// NewRenderer returns a renderer for the given camera. Frames are cleared
// to the background color before drawing.
func NewRenderer(camera Camera, background core.Color) *Renderer {
	return &Renderer{camera: camera, background: background}
}

// Render rasterizes the frame's meshes and lines. Meshes are filled first
// so line annotations stay visible on top.
func (r *Renderer) Render(frame Frame) image.Image {
	dc := gg.NewContext(r.camera.Width, r.camera.Height)
	dc.ClearWithColor(toRGBA(r.background))

	for _, m := range frame.Meshes {
		r.fillMesh(dc, frame.Pose, m)
	}
	for _, l := range frame.Lines {
		r.strokeLine(dc, frame.Pose, l)
	}

	// Batched shapes land in the pixel buffer only on flush; Image alone
	// snapshots whatever has been dispatched so far.
	dc.FlushGPU()
	return dc.Image()
}

func (r *Renderer) fillMesh(dc *gg.Context, pose core.Transform, m render.Mesh) {
	dc.SetColor(toRGBA(m.Color).Color())
	for i := 0; i+2 < len(m.Indices); i += 3 {
		v0 := m.Vertices[m.Indices[i]]
		v1 := m.Vertices[m.Indices[i+1]]
		v2 := m.Vertices[m.Indices[i+2]]

		x0, y0, ok0 := r.camera.Project(pose, v0)
		x1, y1, ok1 := r.camera.Project(pose, v1)
		x2, y2, ok2 := r.camera.Project(pose, v2)
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		dc.MoveTo(x0, y0)
		dc.LineTo(x1, y1)
		dc.LineTo(x2, y2)
		dc.ClosePath()
		dc.Fill()
	}
}

func (r *Renderer) strokeLine(dc *gg.Context, pose core.Transform, l render.Line) {
	x0, y0, ok0 := r.camera.Project(pose, l.Start)
	x1, y1, ok1 := r.camera.Project(pose, l.End)
	if !ok0 || !ok1 {
		return
	}

	mid := l.Start.Add(l.End).Scale(0.5)
	dc.SetColor(toRGBA(l.Color).Color())
	dc.SetLineWidth(r.camera.StrokeWidth(l.Thickness, r.camera.Depth(pose, mid)))
	dc.DrawLine(x0, y0, x1, y1)
	dc.Stroke()
}

func toRGBA(c core.Color) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// Pipeline renders requested frames on its own goroutine and forwards them
// to the sink. When the queue is full new frames are dropped, never queued
// behind the tick.
type Pipeline struct {
	renderer *Renderer
	sink     Sink
	queue    chan Frame
	log      *slog.Logger
	done     chan struct{}
}

// NewPipeline returns a pipeline with the given queue size. The logger may
// be nil.
func NewPipeline(renderer *Renderer, sink Sink, queueSize int, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pipeline{
		renderer: renderer,
		sink:     sink,
		queue:    make(chan Frame, queueSize),
		log:      log,
		done:     make(chan struct{}),
	}
}

// Request enqueues a frame for rendering without blocking. Returns false
// when the queue is full and the frame was dropped.
func (p *Pipeline) Request(frame Frame) bool {
	select {
	case p.queue <- frame:
		return true
	default:
		p.log.Debug("frame dropped, render queue full", "tick", frame.Tick)
		return false
	}
}

// Run renders queued frames until the context is cancelled. Frames already
// queued at cancellation are drained and rendered first.
func (p *Pipeline) Run(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case frame := <-p.queue:
			p.process(ctx, frame)
		case <-ctx.Done():
			for {
				select {
				case frame := <-p.queue:
					p.process(context.Background(), frame)
				default:
					return
				}
			}
		}
	}
}

// Done is closed when Run has returned.
func (p *Pipeline) Done() <-chan struct{} {
	return p.done
}

func (p *Pipeline) process(ctx context.Context, frame Frame) {
	img := p.renderer.Render(frame)
	if err := p.sink.WriteFrame(ctx, img, frame); err != nil {
		p.log.Error("failed to write frame", "tick", frame.Tick, "error", err)
	}
}
