// Package sensor drives the cosmos control visualization: once per
// simulation tick it refreshes the dynamic annotation batch, lays down the
// one-time static annotations when their sources become available and
// requests an asynchronous camera capture of the result.
package sensor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/cosmosviz/sensor/internal/annotate"
	"github.com/cosmosviz/sensor/internal/capture"
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/pkg/core"
)

// oneShotState tracks a static annotation category that must be drawn
// exactly once.
type oneShotState uint8

const (
	statePending oneShotState = iota
	stateDone
)

// Dependencies carries everything a Sensor needs. Frames and Log are
// optional.
type Dependencies struct {
	Config config.RenderConfig
	Draw   *render.Batcher
	Frames capture.Requester
	Log    *slog.Logger
}

// TickStats summarizes one PostPhysTick call.
type TickStats struct {
	Tick           uint64
	Objects        int
	StopLines      int
	Splines        int
	Crosswalks     int
	Stencils       int
	FrameRequested bool
	FrameDropped   bool
}

// Sensor is the per-tick annotation orchestrator. All methods are safe for
// concurrent use; PostPhysTick itself is expected from a single game-loop
// goroutine.
type Sensor struct {
	mu     sync.Mutex
	cfg    config.RenderConfig
	draw   *render.Batcher
	annot  *annotate.Annotator
	frames capture.Requester
	log    *slog.Logger

	tick    uint64
	pose    core.Transform
	ignored map[core.ActorID]bool

	stopLines  oneShotState
	routeLines oneShotState
	crosswalks oneShotState
	stencils   oneShotState

	ticksTotal      metric.Int64Counter
	objectsTotal    metric.Int64Counter
	framesRequested metric.Int64Counter
	framesDropped   metric.Int64Counter
}

// New returns a sensor wired to the given dependencies.
func New(deps Dependencies) *Sensor {
	log := deps.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Sensor{
		cfg:     deps.Config,
		draw:    deps.Draw,
		annot:   annotate.New(deps.Config, deps.Draw, log),
		frames:  deps.Frames,
		log:     log,
		ignored: make(map[core.ActorID]bool),
	}
	s.initMetrics()
	return s
}

func (s *Sensor) initMetrics() {
	m := meter()
	var err error
	if s.ticksTotal, err = m.Int64Counter("sensor_ticks_total",
		metric.WithDescription("Simulation ticks processed")); err != nil {
		s.log.Warn("failed to create tick counter", "error", err)
	}
	if s.objectsTotal, err = m.Int64Counter("sensor_objects_annotated_total",
		metric.WithDescription("Scene objects annotated")); err != nil {
		s.log.Warn("failed to create object counter", "error", err)
	}
	if s.framesRequested, err = m.Int64Counter("sensor_frames_requested_total",
		metric.WithDescription("Capture frames requested")); err != nil {
		s.log.Warn("failed to create frame counter", "error", err)
	}
	if s.framesDropped, err = m.Int64Counter("sensor_frames_dropped_total",
		metric.WithDescription("Capture frames dropped, queue full")); err != nil {
		s.log.Warn("failed to create drop counter", "error", err)
	}
}

// SetPose updates the camera pose used for capture requests.
func (s *Sensor) SetPose(pose core.Transform) {
	s.mu.Lock()
	s.pose = pose
	s.mu.Unlock()
}

// IgnoreVehicle excludes a vehicle actor from per-tick annotation.
func (s *Sensor) IgnoreVehicle(id core.ActorID) {
	s.mu.Lock()
	s.ignored[id] = true
	s.mu.Unlock()
}

// UnignoreVehicle re-enables annotation for a previously ignored vehicle.
func (s *Sensor) UnignoreVehicle(id core.ActorID) {
	s.mu.Lock()
	delete(s.ignored, id)
	s.mu.Unlock()
}

// ClearIgnored empties the ignore list.
func (s *Sensor) ClearIgnored() {
	s.mu.Lock()
	s.ignored = make(map[core.ActorID]bool)
	s.mu.Unlock()
}

// SetHeadless toggles headless mode on the underlying batcher.
func (s *Sensor) SetHeadless(headless bool) {
	s.draw.SetHeadless(headless)
}

// Tick returns the number of ticks processed so far.
func (s *Sensor) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// PostPhysTick runs one annotation pass against the world after physics has
// settled. Dynamic annotations are rebuilt from scratch; each static
// category is drawn at most once, with categories whose source is not ready
// yet retried on later ticks.
func (s *Sensor) PostPhysTick(ctx context.Context, world World) TickStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tick++
	stats := TickStats{Tick: s.tick}
	s.add(ctx, s.ticksTotal, 1)

	s.draw.FlushDynamic()

	actors := world.Actors()
	hero := heroActor(actors)
	if hero == nil {
		s.log.Debug("no hero actor in scene", "tick", s.tick)
	}

	stats.Objects = s.annot.AnnotateObjects(world.MeshComponents(), hero, s.ignored)
	s.add(ctx, s.objectsTotal, int64(stats.Objects))

	// Stop lines are committed on the first tick even when no traffic
	// lights exist yet; lights spawned later stay unannotated.
	if s.stopLines == statePending {
		stats.StopLines = s.annot.AnnotateStopLines(world.TrafficLights())
		s.stopLines = stateDone
	}

	// Boundary splines stream in with the map; keep retrying until at
	// least one exists.
	if s.routeLines == statePending {
		splines := world.BoundarySplines()
		stats.Splines = s.annot.AnnotateSplines(splines)
		if len(splines) > 0 {
			s.routeLines = stateDone
		}
	}

	// Crosswalks and stencils need the road map, which only exists once
	// the game mode is up. Retry until then.
	if roadMap := world.RoadMap(); roadMap != nil {
		if s.crosswalks == statePending {
			stats.Crosswalks = s.annot.AnnotateCrosswalks(roadMap.CrosswalkZones())
			s.crosswalks = stateDone
		}
		if s.stencils == statePending {
			stats.Stencils = s.annot.AnnotateStencils(roadMap.Stencils())
			s.stencils = stateDone
		}
	}

	if s.frames != nil {
		frame := capture.Frame{
			Tick:   s.tick,
			Time:   time.Now(),
			Pose:   s.pose,
			Lines:  append(s.draw.Persistent().Lines(), s.draw.Dynamic().Lines()...),
			Meshes: append(s.draw.Persistent().Meshes(), s.draw.Dynamic().Meshes()...),
		}
		stats.FrameRequested = true
		s.add(ctx, s.framesRequested, 1)
		if !s.frames.Request(frame) {
			stats.FrameDropped = true
			s.add(ctx, s.framesDropped, 1)
		}
	}

	return stats
}

func (s *Sensor) add(ctx context.Context, c metric.Int64Counter, n int64) {
	if c != nil {
		c.Add(ctx, n)
	}
}
