// Package recorder persists what the sensor produces: one session row per
// run, one tick row per annotation pass and a PNG plus frame row for every
// rendered capture.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cosmosviz/sensor/internal/capture"
	"github.com/cosmosviz/sensor/internal/channel"
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/geo"
	"github.com/cosmosviz/sensor/internal/model"
	"github.com/cosmosviz/sensor/internal/sensor"
	"github.com/cosmosviz/sensor/internal/storage"
	"github.com/cosmosviz/sensor/pkg/core"
)

// tickQueueSize bounds the staging channel between the game loop and the
// storage backend.
const tickQueueSize = 1024

// Dependencies holds all dependencies for the recorder service.
type Dependencies struct {
	Backend   storage.Backend
	Log       *slog.Logger
	FramesDir string
	Version   string
}

// Service forwards sensor output to the storage backend.
type Service struct {
	deps  Dependencies
	ref   core.GeoReference
	ticks channel.Channel[model.Tick]
	done  chan struct{}
}

// NewService creates a recorder around an initialized storage backend.
func NewService(deps Dependencies) *Service {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	return &Service{
		deps:  deps,
		ticks: channel.New[model.Tick](tickQueueSize),
		done:  make(chan struct{}),
	}
}

// StartSession opens a session row describing the run. The geographic anchor
// is projected once here so viewers never need projection support.
func (s *Service) StartSession(mapName string, ref core.GeoReference, render config.RenderConfig, capCfg config.CaptureConfig) (*model.Session, error) {
	settings, err := json.Marshal(render)
	if err != nil {
		return nil, fmt.Errorf("marshaling render settings: %w", err)
	}

	anchor, err := geo.AnchorPoint(ref)
	if err != nil {
		return nil, fmt.Errorf("projecting map anchor: %w", err)
	}
	xy, ok := anchor.XY()
	if !ok {
		return nil, fmt.Errorf("map anchor projected to an empty point")
	}
	easting, northing := xy.X, xy.Y
	s.ref = ref

	session := &model.Session{
		StartTime:      time.Now(),
		MapName:        mapName,
		SensorVersion:  s.deps.Version,
		CaptureWidth:   capCfg.Width,
		CaptureHeight:  capCfg.Height,
		FOV:            capCfg.FOV,
		Latitude:       ref.Latitude,
		Longitude:      ref.Longitude,
		Easting:        easting,
		Northing:       northing,
		RenderSettings: settings,
	}

	if err := s.deps.Backend.StartSession(session); err != nil {
		return nil, err
	}

	s.deps.Log.Info("session started",
		"map", mapName, "easting", easting, "northing", northing)
	return session, nil
}

// RecordTick stages a tick row for the backend writer. Blocks only when the
// staging buffer is full.
func (s *Service) RecordTick(stats sensor.TickStats, pose core.Transform, dynamicLines, persistentLines, persistentMeshes int) {
	camEasting, camNorthing := geo.LocalToWebMercator(s.ref, pose.Location)
	s.ticks.Send(model.Tick{
		Tick:             stats.Tick,
		Time:             time.Now(),
		Objects:          stats.Objects,
		StopLines:        stats.StopLines,
		Splines:          stats.Splines,
		Crosswalks:       stats.Crosswalks,
		Stencils:         stats.Stencils,
		DynamicLines:     dynamicLines,
		PersistentLines:  persistentLines,
		PersistentMeshes: persistentMeshes,
		FrameRequested:   stats.FrameRequested,
		FrameDropped:     stats.FrameDropped,
		CameraX:          pose.Location.X,
		CameraY:          pose.Location.Y,
		CameraZ:          pose.Location.Z,
		CameraEasting:    camEasting,
		CameraNorthing:   camNorthing,
	})
}

// Run drains staged ticks into the backend until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.flush()
			return
		case t, ok := <-s.ticks.Receive():
			if !ok {
				return
			}
			if err := s.deps.Backend.RecordTick(&t); err != nil {
				s.deps.Log.Error("failed to record tick", "tick", t.Tick, "error", err)
			}
		}
	}
}

// Done is closed once Run has drained and returned.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// flush empties whatever is still staged without waiting for new sends.
func (s *Service) flush() {
	for {
		select {
		case t, ok := <-s.ticks.Receive():
			if !ok {
				return
			}
			if err := s.deps.Backend.RecordTick(&t); err != nil {
				s.deps.Log.Error("failed to record tick", "tick", t.Tick, "error", err)
			}
		default:
			return
		}
	}
}

// WriteFrame stores a rendered capture as PNG and records its frame row.
// Implements the capture sink interface.
func (s *Service) WriteFrame(ctx context.Context, img image.Image, frame capture.Frame) error {
	if err := os.MkdirAll(s.deps.FramesDir, 0755); err != nil {
		return fmt.Errorf("creating frames dir: %w", err)
	}

	path := filepath.Join(s.deps.FramesDir, fmt.Sprintf("%08d.png", frame.Tick))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	bounds := img.Bounds()
	return s.deps.Backend.RecordFrame(&model.Frame{
		Tick:   frame.Tick,
		Time:   frame.Time,
		Path:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	})
}

// EndSession stamps the session end and reports the exported file, if the
// backend produced one.
func (s *Service) EndSession() (exportPath string, err error) {
	if err := s.deps.Backend.EndSession(); err != nil {
		return "", err
	}

	if e, ok := s.deps.Backend.(storage.Exportable); ok {
		exportPath = e.ExportedFilePath()
	}

	s.deps.Log.Info("session ended", "export", exportPath)
	return exportPath, nil
}
