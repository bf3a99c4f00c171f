package recorder

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/internal/capture"
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/model"
	"github.com/cosmosviz/sensor/internal/sensor"
	"github.com/cosmosviz/sensor/pkg/core"
)

type fakeBackend struct {
	mu       sync.Mutex
	session  *model.Session
	ticks    []model.Tick
	frames   []model.Frame
	ended    bool
	exportAt string
}

func (f *fakeBackend) Init() error  { return nil }
func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) StartSession(s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s.ID = 1
	f.session = s
	return nil
}

func (f *fakeBackend) EndSession() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = true
	return nil
}

func (f *fakeBackend) RecordTick(t *model.Tick) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks = append(f.ticks, *t)
	return nil
}

func (f *fakeBackend) RecordFrame(fr *model.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, *fr)
	return nil
}

func (f *fakeBackend) ExportedFilePath() string { return f.exportAt }

func (f *fakeBackend) tickCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ticks)
}

func TestStartSessionProjectsAnchor(t *testing.T) {
	backend := &fakeBackend{}
	s := NewService(Dependencies{Backend: backend, Version: "1.2.0"})

	session, err := s.StartSession("Town10HD",
		core.GeoReference{Latitude: 0, Longitude: 1},
		config.DefaultRenderConfig(),
		config.CaptureConfig{Width: 960, Height: 540, FOV: 90},
	)
	require.NoError(t, err)

	assert.Equal(t, uint(1), session.ID)
	assert.Equal(t, "Town10HD", session.MapName)
	assert.Equal(t, "1.2.0", session.SensorVersion)
	assert.Equal(t, 960, session.CaptureWidth)
	assert.InDelta(t, 111319.49, session.Easting, 1)
	assert.InDelta(t, 0, session.Northing, 1e-6)
	assert.NotEmpty(t, session.RenderSettings)
}

func TestRecordTickReachesBackend(t *testing.T) {
	backend := &fakeBackend{}
	s := NewService(Dependencies{Backend: backend})

	ctx, cancel := context.WithCancel(context.Background())
	go s.Run(ctx)

	pose := core.Transform{Location: core.Vector3{X: 10, Y: 20, Z: 380}}
	s.RecordTick(sensor.TickStats{
		Tick:           3,
		Objects:        5,
		FrameRequested: true,
	}, pose, 60, 8, 2)

	require.Eventually(t, func() bool { return backend.tickCount() == 1 },
		time.Second, 5*time.Millisecond)

	cancel()
	<-s.Done()

	tick := backend.ticks[0]
	assert.Equal(t, uint64(3), tick.Tick)
	assert.Equal(t, 5, tick.Objects)
	assert.Equal(t, 60, tick.DynamicLines)
	assert.Equal(t, 8, tick.PersistentLines)
	assert.Equal(t, 2, tick.PersistentMeshes)
	assert.True(t, tick.FrameRequested)
	assert.InDelta(t, 380, tick.CameraZ, 1e-6)

	// Camera track in web mercator: 10 cm east, 20 cm south of the anchor.
	assert.InDelta(t, 0.1, tick.CameraEasting, 1e-6)
	assert.InDelta(t, -0.2, tick.CameraNorthing, 1e-6)
}

func TestRunFlushesOnCancel(t *testing.T) {
	backend := &fakeBackend{}
	s := NewService(Dependencies{Backend: backend})

	// Stage ticks before Run starts, then cancel immediately: the staged
	// rows must still land in the backend.
	for i := 1; i <= 5; i++ {
		s.RecordTick(sensor.TickStats{Tick: uint64(i)}, core.Transform{}, 0, 0, 0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	go s.Run(ctx)
	<-s.Done()

	assert.Equal(t, 5, backend.tickCount())
}

func TestWriteFrame(t *testing.T) {
	dir := t.TempDir()
	backend := &fakeBackend{}
	s := NewService(Dependencies{Backend: backend, FramesDir: dir})

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	err := s.WriteFrame(context.Background(), img, capture.Frame{Tick: 12, Time: time.Now()})
	require.NoError(t, err)

	wantPath := filepath.Join(dir, "00000012.png")
	_, statErr := os.Stat(wantPath)
	assert.NoError(t, statErr)

	require.Len(t, backend.frames, 1)
	assert.Equal(t, uint64(12), backend.frames[0].Tick)
	assert.Equal(t, wantPath, backend.frames[0].Path)
	assert.Equal(t, 64, backend.frames[0].Width)
	assert.Equal(t, 32, backend.frames[0].Height)
}

func TestEndSessionReportsExport(t *testing.T) {
	backend := &fakeBackend{exportAt: "/tmp/recordings/Town10HD.json.gz"}
	s := NewService(Dependencies{Backend: backend})

	path, err := s.EndSession()
	require.NoError(t, err)
	assert.True(t, backend.ended)
	assert.Equal(t, "/tmp/recordings/Town10HD.json.gz", path)
}
