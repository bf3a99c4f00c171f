// Command cosmos-sensor runs the control-visualization sensor against the
// built-in synthetic town: it annotates the scene for a configurable number
// of ticks, renders capture frames to PNG and writes the recording through
// the configured storage backend.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/cosmosviz/sensor/internal/api"
	"github.com/cosmosviz/sensor/internal/capture"
	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/control"
	"github.com/cosmosviz/sensor/internal/geo"
	"github.com/cosmosviz/sensor/internal/influx"
	"github.com/cosmosviz/sensor/internal/logging"
	"github.com/cosmosviz/sensor/internal/monitor"
	intOtel "github.com/cosmosviz/sensor/internal/otel"
	"github.com/cosmosviz/sensor/internal/recorder"
	"github.com/cosmosviz/sensor/internal/render"
	"github.com/cosmosviz/sensor/internal/scene"
	"github.com/cosmosviz/sensor/internal/sensor"
	"github.com/cosmosviz/sensor/internal/storage"
	"github.com/cosmosviz/sensor/pkg/core"
)

// Version can be set at build time via ldflags.
var (
	Version   = "0.0.1"
	BuildDate = "unknown"

	SensorName = "cosmos_sensor"
)

var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider
)

// roadMapReadyTick is when the demo road map comes up, exercising the
// retry path of the one-shot annotations.
const roadMapReadyTick = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	startTime := time.Now()

	configErr := config.Load(".")

	if err := setupLogging(startTime); err != nil {
		return err
	}
	if configErr != nil {
		Logger.Warn("Config file not loaded, using defaults", "error", configErr)
	}
	Logger.Info("Sensor starting", "version", Version, "buildDate", BuildDate)

	// Storage backend and recorder.
	storageCfg := config.Storage()
	backend, err := storage.NewBackend(storageCfg, Logger)
	if err != nil {
		return fmt.Errorf("creating storage backend: %w", err)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("initializing storage backend: %w", err)
	}
	defer backend.Close()

	rec := recorder.NewService(recorder.Dependencies{
		Backend:   backend,
		Log:       Logger,
		FramesDir: filepath.Join(config.GetString("storage.memory.outputDir"), "frames"),
		Version:   Version,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go rec.Run(ctx)

	// Capture pipeline rendering into the recorder sink.
	captureCfg := config.Capture()
	camera := capture.Camera{
		Width:  captureCfg.Width,
		Height: captureCfg.Height,
		FOV:    captureCfg.FOV,
	}
	renderer := capture.NewRenderer(camera, core.RGB(12, 12, 16))
	pipeline := capture.NewPipeline(renderer, rec, captureCfg.QueueSize, Logger)
	go pipeline.Run(ctx)

	// The sensor itself and its control channel. Every sensor log record is
	// stamped with the tick it happened on.
	renderCfg := config.Render()
	batcher := render.NewBatcher(false)

	var sens *sensor.Sensor
	tickLogger := slog.New(logging.NewContextHandler(Logger.Handler(), func() []slog.Attr {
		if sens == nil {
			return nil
		}
		return []slog.Attr{slog.Uint64("tick", sens.Tick())}
	}))
	sens = sensor.New(sensor.Dependencies{
		Config: renderCfg,
		Draw:   batcher,
		Frames: pipeline,
		Log:    tickLogger,
	})

	dispatcher, err := control.New(logging.NewDispatcherLogger(Logger))
	if err != nil {
		return fmt.Errorf("creating control dispatcher: %w", err)
	}
	control.RegisterSensorCommands(dispatcher, sens)

	// Synthetic town and session bookkeeping.
	town := scene.NewDemo(roadMapReadyTick)
	mapName := config.GetString("map")

	var ref core.GeoReference
	if rm := town.RoadMap(); rm != nil {
		ref = rm.GeoReference()
	} else {
		ref = core.GeoReference{Latitude: 48.9987, Longitude: 8.0027}
	}

	session, err := rec.StartSession(mapName, ref, renderCfg, captureCfg)
	if err != nil {
		return fmt.Errorf("starting session: %w", err)
	}

	mon := startMonitor(backend, mapName)
	if mon != nil {
		defer mon.Stop()
	}

	// Main loop.
	ticks := config.GetInt("demo.ticks")
	for i := 0; i < ticks; i++ {
		town.Advance()

		hero := findHero(town)
		if hero != nil {
			// Drive the camera pose through the control channel the way a
			// live attachment would.
			pose := cameraPoseFor(hero)
			_, err := dispatcher.Dispatch(control.Event{
				Command: control.CmdSetPose,
				Args: []string{
					fmt.Sprintf("%f", pose.Location.X),
					fmt.Sprintf("%f", pose.Location.Y),
					fmt.Sprintf("%f", pose.Location.Z),
					"0",
				},
				Timestamp: time.Now(),
			})
			if err != nil {
				Logger.Warn("pose command failed", "error", err)
			}
		}

		stats := sens.PostPhysTick(ctx, town)

		rec.RecordTick(stats, cameraPoseForNil(hero),
			len(batcher.Dynamic().Lines()),
			len(batcher.Persistent().Lines()),
			len(batcher.Persistent().Meshes()))

		if stats.Splines > 0 {
			length := geo.NetworkLength(town.BoundarySplines())
			Logger.Info("boundary network annotated",
				"splines", stats.Splines, "lengthSceneUnits", length)
		}
	}
	Logger.Info("Simulation finished", "ticks", ticks, "sessionID", session.ID)

	// Shutdown: stop renderers, drain queues, stamp the session.
	cancel()
	<-pipeline.Done()
	<-rec.Done()

	exportPath, err := rec.EndSession()
	if err != nil {
		return fmt.Errorf("ending session: %w", err)
	}

	if exportPath != "" && config.GetBool("api.enabled") {
		uploadRecording(exportPath, mapName, time.Since(startTime))
	}

	if err := SlogManager.Flush(context.Background()); err != nil {
		Logger.Warn("log flush failed", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(context.Background()); err != nil {
			Logger.Warn("otel shutdown failed", "error", err)
		}
	}

	return nil
}

func setupLogging(startTime time.Time) error {
	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	logFile, err := os.Create(logging.LogFilePath(logsDir, SensorName, startTime))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}

	var provider *sdklog.LoggerProvider
	if config.GetBool("otel.enabled") {
		otelLogFile, err := os.Create(logging.LogFilePath(logsDir, SensorName+".otel", startTime))
		if err != nil {
			return fmt.Errorf("creating otel log file: %w", err)
		}
		OTelProvider, err = intOtel.New(intOtel.Config{
			Enabled:      true,
			ServiceName:  "cosmos-sensor",
			BatchTimeout: 5 * time.Second,
			LogWriter:    otelLogFile,
			Endpoint:     config.GetString("otel.endpoint"),
			Insecure:     config.GetBool("otel.insecure"),
		})
		if err != nil {
			return fmt.Errorf("creating otel provider: %w", err)
		}
		provider = OTelProvider.LoggerProvider()
	}

	SlogManager = logging.NewSlogManager()

	if config.GetBool("graylog.enabled") {
		gelfWriter, err := logging.NewGraylogWriter(config.GetString("graylog.address"), SensorName)
		if err != nil {
			SlogManager.Setup(logFile, config.GetString("logLevel"), provider)
			Logger = SlogManager.Logger()
			Logger.Warn("Graylog writer unavailable", "error", err)
			return nil
		}
		SlogManager.Setup(logFile, config.GetString("logLevel"), provider, gelfWriter)
	} else {
		SlogManager.Setup(logFile, config.GetString("logLevel"), provider)
	}

	Logger = SlogManager.Logger()
	return nil
}

func startMonitor(backend storage.Backend, mapName string) *monitor.Service {
	queues, ok := backend.(monitor.QueueStats)
	if !ok {
		return nil
	}

	var influxManager *influx.Manager
	if config.GetBool("influx.enabled") {
		zl := zerolog.New(os.Stdout).With().Timestamp().Str("component", "influx").Logger()
		backupPath := filepath.Join(config.GetString("logsDir"), "influx_backup.gz")
		influxManager = influx.NewManager(zl, backupPath)
		if err := influxManager.Connect(); err != nil {
			Logger.Warn("influx unavailable", "error", err)
			influxManager = nil
		}
	}

	mon := monitor.NewService(monitor.Dependencies{
		Queues:     queues,
		LogManager: SlogManager,
		Influx:     influxManager,
		StatusDir:  config.GetString("logsDir"),
		MapName:    mapName,
	})
	if err := mon.Start(); err != nil {
		Logger.Warn("status monitor failed to start", "error", err)
		return nil
	}
	return mon
}

func findHero(town *scene.Demo) *core.Actor {
	for _, a := range town.Actors() {
		if a.Attribute("role_name") == "hero" {
			return a
		}
	}
	return nil
}

// cameraPoseFor places the camera above and behind the hero, looking along
// its heading.
func cameraPoseFor(hero *core.Actor) core.Transform {
	loc := hero.Transform.Location
	return core.Transform{
		Location: core.Vector3{X: loc.X - 600, Y: loc.Y, Z: loc.Z + 450},
		Rotation: hero.Transform.Rotation,
	}
}

func cameraPoseForNil(hero *core.Actor) core.Transform {
	if hero == nil {
		return core.Transform{}
	}
	return cameraPoseFor(hero)
}

func uploadRecording(exportPath, mapName string, duration time.Duration) {
	client := api.New(config.GetString("api.url"), config.GetString("api.secret"))
	if err := client.Healthcheck(); err != nil {
		Logger.Warn("viewer frontend unreachable, keeping local recording",
			"path", exportPath, "error", err)
		return
	}

	err := client.Upload(exportPath, api.UploadMetadata{
		MapName:         mapName,
		SessionDuration: duration.Seconds(),
		Tag:             config.GetString("api.tag"),
	})
	if err != nil {
		Logger.Error("recording upload failed", "path", exportPath, "error", err)
		return
	}
	Logger.Info("recording uploaded", "path", exportPath)
}
