package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/cosmosviz/sensor/pkg/core"
)

// ConfigFileName is the JSON config consumed at sensor construction time.
const ConfigFileName = "cosmos_sensor.cfg.json"

// RenderConfig holds the line thickness and palette parameters of the control
// visualization. Immutable after load; one instance per sensor.
type RenderConfig struct {
	RoadLineThickness   float32
	VehicleBoxThickness float32
	PoleThickness       float32
	StopLineThickness   float32

	LaneLinesColor      core.Color
	RoadBoundariesColor core.Color
	WaitLinesColor      core.Color
	CrosswalksColor     core.Color
	RoadMarkingsColor   core.Color
	TrafficSignsColor   core.Color
	TrafficLightsColor  core.Color
	CarsColor           core.Color
	TrucksColor         core.Color
	PedestriansColor    core.Color
	CyclistsColor       core.Color
	PolesColor          core.Color
}

// DefaultRenderConfig returns the built-in render parameters, matching the
// cosmos writer reference palette.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		RoadLineThickness:   8,
		VehicleBoxThickness: 5,
		PoleThickness:       8,
		StopLineThickness:   8,

		LaneLinesColor:      core.RGB(98, 183, 249),
		RoadBoundariesColor: core.RGB(200, 36, 35),
		WaitLinesColor:      core.RGB(185, 63, 34),
		CrosswalksColor:     core.RGB(206, 131, 63),
		RoadMarkingsColor:   core.RGB(126, 204, 205),
		TrafficSignsColor:   core.RGB(131, 175, 155),
		TrafficLightsColor:  core.RGB(252, 157, 155),
		CarsColor:           core.RGB(255, 0, 0),
		TrucksColor:         core.RGB(0, 0, 255),
		PedestriansColor:    core.RGB(0, 255, 0),
		CyclistsColor:       core.RGB(255, 255, 0),
		PolesColor:          core.RGB(66, 40, 144),
	}
}

// Load reads configuration from the JSON file in configDir and sets default
// values. A missing or unparsable file is not fatal: the defaults set here
// stay in effect and the caller is expected to log and continue.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./cosmoslogs")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "cosmos-metrics")

	viper.SetDefault("storage.type", "memory")
	viper.SetDefault("storage.memory.outputDir", "./recordings")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./recordings/cosmos.db")
	viper.SetDefault("storage.websocket.url", "ws://localhost:5001/ws")
	viper.SetDefault("storage.websocket.secret", "")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "cosmos")

	viper.SetDefault("map", "Town10HD")
	viper.SetDefault("demo.ticks", 120)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.url", "http://localhost:5000")
	viper.SetDefault("api.secret", "")
	viper.SetDefault("api.tag", "")

	viper.SetDefault("capture.width", 960)
	viper.SetDefault("capture.height", 540)
	viper.SetDefault("capture.fov", 90.0)
	viper.SetDefault("capture.queueSize", 4)

	viper.SetDefault("CosmosControlVisualization.LineThickness.road_lines", 8.0)
	viper.SetDefault("CosmosControlVisualization.LineThickness.vehicle_boxes", 5.0)
	viper.SetDefault("CosmosControlVisualization.LineThickness.poles", 8.0)
	viper.SetDefault("CosmosControlVisualization.LineThickness.stop_lines", 8.0)

	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Render materializes the render configuration from the loaded settings.
// Fields absent from the file keep their built-in defaults. The wait-line
// color has no config key on purpose.
func Render() RenderConfig {
	cfg := DefaultRenderConfig()

	cfg.RoadLineThickness = float32(viper.GetFloat64("CosmosControlVisualization.LineThickness.road_lines"))
	cfg.VehicleBoxThickness = float32(viper.GetFloat64("CosmosControlVisualization.LineThickness.vehicle_boxes"))
	cfg.PoleThickness = float32(viper.GetFloat64("CosmosControlVisualization.LineThickness.poles"))
	cfg.StopLineThickness = float32(viper.GetFloat64("CosmosControlVisualization.LineThickness.stop_lines"))

	loadColor := func(key string, dst *core.Color) {
		arr := viper.GetIntSlice("CosmosControlVisualization.Colors." + key)
		if len(arr) != 3 {
			return
		}
		*dst = core.RGB(uint8(arr[0]), uint8(arr[1]), uint8(arr[2]))
	}

	loadColor("lane_lines", &cfg.LaneLinesColor)
	loadColor("road_boundaries", &cfg.RoadBoundariesColor)
	loadColor("crosswalks", &cfg.CrosswalksColor)
	loadColor("road_markings", &cfg.RoadMarkingsColor)
	loadColor("traffic_signs", &cfg.TrafficSignsColor)
	loadColor("traffic_lights", &cfg.TrafficLightsColor)
	loadColor("cars", &cfg.CarsColor)
	loadColor("trucks", &cfg.TrucksColor)
	loadColor("pedestrians", &cfg.PedestriansColor)
	loadColor("cyclists", &cfg.CyclistsColor)
	loadColor("poles", &cfg.PolesColor)

	return cfg
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetFloat returns a float config value.
func GetFloat(key string) float64 {
	return viper.GetFloat64(key)
}
