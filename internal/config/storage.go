package config

import (
	"time"

	"github.com/spf13/viper"
)

// MemoryConfig configures the in-memory recording backend.
type MemoryConfig struct {
	OutputDir      string
	CompressOutput bool
}

// SqliteConfig configures the SQLite recording backend.
type SqliteConfig struct {
	DumpPath     string
	DumpInterval time.Duration
}

// WebsocketConfig configures the live streaming backend.
type WebsocketConfig struct {
	URL    string
	Secret string
}

// StorageConfig selects and configures a recording backend.
type StorageConfig struct {
	Type      string
	Memory    MemoryConfig
	Sqlite    SqliteConfig
	Websocket WebsocketConfig
}

// Storage materializes the storage configuration from the loaded settings.
func Storage() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		Sqlite: SqliteConfig{
			DumpPath:     viper.GetString("storage.sqlite.path"),
			DumpInterval: 30 * time.Second,
		},
		Websocket: WebsocketConfig{
			URL:    viper.GetString("storage.websocket.url"),
			Secret: viper.GetString("storage.websocket.secret"),
		},
	}
}

// CaptureConfig configures the camera capture pipeline.
type CaptureConfig struct {
	Width     int
	Height    int
	FOV       float64
	QueueSize int
}

// Capture materializes the capture configuration from the loaded settings.
func Capture() CaptureConfig {
	return CaptureConfig{
		Width:     viper.GetInt("capture.width"),
		Height:    viper.GetInt("capture.height"),
		FOV:       viper.GetFloat64("capture.fov"),
		QueueSize: viper.GetInt("capture.queueSize"),
	}
}
