package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RecordingExport is the root JSON structure consumed by the viewer.
type RecordingExport struct {
	MapName       string  `json:"mapName"`
	SensorVersion string  `json:"sensorVersion"`
	StartTime     string  `json:"startTime"`
	EndTick       uint64  `json:"endTick"`
	CaptureWidth  int     `json:"captureWidth"`
	CaptureHeight int     `json:"captureHeight"`
	FOV           float64 `json:"fov"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`

	RenderSettings json.RawMessage `json:"renderSettings,omitempty"`

	// Ticks entries: [tick, objects, stopLines, splines, crosswalks,
	// stencils, frameRequested, frameDropped, [camX, camY, camZ],
	// [camEasting, camNorthing]]
	Ticks [][]any `json:"ticks"`

	// Frames entries: [tick, path, width, height]
	Frames [][]any `json:"frames"`
}

// exportJSON writes the session data to a (optionally gzipped) JSON file.
// Caller holds the lock.
func (b *Backend) exportJSON() error {
	export := b.buildExport()

	mapName := strings.ReplaceAll(b.session.MapName, " ", "_")
	mapName = strings.ReplaceAll(mapName, ":", "_")
	timestamp := b.session.StartTime.Format("20060102_150405")

	var filename string
	if b.cfg.CompressOutput {
		filename = fmt.Sprintf("%s_%s.json.gz", mapName, timestamp)
	} else {
		filename = fmt.Sprintf("%s_%s.json", mapName, timestamp)
	}

	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if b.cfg.CompressOutput {
		if err := b.writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := b.writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	b.lastExportPath = outputPath
	return nil
}

func (b *Backend) buildExport() RecordingExport {
	export := RecordingExport{
		MapName:        b.session.MapName,
		SensorVersion:  b.session.SensorVersion,
		StartTime:      b.session.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		CaptureWidth:   b.session.CaptureWidth,
		CaptureHeight:  b.session.CaptureHeight,
		FOV:            b.session.FOV,
		Latitude:       b.session.Latitude,
		Longitude:      b.session.Longitude,
		RenderSettings: json.RawMessage(b.session.RenderSettings),
		Ticks:          make([][]any, 0, len(b.ticks)),
		Frames:         make([][]any, 0, len(b.frames)),
	}

	var endTick uint64
	for _, t := range b.ticks {
		export.Ticks = append(export.Ticks, []any{
			t.Tick,
			t.Objects,
			t.StopLines,
			t.Splines,
			t.Crosswalks,
			t.Stencils,
			boolToInt(t.FrameRequested),
			boolToInt(t.FrameDropped),
			[]float32{t.CameraX, t.CameraY, t.CameraZ},
			[]float64{t.CameraEasting, t.CameraNorthing},
		})
		if t.Tick > endTick {
			endTick = t.Tick
		}
	}
	export.EndTick = endTick

	for _, f := range b.frames {
		export.Frames = append(export.Frames, []any{
			f.Tick,
			f.Path,
			f.Width,
			f.Height,
		})
	}

	return export
}

func (b *Backend) writeJSON(path string, data RecordingExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(data)
}

func (b *Backend) writeGzipJSON(path string, data RecordingExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	return json.NewEncoder(gzWriter).Encode(data)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
