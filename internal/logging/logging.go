package logging

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, sensorName string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", sensorName, sessionStart.Format("20060102_150405")),
	)
}

// NewGraylogWriter connects a GELF writer to the given Graylog UDP address.
// The returned writer can be passed to SlogManager.Setup as an extra sink.
func NewGraylogWriter(address, sensorName string) (*gelf.Writer, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("connecting to graylog at %s: %w", address, err)
	}
	w.Facility = sensorName
	return w, nil
}
