// Package memory stores a recording session in memory and exports it to a
// JSON file when the session ends.
package memory

import (
	"sync"

	"github.com/cosmosviz/sensor/internal/model"
)

// Config holds configuration for the memory backend.
type Config struct {
	OutputDir      string
	CompressOutput bool
}

// Backend stores session data in memory and exports to JSON.
type Backend struct {
	cfg     Config
	session *model.Session

	ticks  []model.Tick
	frames []model.Frame

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend.
func New(cfg Config) *Backend {
	return &Backend{cfg: cfg}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources.
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session.
func (b *Backend) StartSession(s *model.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s.ID = 1
	b.session = s
	b.ticks = nil
	b.frames = nil
	return nil
}

// EndSession finalizes and exports the session data.
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return nil
	}
	return b.exportJSON()
}

// RecordTick appends a tick row.
func (b *Backend) RecordTick(t *model.Tick) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ticks = append(b.ticks, *t)
	return nil
}

// RecordFrame appends a frame row.
func (b *Backend) RecordFrame(f *model.Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames = append(b.frames, *f)
	return nil
}

// ExportedFilePath returns the path of the last exported recording.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
