// Package storage defines the recording backend interface and the factory
// that selects an implementation from configuration.
package storage

import "github.com/cosmosviz/sensor/internal/model"

// Backend is the interface all recording backends must satisfy.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management. StartSession assigns an ID to the passed pointer.
	StartSession(s *model.Session) error
	EndSession() error

	// Per-tick recording
	RecordTick(t *model.Tick) error
	RecordFrame(f *model.Frame) error
}

// Exportable is an optional interface for backends that produce a recording
// file suitable for upload to a viewer.
type Exportable interface {
	ExportedFilePath() string
}
