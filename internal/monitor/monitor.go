// Package monitor periodically reports sensor health: storage queue depths,
// last database write latency, and annotation throughput.
package monitor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cosmosviz/sensor/internal/influx"
	"github.com/cosmosviz/sensor/internal/logging"
)

// QueueStats is implemented by storage backends that expose their internal
// write queues.
type QueueStats interface {
	QueueLengths() (ticks, frames int)
	GetLastDBWriteDuration() time.Duration
}

// Status is the snapshot written to the status file every interval.
type Status struct {
	Time                time.Time `json:"time"`
	MapName             string    `json:"mapName"`
	TickQueue           int       `json:"tickQueue"`
	FrameQueue          int       `json:"frameQueue"`
	LastWriteDurationMs float32   `json:"lastWriteDurationMs"`
}

// Dependencies holds all dependencies for the monitor service.
type Dependencies struct {
	Queues     QueueStats
	LogManager *logging.SlogManager
	Influx     *influx.Manager
	StatusDir  string
	MapName    string
}

// Service manages status monitoring.
type Service struct {
	deps      Dependencies
	interval  time.Duration
	isRunning bool
	mu        sync.RWMutex
	stopChan  chan struct{}
}

// NewService creates a new monitor service.
func NewService(deps Dependencies) *Service {
	return &Service{
		deps:     deps,
		interval: time.Second,
		stopChan: make(chan struct{}),
	}
}

// IsRunning returns whether the status monitor is running.
func (s *Service) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Snapshot returns the current sensor status.
func (s *Service) Snapshot() Status {
	st := Status{
		Time:    time.Now(),
		MapName: s.deps.MapName,
	}
	if s.deps.Queues != nil {
		st.TickQueue, st.FrameQueue = s.deps.Queues.QueueLengths()
		st.LastWriteDurationMs = float32(s.deps.Queues.GetLastDBWriteDuration().Milliseconds())
	}
	return st
}

// Start starts the status monitor goroutine.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}()

		logger := s.deps.LogManager.Logger()
		logger.Debug("Starting status monitor goroutine", "function", "monitor.Start")

		statusFile, err := os.Create(filepath.Join(s.deps.StatusDir, "status.txt"))
		if err != nil {
			logger.Error("Error creating status file", "error", err)
		}
		defer func() {
			if statusFile != nil {
				statusFile.Close()
			}
		}()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopChan:
				return
			case <-ticker.C:
				status := s.Snapshot()

				if statusFile != nil {
					s.writeStatusFile(statusFile, status)
				}

				if s.deps.Influx != nil {
					point := influx.WriteDurationPoint(
						s.deps.MapName,
						time.Duration(status.LastWriteDurationMs)*time.Millisecond,
					)
					if err := s.deps.Influx.WritePoint(context.Background(), influx.BucketSensorPerformance, point); err != nil {
						logger.Error("Error writing performance point", "error", err)
					}
				}
			}
		}
	}()

	return nil
}

func (s *Service) writeStatusFile(f *os.File, status Status) {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error": %q}`, err.Error()))
	}

	f.Truncate(0)
	f.Seek(0, 0)
	f.Write(data)
	f.WriteString("\n")
}

// Stop stops the status monitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		close(s.stopChan)
	}
}
