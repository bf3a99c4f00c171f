// Package gormdb implements the storage.Backend interface on top of any
// GORM dialect with internal write queues and a background writer goroutine,
// so the simulation tick never waits on the database.
package gormdb

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"github.com/cosmosviz/sensor/internal/model"
	"github.com/cosmosviz/sensor/internal/queue"
)

// writeInterval is the drain period of the background writer.
const writeInterval = 2 * time.Second

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB  *gorm.DB
	Log *slog.Logger
}

// Backend implements storage.Backend using GORM with queue-based batch
// writes.
type Backend struct {
	deps      Dependencies
	ticks     *queue.Queue[model.Tick]
	frames    *queue.Queue[model.Frame]
	sessionID atomic.Uint64
	stopChan  chan struct{}
	stopOnce  sync.Once

	lastWriteDuration atomic.Int64 // nanoseconds
}

// New creates a new GORM storage backend. The DB must be set by the caller.
func New(deps Dependencies) *Backend {
	if deps.Log == nil {
		deps.Log = slog.New(slog.DiscardHandler)
	}
	return &Backend{deps: deps}
}

// Init migrates the schema and starts the writer goroutine.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return fmt.Errorf("no database connection configured")
	}

	b.ticks = queue.New[model.Tick]()
	b.frames = queue.New[model.Frame]()
	b.stopChan = make(chan struct{})

	if err := b.deps.DB.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	go b.writeLoop()
	return nil
}

// Close drains outstanding queues and stops the writer goroutine.
func (b *Backend) Close() error {
	b.stopOnce.Do(func() {
		if b.stopChan != nil {
			close(b.stopChan)
		}
	})
	if b.ticks != nil {
		b.drain()
	}
	return nil
}

// DB exposes the underlying connection for wrapping backends.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// StartSession inserts the session row and stores its ID for the writer.
func (b *Backend) StartSession(s *model.Session) error {
	if err := b.deps.DB.Create(s).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	b.sessionID.Store(uint64(s.ID))
	return nil
}

// EndSession stamps the session end time and flushes the queues.
func (b *Backend) EndSession() error {
	b.drain()

	id := uint(b.sessionID.Load())
	if id == 0 {
		return nil
	}
	now := time.Now()
	return b.deps.DB.Model(&model.Session{}).Where("id = ?", id).
		Update("end_time", &now).Error
}

// RecordTick queues a tick row for the background writer.
func (b *Backend) RecordTick(t *model.Tick) error {
	b.ticks.Push(*t)
	return nil
}

// RecordFrame queues a frame row for the background writer.
func (b *Backend) RecordFrame(f *model.Frame) error {
	b.frames.Push(*f)
	return nil
}

// GetLastDBWriteDuration reports the duration of the last write cycle for
// monitoring.
func (b *Backend) GetLastDBWriteDuration() time.Duration {
	return time.Duration(b.lastWriteDuration.Load())
}

// QueueLengths reports how many tick and frame rows are waiting for the
// background writer.
func (b *Backend) QueueLengths() (ticks, frames int) {
	if b.ticks == nil || b.frames == nil {
		return 0, 0
	}
	return b.ticks.Len(), b.frames.Len()
}

// writeQueue writes all items from a queue to the database in a transaction.
// Failed batches are requeued.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, log *slog.Logger, prepare func([]T)) {
	if q.Empty() {
		return
	}

	tx := db.Begin()
	items := q.GetAndEmpty()
	if prepare != nil {
		prepare(items)
	}
	if err := tx.Create(&items).Error; err != nil {
		log.Error("failed to write batch", "queue", name, "error", err)
		tx.Rollback()
		q.Push(items...)
		return
	}
	tx.Commit()
}

func (b *Backend) drain() {
	start := time.Now()
	sessionID := uint(b.sessionID.Load())

	stampTicks := func(items []model.Tick) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}
	stampFrames := func(items []model.Frame) {
		for i := range items {
			items[i].SessionID = sessionID
		}
	}

	writeQueue(b.deps.DB, b.ticks, "ticks", b.deps.Log, stampTicks)
	writeQueue(b.deps.DB, b.frames, "frames", b.deps.Log, stampFrames)

	b.lastWriteDuration.Store(int64(time.Since(start)))
}

func (b *Backend) writeLoop() {
	ticker := time.NewTicker(writeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			b.drain()
		}
	}
}
