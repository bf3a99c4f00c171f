package gormdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/internal/database"
	"github.com/cosmosviz/sensor/internal/model"
)

func newTestBackend(t *testing.T) *Backend {
	t.Helper()

	db, err := database.GetSqliteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	b := New(Dependencies{DB: db})
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestStartSessionAssignsID(t *testing.T) {
	b := newTestBackend(t)

	s := &model.Session{MapName: "Town 10"}
	require.NoError(t, b.StartSession(s))
	assert.NotZero(t, s.ID)
}

func TestTicksStampedWithSession(t *testing.T) {
	b := newTestBackend(t)

	s := &model.Session{MapName: "Town 10"}
	require.NoError(t, b.StartSession(s))

	require.NoError(t, b.RecordTick(&model.Tick{Tick: 1, Objects: 4}))
	require.NoError(t, b.RecordTick(&model.Tick{Tick: 2, Objects: 6}))
	require.NoError(t, b.RecordFrame(&model.Frame{Tick: 1, Path: "frames/000001.png"}))
	require.NoError(t, b.EndSession())

	var ticks []model.Tick
	require.NoError(t, b.DB().Order("tick").Find(&ticks).Error)
	require.Len(t, ticks, 2)
	for _, row := range ticks {
		assert.Equal(t, s.ID, row.SessionID)
	}

	var frames []model.Frame
	require.NoError(t, b.DB().Find(&frames).Error)
	require.Len(t, frames, 1)
	assert.Equal(t, s.ID, frames[0].SessionID)
}

func TestEndSessionStampsEndTime(t *testing.T) {
	b := newTestBackend(t)

	s := &model.Session{MapName: "Town 10"}
	require.NoError(t, b.StartSession(s))
	require.NoError(t, b.EndSession())

	var got model.Session
	require.NoError(t, b.DB().First(&got, s.ID).Error)
	require.NotNil(t, got.EndTime)
}

func TestInitWithoutDBFails(t *testing.T) {
	b := New(Dependencies{})
	assert.Error(t, b.Init())
}
