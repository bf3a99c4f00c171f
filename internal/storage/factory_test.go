package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmosviz/sensor/internal/config"
	"github.com/cosmosviz/sensor/internal/storage/memory"
	"github.com/cosmosviz/sensor/internal/storage/postgres"
	sqlitestorage "github.com/cosmosviz/sensor/internal/storage/sqlite"
	"github.com/cosmosviz/sensor/internal/storage/websocket"
)

// Every backend must satisfy the recording interface; the export-capable
// ones additionally report their output file.
var (
	_ Backend    = (*memory.Backend)(nil)
	_ Backend    = (*postgres.Backend)(nil)
	_ Backend    = (*sqlitestorage.Backend)(nil)
	_ Backend    = (*websocket.Backend)(nil)
	_ Exportable = (*memory.Backend)(nil)
	_ Exportable = (*sqlitestorage.Backend)(nil)
)

func TestNewBackendDispatch(t *testing.T) {
	b, err := NewBackend(config.StorageConfig{Type: "memory"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	b, err = NewBackend(config.StorageConfig{Type: "websocket"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &websocket.Backend{}, b)
}

func TestNewBackendUnknownType(t *testing.T) {
	_, err := NewBackend(config.StorageConfig{Type: "redis"}, nil)
	assert.ErrorContains(t, err, "unknown storage type")
}
