// Package model defines the persisted recording schema: one Session per
// sensor run, a Tick row per annotation pass and a Frame row per rendered
// capture. The same structs back the GORM, memory and streaming backends.
package model

import (
	"time"

	"gorm.io/datatypes"
)

// Session is one recording of the visualization sensor, from attach to
// shutdown.
type Session struct {
	ID        uint `json:"id" gorm:"primarykey"`
	StartTime time.Time
	EndTime   *time.Time

	MapName       string `gorm:"size:127"`
	SensorVersion string `gorm:"size:64"`

	CaptureWidth  int
	CaptureHeight int
	FOV           float64

	// Map anchor, WGS84 plus the projected EPSG:3857 equivalent.
	Latitude  float64
	Longitude float64
	Easting   float64
	Northing  float64

	// Snapshot of the render configuration the session ran with.
	RenderSettings datatypes.JSON

	Ticks  []Tick  `gorm:"foreignkey:SessionID"`
	Frames []Frame `gorm:"foreignkey:SessionID"`
}

// Tick records the outcome of one annotation pass.
type Tick struct {
	ID        uint `json:"id" gorm:"primarykey"`
	SessionID uint `gorm:"index:idx_tick_session"`

	Tick uint64 `gorm:"index:idx_tick_session"`
	Time time.Time

	Objects    int
	StopLines  int
	Splines    int
	Crosswalks int
	Stencils   int

	DynamicLines     int
	PersistentLines  int
	PersistentMeshes int

	FrameRequested bool
	FrameDropped   bool

	CameraX float32
	CameraY float32
	CameraZ float32

	// Camera track in EPSG:3857, derived from the session anchor so the
	// viewer can plot the path on a map without projecting.
	CameraEasting  float64
	CameraNorthing float64
}

// Frame records a rendered capture written to disk.
type Frame struct {
	ID        uint `json:"id" gorm:"primarykey"`
	SessionID uint `gorm:"index"`

	Tick   uint64
	Time   time.Time
	Path   string `gorm:"size:512"`
	Width  int
	Height int
}

// DatabaseModels lists every model migrated by the GORM backends.
var DatabaseModels = []any{
	&Session{},
	&Tick{},
	&Frame{},
}
