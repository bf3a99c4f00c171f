// Package render implements the debug line batches the sensor draws into.
// Two batches exist per sensor: a dynamic one flushed at the start of every
// tick and a persistent one that accumulates for the sensor's lifetime.
package render

import "github.com/cosmosviz/sensor/pkg/core"

// DepthWorld is the scene depth priority group annotations are drawn at.
const DepthWorld uint8 = 1

// Line is a single batched line primitive.
type Line struct {
	Start     core.Vector3
	End       core.Vector3
	Color     core.Color
	Thickness float32
	Depth     uint8
}

// Mesh is a batched filled triangle mesh primitive.
type Mesh struct {
	Vertices []core.Vector3
	Indices  []int32
	Color    core.Color
	Depth    uint8
}

// Batch is an append-only collection of drawable primitives. Owned by a
// single sensor instance and touched only from the simulation goroutine.
type Batch struct {
	lines  []Line
	meshes []Mesh
}

// AddLines appends line primitives.
func (b *Batch) AddLines(lines ...Line) {
	b.lines = append(b.lines, lines...)
}

// AddMesh appends a mesh primitive.
func (b *Batch) AddMesh(m Mesh) {
	b.meshes = append(b.meshes, m)
}

// Flush drops all primitives, retaining capacity.
func (b *Batch) Flush() {
	b.lines = b.lines[:0]
	b.meshes = b.meshes[:0]
}

// Lines returns a copy of the batched lines.
func (b *Batch) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Meshes returns a copy of the batched meshes.
func (b *Batch) Meshes() []Mesh {
	out := make([]Mesh, len(b.meshes))
	copy(out, b.meshes)
	return out
}

// Len returns the number of batched primitives.
func (b *Batch) Len() int {
	return len(b.lines) + len(b.meshes)
}
