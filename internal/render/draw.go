package render

import (
	"github.com/chewxy/math32"

	"github.com/cosmosviz/sensor/pkg/core"
)

// capsuleSides is the tessellation used for capsule circles and caps.
const capsuleSides = 16

// Batcher routes draw calls into the dynamic or persistent batch. All draw
// entry points are no-ops in headless mode (dedicated server without a
// visual client).
type Batcher struct {
	dynamic    Batch
	persistent Batch
	headless   bool
}

// NewBatcher returns a batcher. When headless is true every draw call is
// dropped.
func NewBatcher(headless bool) *Batcher {
	return &Batcher{headless: headless}
}

// SetHeadless toggles headless mode at runtime.
func (d *Batcher) SetHeadless(headless bool) {
	d.headless = headless
}

// FlushDynamic clears the per-tick batch.
func (d *Batcher) FlushDynamic() {
	d.dynamic.Flush()
}

// Dynamic returns the per-tick batch.
func (d *Batcher) Dynamic() *Batch {
	return &d.dynamic
}

// Persistent returns the lifetime batch.
func (d *Batcher) Persistent() *Batch {
	return &d.persistent
}

func (d *Batcher) batch(persistent bool) *Batch {
	if persistent {
		return &d.persistent
	}
	return &d.dynamic
}

// DrawLine batches a single line.
func (d *Batcher) DrawLine(start, end core.Vector3, color core.Color, persistent bool, depth uint8, thickness float32) {
	if d.headless {
		return
	}
	d.batch(persistent).AddLines(Line{Start: start, End: end, Color: color, Thickness: thickness, Depth: depth})
}

// boxEdges are the 12 edges of a unit box given as corner sign pairs.
var boxEdges = [12][2]core.Vector3{
	{{X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: 1}},
	{{X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}},
	{{X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}},
	{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}},
	{{X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: -1}},
	{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}},
	{{X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}},
	{{X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}},
	{{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}},
	{{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}},
	{{X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1}},
	{{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}},
}

// DrawBox batches the 12 edges of an oriented box outline.
func (d *Batcher) DrawBox(center, extent core.Vector3, rotation core.Quat, color core.Color, persistent bool, depth uint8, thickness float32) {
	if d.headless {
		return
	}
	lines := make([]Line, 0, len(boxEdges))
	for _, e := range boxEdges {
		start := rotation.Rotate(core.Vector3{X: e[0].X * extent.X, Y: e[0].Y * extent.Y, Z: e[0].Z * extent.Z})
		end := rotation.Rotate(core.Vector3{X: e[1].X * extent.X, Y: e[1].Y * extent.Y, Z: e[1].Z * extent.Z})
		lines = append(lines, Line{
			Start:     center.Add(start),
			End:       center.Add(end),
			Color:     color,
			Thickness: thickness,
			Depth:     depth,
		})
	}
	d.batch(persistent).AddLines(lines...)
}

// boxCorners are the 8 corners of a unit box, ordered bottom face then top.
var boxCorners = [8]core.Vector3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// boxTriangles index boxCorners into 12 triangles, two per face.
var boxTriangles = []int32{
	0, 2, 1, 0, 3, 2, // bottom
	4, 5, 6, 4, 6, 7, // top
	0, 1, 5, 0, 5, 4, // front
	2, 3, 7, 2, 7, 6, // back
	1, 2, 6, 1, 6, 5, // right
	3, 0, 4, 3, 4, 7, // left
}

// DrawSolidBox batches an oriented filled box as a triangle mesh.
func (d *Batcher) DrawSolidBox(center, extent core.Vector3, rotation core.Quat, color core.Color, persistent bool, depth uint8) {
	if d.headless {
		return
	}
	verts := make([]core.Vector3, len(boxCorners))
	for i, c := range boxCorners {
		local := core.Vector3{X: c.X * extent.X, Y: c.Y * extent.Y, Z: c.Z * extent.Z}
		verts[i] = center.Add(rotation.Rotate(local))
	}
	indices := make([]int32, len(boxTriangles))
	copy(indices, boxTriangles)
	d.batch(persistent).AddMesh(Mesh{Vertices: verts, Indices: indices, Color: color, Depth: depth})
}

// DrawMesh batches a filled triangle mesh.
func (d *Batcher) DrawMesh(vertices []core.Vector3, indices []int32, color core.Color, persistent bool, depth uint8) {
	if d.headless {
		return
	}
	d.batch(persistent).AddMesh(Mesh{Vertices: vertices, Indices: indices, Color: color, Depth: depth})
}

// DrawCapsule batches a wireframe vertical capsule: top and bottom circles,
// four half-circle caps and four connecting lines.
func (d *Batcher) DrawCapsule(center core.Vector3, halfHeight, radius float32, rotation core.Quat, color core.Color, persistent bool, depth uint8, thickness float32) {
	if d.headless {
		return
	}

	xAxis := rotation.Forward()
	yAxis := rotation.Right()
	zAxis := rotation.Up()

	halfAxis := math32.Max(halfHeight-radius, 1)
	topEnd := center.Add(zAxis.Scale(halfAxis))
	bottomEnd := center.Sub(zAxis.Scale(halfAxis))

	d.drawCircle(topEnd, xAxis, yAxis, color, radius, capsuleSides, persistent, depth, thickness)
	d.drawCircle(bottomEnd, xAxis, yAxis, color, radius, capsuleSides, persistent, depth, thickness)

	// Domed caps
	d.drawHalfCircle(topEnd, yAxis, zAxis, color, radius, capsuleSides, persistent, depth, thickness)
	d.drawHalfCircle(topEnd, xAxis, zAxis, color, radius, capsuleSides, persistent, depth, thickness)

	negZ := zAxis.Scale(-1)
	d.drawHalfCircle(bottomEnd, yAxis, negZ, color, radius, capsuleSides, persistent, depth, thickness)
	d.drawHalfCircle(bottomEnd, xAxis, negZ, color, radius, capsuleSides, persistent, depth, thickness)

	d.DrawLine(topEnd.Add(xAxis.Scale(radius)), bottomEnd.Add(xAxis.Scale(radius)), color, persistent, depth, thickness)
	d.DrawLine(topEnd.Sub(xAxis.Scale(radius)), bottomEnd.Sub(xAxis.Scale(radius)), color, persistent, depth, thickness)
	d.DrawLine(topEnd.Add(yAxis.Scale(radius)), bottomEnd.Add(yAxis.Scale(radius)), color, persistent, depth, thickness)
	d.DrawLine(topEnd.Sub(yAxis.Scale(radius)), bottomEnd.Sub(yAxis.Scale(radius)), color, persistent, depth, thickness)
}

func (d *Batcher) drawCircle(base, x, y core.Vector3, color core.Color, radius float32, sides int, persistent bool, depth uint8, thickness float32) {
	angleDelta := 2 * math32.Pi / float32(sides)
	last := base.Add(x.Scale(radius))
	for i := 0; i < sides; i++ {
		a := angleDelta * float32(i+1)
		vertex := base.Add(x.Scale(math32.Cos(a) * radius)).Add(y.Scale(math32.Sin(a) * radius))
		d.DrawLine(last, vertex, color, persistent, depth, thickness)
		last = vertex
	}
}

func (d *Batcher) drawHalfCircle(base, x, y core.Vector3, color core.Color, radius float32, sides int, persistent bool, depth uint8, thickness float32) {
	angleDelta := 2 * math32.Pi / float32(sides)
	last := base.Add(x.Scale(radius))
	for i := 0; i < sides/2; i++ {
		a := angleDelta * float32(i+1)
		vertex := base.Add(x.Scale(math32.Cos(a) * radius)).Add(y.Scale(math32.Sin(a) * radius))
		d.DrawLine(last, vertex, color, persistent, depth, thickness)
		last = vertex
	}
}
