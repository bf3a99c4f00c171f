package capture

import (
	"math"

	"github.com/cosmosviz/sensor/pkg/core"
)

// nearClip rejects geometry behind or touching the image plane.
const nearClip = 1.0

// Camera is a pinhole projection model matching the sensor's configured
// output resolution and horizontal field of view.
type Camera struct {
	Width  int
	Height int
	FOV    float64 // horizontal, degrees
}

// FocalLength returns the focal length in pixels derived from the
// horizontal field of view.
func (c Camera) FocalLength() float64 {
	return float64(c.Width) / (2 * math.Tan(c.FOV*math.Pi/360))
}

// Project maps a world-space point into pixel coordinates for the given
// camera pose. The pose forward axis looks into the scene, right maps to +x
// on screen and up maps to -y. Returns ok=false for points at or behind the
// near plane.
func (c Camera) Project(pose core.Transform, p core.Vector3) (x, y float64, ok bool) {
	d := p.Sub(pose.Location)

	forward := pose.Rotation.Forward()
	right := pose.Rotation.Right()
	up := pose.Rotation.Up()

	depth := float64(d.Dot(forward))
	if depth < nearClip {
		return 0, 0, false
	}

	focal := c.FocalLength()
	x = float64(c.Width)/2 + float64(d.Dot(right))/depth*focal
	y = float64(c.Height)/2 - float64(d.Dot(up))/depth*focal
	return x, y, true
}

// StrokeWidth converts a world-space line thickness at the given depth into
// a screen-space stroke width, clamped to at least one pixel.
func (c Camera) StrokeWidth(thickness float32, depth float64) float64 {
	if depth < nearClip {
		depth = nearClip
	}
	w := float64(thickness) / depth * c.FocalLength()
	return math.Max(w, 1)
}

// Depth returns the view-space depth of a world point for the given pose.
func (c Camera) Depth(pose core.Transform, p core.Vector3) float64 {
	return float64(p.Sub(pose.Location).Dot(pose.Rotation.Forward()))
}
