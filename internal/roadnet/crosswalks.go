// Package roadnet derives drawable geometry from the host road-network map:
// crosswalk polygons and road-surface stencils.
package roadnet

import (
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/cosmosviz/sensor/pkg/core"
)

// MapScale converts map units (meters) into engine world units (centimeters).
const MapScale float32 = 100

// Polygon is one closed crosswalk zone in world units.
type Polygon struct {
	Vertices []core.Vector3
}

// SplitCrosswalkZones consumes the flat point sequence returned by the map.
// A repeat of the current run's first point closes one polygon and the next
// point starts a new run. Runs with fewer than 3 vertices are dropped
// silently, as is a trailing run that never closes.
func SplitCrosswalkZones(points []core.Vector3) []Polygon {
	if len(points) == 0 {
		return nil
	}

	var polygons []Polygon
	first := points[0]
	current := []core.Vector3{first.Scale(MapScale)}

	for i := 1; i < len(points); i++ {
		if points[i] == first {
			if len(current) >= 3 {
				polygons = append(polygons, Polygon{Vertices: current})
			}
			current = nil
			// Start a new run if more points remain
			if i < len(points)-1 {
				i++
				first = points[i]
				current = []core.Vector3{first.Scale(MapScale)}
			}
		} else {
			current = append(current, points[i].Scale(MapScale))
		}
	}

	return polygons
}

// FanTriangles triangulates the polygon with a simple fan from vertex 0,
// producing n-2 triangles.
func (p Polygon) FanTriangles() []int32 {
	if len(p.Vertices) < 3 {
		return nil
	}
	indices := make([]int32, 0, (len(p.Vertices)-2)*3)
	for j := 1; j < len(p.Vertices)-1; j++ {
		indices = append(indices, 0, int32(j), int32(j+1))
	}
	return indices
}

// Geometry returns the polygon footprint as a closed 2D ring for area and
// validity checks on the recording side.
func (p Polygon) Geometry() (geom.Polygon, error) {
	if len(p.Vertices) < 3 {
		return geom.Polygon{}, fmt.Errorf("polygon needs at least 3 vertices, got %d", len(p.Vertices))
	}
	flat := make([]float64, 0, (len(p.Vertices)+1)*2)
	for _, v := range p.Vertices {
		flat = append(flat, float64(v.X), float64(v.Y))
	}
	// Close the ring
	flat = append(flat, float64(p.Vertices[0].X), float64(p.Vertices[0].Y))

	ring, err := geom.NewLineString(geom.NewSequence(flat, geom.DimXY))
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("invalid crosswalk ring: %w", err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("invalid crosswalk footprint: %w", err)
	}
	return poly, nil
}

// Area returns the 2D footprint area in world units squared, or 0 for
// degenerate footprints.
func (p Polygon) Area() float64 {
	poly, err := p.Geometry()
	if err != nil {
		return 0
	}
	return poly.Area()
}
