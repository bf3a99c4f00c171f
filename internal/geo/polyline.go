package geo

import (
	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/cosmosviz/sensor/pkg/core"
)

// LineStringFromPoints builds a 2D line string from boundary spline points.
func LineStringFromPoints(points []core.Vector3) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, ErrInvalidCoordinates
	}

	flat := make([]float64, 0, len(points)*2)
	for _, p := range points {
		flat = append(flat, float64(p.X), float64(p.Y))
	}

	seq := geom.NewSequence(flat, geom.DimXY)
	return geom.NewLineString(seq)
}

// NetworkLength sums the 2D length of all boundary splines, in scene units.
func NetworkLength(splines []*core.BoundarySpline) float64 {
	total := 0.0
	for _, s := range splines {
		ls, err := LineStringFromPoints(s.Points)
		if err != nil {
			continue
		}
		total += ls.Length()
	}
	return total
}
