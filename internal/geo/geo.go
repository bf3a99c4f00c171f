// Package geo anchors the local scene frame to geographic coordinates.
//
// Recordings always store the map anchor as EPSG:3857 so downstream tools
// can interpret positions without spatial awareness in the database layer.
package geo

import (
	"errors"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"

	"github.com/cosmosviz/sensor/pkg/core"
)

// centimetersPerMeter converts scene units to meters.
const centimetersPerMeter = 100

// ErrInvalidCoordinates is returned when the coordinates are invalid.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// ProjectAnchor converts a WGS84 map anchor to EPSG:3857 easting/northing.
func ProjectAnchor(ref core.GeoReference) (easting, northing float64) {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	easting, northing, _ = f(ref.Longitude, ref.Latitude, 0)
	return easting, northing
}

// AnchorPoint builds an EPSG:3857 point for the map anchor.
func AnchorPoint(ref core.GeoReference) (geom.Point, error) {
	easting, northing := ProjectAnchor(ref)
	return geom.NewPoint(geom.Coordinates{
		XY: geom.XY{X: easting, Y: northing},
	})
}

// LocalToWebMercator converts a scene-local position (centimeters, y grows
// south) into EPSG:3857 coordinates relative to the map anchor.
func LocalToWebMercator(ref core.GeoReference, p core.Vector3) (x, y float64) {
	easting, northing := ProjectAnchor(ref)
	x = easting + float64(p.X)/centimetersPerMeter
	y = northing - float64(p.Y)/centimetersPerMeter
	return x, y
}
