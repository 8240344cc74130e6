package spatial

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s2"
	"github.com/jengzang/accident-dashboard/internal/models"
	geom "github.com/twpayne/go-geom"
)

// EarthRadiusMeters is the mean Earth radius
const EarthRadiusMeters = 6371008.8

// earthCircumferenceMeters at the equator, used by the web-mercator zoom levels
const earthCircumferenceMeters = 40075016.686

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// PointsFromRecords extracts the record positions
func PointsFromRecords(records []models.Record) []Point {
	points := make([]Point, len(records))
	for i, r := range records {
		points[i] = Point{Lat: r.Latitude, Lon: r.Longitude}
	}
	return points
}

// Valid reports whether p is a real WGS84 position
func Valid(p Point) bool {
	return s2.LatLngFromDegrees(p.Lat, p.Lon).IsValid()
}

// Centroid returns the spherical centroid of the valid points. It is false
// when there is no valid point or the points cancel out.
func Centroid(points []Point) (Point, bool) {
	var sum r3.Vector
	n := 0
	for _, p := range points {
		if !Valid(p) {
			continue
		}
		sum = sum.Add(s2.PointFromLatLng(s2.LatLngFromDegrees(p.Lat, p.Lon)).Vector)
		n++
	}
	if n == 0 || sum.Norm() == 0 {
		return Point{}, false
	}

	ll := s2.LatLngFromPoint(s2.Point{Vector: sum.Normalize()})
	return Point{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}, true
}

// Bounds returns the lon/lat box around the valid points
func Bounds(points []Point) (models.Bounds, bool) {
	b := geom.NewBounds(geom.XY)
	for _, p := range points {
		if !Valid(p) {
			continue
		}
		b.Extend(geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}))
	}
	if b.IsEmpty() {
		return models.Bounds{}, false
	}
	return models.Bounds{
		MinLon: b.Min(0),
		MinLat: b.Min(1),
		MaxLon: b.Max(0),
		MaxLat: b.Max(1),
	}, true
}

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// ZoomForBounds picks the largest web-map zoom level whose world width
// still spans the box diagonal. Result is clamped to [1, 18].
func ZoomForBounds(b models.Bounds) int {
	span := HaversineDistance(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon)
	if span <= 0 {
		return 18
	}
	zoom := int(math.Floor(math.Log2(earthCircumferenceMeters / span)))
	return max(1, min(18, zoom))
}
