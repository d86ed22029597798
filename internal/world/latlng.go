package world

import "fmt"

// LatLng is a geographic point in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Add returns the point displaced by (dLat, dLng).
func (p LatLng) Add(dLat, dLng float64) LatLng {
	return LatLng{Lat: p.Lat + dLat, Lng: p.Lng + dLng}
}

func (p LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// Bounds is an axis-aligned lat/lng rectangle.
// South/West are inclusive, North/East exclusive.
type Bounds struct {
	South float64
	West  float64
	North float64
	East  float64
}

// SouthWest returns the lower corner.
func (b Bounds) SouthWest() LatLng { return LatLng{Lat: b.South, Lng: b.West} }

// NorthEast returns the upper corner.
func (b Bounds) NorthEast() LatLng { return LatLng{Lat: b.North, Lng: b.East} }

// Center returns the midpoint of the rectangle.
func (b Bounds) Center() LatLng {
	return LatLng{Lat: (b.South + b.North) / 2, Lng: (b.West + b.East) / 2}
}

// Contains reports whether p lies inside the half-open rectangle.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.South && p.Lat < b.North && p.Lng >= b.West && p.Lng < b.East
}
