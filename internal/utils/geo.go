package utils

import (
	"fmt"
	"math"
	"net/url"
)

const (
	earthRadiusMiles = 3959

	// SuppressDistanceMiles hides connector labels between co-located stops.
	SuppressDistanceMiles = 0.05

	shortWalkMiles = 0.3
)

// HaversineMiles computes the great-circle distance between two points.
// ok is false when any coordinate is missing; a literal zero is treated as
// missing too, since upstream geocoding emits 0,0 for unknown locations.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) (float64, bool) {
	if lat1 == 0 || lng1 == 0 || lat2 == 0 || lng2 == 0 {
		return 0, false
	}
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c, true
}

func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// DistanceLabel is the display classification of a step-to-step distance.
type DistanceLabel struct {
	Label     string `json:"label"`
	ShortWalk bool   `json:"short_walk"`
}

// ClassifyDistance buckets a distance for display: "Short walk" under 0.3 mi,
// one decimal under a mile, rounded above.
func ClassifyDistance(miles float64) DistanceLabel {
	if miles < shortWalkMiles {
		return DistanceLabel{Label: "Short walk", ShortWalk: true}
	}
	if miles < 1 {
		return DistanceLabel{Label: fmt.Sprintf("~%.1f mi", miles)}
	}
	return DistanceLabel{Label: fmt.Sprintf("~%d mi", int(math.Round(miles)))}
}

// DirectionsURL builds a Google Maps directions link, preferring coordinates
// and falling back to place names.
func DirectionsURL(originLat, originLng, destLat, destLng float64, originName, destName string) string {
	if originLat != 0 && originLng != 0 && destLat != 0 && destLng != 0 {
		return fmt.Sprintf("https://www.google.com/maps/dir/%v,%v/%v,%v", originLat, originLng, destLat, destLng)
	}
	return fmt.Sprintf("https://www.google.com/maps/dir/%s/%s",
		url.QueryEscape(originName), url.QueryEscape(destName))
}

// LocationURL builds a Google Maps search link for a single place. Name plus
// address gives the best hit rate for businesses; bare coordinates are the
// last resort.
func LocationURL(lat, lng float64, placeName, address string) string {
	switch {
	case placeName != "" && address != "" && placeName != address:
		return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(placeName+", "+address)
	case address != "":
		return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(address)
	case placeName != "":
		return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(placeName)
	case lat != 0 && lng != 0:
		return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", lat, lng)
	}
	return ""
}

// CoordOrZero unwraps an optional coordinate.
func CoordOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
