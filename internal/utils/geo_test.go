package utils

import (
	"math"
	"strings"
	"testing"
)

func TestHaversineMilesKnownRoute(t *testing.T) {
	// LAX to JFK, roughly 2469 miles.
	miles, ok := HaversineMiles(33.9416, -118.4085, 40.6413, -73.7781)
	if !ok {
		t.Fatalf("expected ok")
	}
	if math.Abs(miles-2469) > 15 {
		t.Fatalf("got %.1f miles, want about 2469", miles)
	}
}

func TestHaversineMissingCoordinates(t *testing.T) {
	if _, ok := HaversineMiles(0, -118.4, 40.6, -73.7); ok {
		t.Fatalf("zero latitude must count as missing")
	}
	if _, ok := HaversineMiles(33.9, 0, 40.6, -73.7); ok {
		t.Fatalf("zero longitude must count as missing")
	}
}

func TestHaversineColocatedUnderSuppression(t *testing.T) {
	// Two doors on the same block.
	miles, ok := HaversineMiles(40.7484, -73.9857, 40.7486, -73.9857)
	if !ok {
		t.Fatalf("expected ok")
	}
	if miles >= SuppressDistanceMiles {
		t.Fatalf("got %.4f miles, want under suppression threshold %v", miles, SuppressDistanceMiles)
	}
}

func TestClassifyDistance(t *testing.T) {
	cases := []struct {
		miles     float64
		label     string
		shortWalk bool
	}{
		{0.1, "Short walk", true},
		{0.29, "Short walk", true},
		{0.6, "~0.6 mi", false},
		{12.4, "~12 mi", false},
	}
	for _, c := range cases {
		got := ClassifyDistance(c.miles)
		if got.Label != c.label || got.ShortWalk != c.shortWalk {
			t.Fatalf("ClassifyDistance(%v) = %+v want %q short_walk=%v", c.miles, got, c.label, c.shortWalk)
		}
	}
}

func TestDirectionsURLPrefersCoordinates(t *testing.T) {
	u := DirectionsURL(33.9416, -118.4085, 40.6413, -73.7781, "LAX", "JFK")
	if !strings.Contains(u, "33.9416,-118.4085/40.6413,-73.7781") {
		t.Fatalf("coordinate form missing: %s", u)
	}
}

func TestDirectionsURLFallsBackToNames(t *testing.T) {
	u := DirectionsURL(0, 0, 0, 0, "Grand Central Terminal", "Penn Station")
	if !strings.Contains(u, "Grand+Central+Terminal") || !strings.Contains(u, "Penn+Station") {
		t.Fatalf("name fallback missing: %s", u)
	}
}

func TestLocationURLPrecedence(t *testing.T) {
	u := LocationURL(40.7, -73.9, "Ace Hotel", "20 W 29th St, New York, NY 10001")
	if !strings.Contains(u, "Ace+Hotel%2C+20+W+29th+St") {
		t.Fatalf("name+address form expected, got %s", u)
	}

	u = LocationURL(40.7, -73.9, "", "")
	if !strings.Contains(u, "query=40.7,-73.9") {
		t.Fatalf("coordinate fallback expected, got %s", u)
	}

	if u := LocationURL(0, 0, "", ""); u != "" {
		t.Fatalf("nothing to link should yield empty, got %s", u)
	}
}
