package services

import (
	"strings"
	"testing"

	"fwd/internal/domain/models"
)

func TestGenerateItinerary(t *testing.T) {
	hotelLat, hotelLng := 30.2639, -97.7384
	barLat, barLng := 30.2701, -97.7313

	loader := func(tripID, userID int64) (models.Trip, []models.TravelStep, error) {
		trip := models.Trip{ID: tripID, UserID: userID, Name: "Austin", StartDate: "2025-11-19", EndDate: "2025-11-21"}
		flight := step(1, models.TypeFlight, "2025-11-19T08:00:00-05:00", "2025-11-19T11:30:00-06:00", "New York (JFK)", "Austin (AUS)")
		flight.CarrierName = "Delta"
		flight.ConfirmationNumber = "ABC123"
		hotel := hotelStep(2, "2025-11-19T15:00:00-06:00", "2025-11-21T11:00:00-06:00", "Hilton Austin", "500 E 4th St, Austin, TX 78701")
		hotel.OriginLat, hotel.OriginLng = &hotelLat, &hotelLng
		dinner := step(3, models.TypeRestaurant, "2025-11-19T19:00:00-06:00", "", "Moonshine Grill", "")
		dinner.OriginLat, dinner.OriginLng = &barLat, &barLng
		return trip, []models.TravelStep{flight, hotel, dinner}, nil
	}

	svc := ItineraryService{Loader: loader}
	pdf, filename, err := svc.GenerateItinerary(5, 9)
	if err != nil {
		t.Fatalf("GenerateItinerary returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatalf("empty PDF")
	}
	if filename != "ITINERARY_5_Austin.pdf" {
		t.Fatalf("got filename %q", filename)
	}
}

func TestStepLineOvernightMarker(t *testing.T) {
	s := step(1, models.TypeFlight, "2025-03-01T23:30:00-05:00", "2025-03-02T06:10:00+01:00", "New York (JFK)", "Paris (CDG)")
	line := stepLine(s)
	if !strings.Contains(line, "(+1 day)") {
		t.Fatalf("overnight marker missing: %q", line)
	}
	if !strings.Contains(line, "11:30 PM") {
		t.Fatalf("departure clock must stay local: %q", line)
	}
}

func TestStepDetailsTimezoneChange(t *testing.T) {
	s := step(1, models.TypeFlight, "2025-01-01T10:00:00-08:00", "2025-01-01T18:30:00-05:00", "San Francisco (SFO)", "Newark (EWR)")
	details := stepDetails(s)
	var found bool
	for _, d := range details {
		if d == "Timezone change: +3 hr" {
			found = true
		}
	}
	if !found {
		t.Fatalf("timezone change missing from %v", details)
	}
}

func TestConnectorLabelSuppressedWhenColocated(t *testing.T) {
	lat, lng := 30.2639, -97.7384
	a := step(1, models.TypeHotel, "2025-11-19T15:00:00-06:00", "", "Hilton Austin", "")
	a.OriginLat, a.OriginLng = &lat, &lng
	b := step(2, models.TypeRestaurant, "2025-11-19T19:00:00-06:00", "", "Hotel Bar", "")
	b.OriginLat, b.OriginLng = &lat, &lng

	if label, ok := connectorLabel(a, b); ok {
		t.Fatalf("identical coordinates should suppress the connector, got %q", label)
	}
}

func TestConnectorLabelShortWalk(t *testing.T) {
	aLat, aLng := 30.2639, -97.7384
	bLat, bLng := 30.2660, -97.7384
	a := step(1, models.TypeHotel, "2025-11-19T15:00:00-06:00", "", "Hilton Austin", "")
	a.OriginLat, a.OriginLng = &aLat, &aLng
	b := step(2, models.TypeRestaurant, "2025-11-19T19:00:00-06:00", "", "Moonshine Grill", "")
	b.OriginLat, b.OriginLng = &bLat, &bLng

	label, ok := connectorLabel(a, b)
	if !ok || !strings.Contains(label, "Short walk") {
		t.Fatalf("got %q,%v want a short-walk label", label, ok)
	}
}

func TestConnectorLabelMissingCoordinates(t *testing.T) {
	a := step(1, models.TypeHotel, "2025-11-19T15:00:00-06:00", "", "Hilton Austin", "")
	b := step(2, models.TypeRestaurant, "2025-11-19T19:00:00-06:00", "", "Moonshine Grill", "")
	if label, ok := connectorLabel(a, b); ok {
		t.Fatalf("no coordinates means no connector, got %q", label)
	}
}
