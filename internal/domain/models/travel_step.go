package models

import "strings"

// Step types accepted from the extraction collaborator.
const (
	TypeFlight     = "flight"
	TypeHotel      = "hotel"
	TypeCar        = "car"
	TypeTrain      = "train"
	TypeBus        = "bus"
	TypeFerry      = "ferry"
	TypeRestaurant = "restaurant"
	TypeActivity   = "activity"
)

// ValidStepType reports whether t is one of the known travel step types.
func ValidStepType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case TypeFlight, TypeHotel, TypeCar, TypeTrain, TypeBus, TypeFerry, TypeRestaurant, TypeActivity:
		return true
	}
	return false
}

// TravelStep is one atomic booked event on a user's timeline.
// Optional text fields use "" as the canonical absent value; coordinates and
// trip_id use nil. Datetimes are ISO-8601 strings carrying the local UTC
// offset of their respective location and are never re-rendered in the
// server's zone.
type TravelStep struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	TripID *int64 `json:"trip_id"`
	Type   string `json:"type"`

	StartDateTime string `json:"start_datetime"`
	EndDateTime   string `json:"end_datetime,omitempty"`

	OriginName     string   `json:"origin_name"`
	OriginAddress  string   `json:"origin_address,omitempty"`
	OriginTerminal string   `json:"origin_terminal,omitempty"`
	OriginGate     string   `json:"origin_gate,omitempty"`
	OriginLat      *float64 `json:"origin_lat,omitempty"`
	OriginLng      *float64 `json:"origin_lng,omitempty"`

	DestinationName     string   `json:"destination_name,omitempty"`
	DestinationAddress  string   `json:"destination_address,omitempty"`
	DestinationTerminal string   `json:"destination_terminal,omitempty"`
	DestinationGate     string   `json:"destination_gate,omitempty"`
	DestinationLat      *float64 `json:"destination_lat,omitempty"`
	DestinationLng      *float64 `json:"destination_lng,omitempty"`

	CarrierName        string `json:"carrier_name,omitempty"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`

	CreatedAt string `json:"created_at,omitempty"`
}

// EndOrStart returns end_datetime when present, else start_datetime.
// Gap detection and trip date ranges both run on this value.
func (s TravelStep) EndOrStart() string {
	if s.EndDateTime != "" {
		return s.EndDateTime
	}
	return s.StartDateTime
}
