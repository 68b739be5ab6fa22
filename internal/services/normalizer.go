package services

import (
	"strings"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
	"fwd/internal/utils"
)

// ParsedSegment is one segment in the shape the extraction collaborator
// produces. All fields arrive loosely typed; normalization decides what
// counts as present.
type ParsedSegment struct {
	StartDateTime       string   `json:"start_datetime"`
	EndDateTime         string   `json:"end_datetime"`
	OriginName          string   `json:"origin_name"`
	OriginAddress       string   `json:"origin_address"`
	OriginTerminal      string   `json:"origin_terminal"`
	OriginGate          string   `json:"origin_gate"`
	OriginLat           *float64 `json:"origin_lat"`
	OriginLng           *float64 `json:"origin_lng"`
	DestinationName     string   `json:"destination_name"`
	DestinationAddress  string   `json:"destination_address"`
	DestinationTerminal string   `json:"destination_terminal"`
	DestinationGate     string   `json:"destination_gate"`
	DestinationLat      *float64 `json:"destination_lat"`
	DestinationLng      *float64 `json:"destination_lng"`
	CarrierName         string   `json:"carrier_name"`
	ConfirmationNumber  string   `json:"confirmation_number"`
}

// NormalizeSegment turns an extracted segment into a canonical TravelStep.
// Optional text collapses to "" (never "" and a null flowing side by side),
// and 0,0 coordinates are dropped as missing. A segment without a
// start_datetime or origin_name is rejected; siblings in the batch still
// proceed.
func NormalizeSegment(userID int64, stepType string, seg ParsedSegment) (models.TravelStep, error) {
	start := strings.TrimSpace(seg.StartDateTime)
	origin := utils.NormalizeSpace(seg.OriginName)
	if start == "" {
		return models.TravelStep{}, domain.ValidationError{Field: "start_datetime", Msg: "required"}
	}
	if origin == "" {
		return models.TravelStep{}, domain.ValidationError{Field: "origin_name", Msg: "required"}
	}
	t := strings.ToLower(strings.TrimSpace(stepType))
	if !models.ValidStepType(t) {
		return models.TravelStep{}, domain.ValidationError{Field: "type", Msg: "unknown travel type " + stepType}
	}

	return models.TravelStep{
		UserID:        userID,
		Type:          t,
		StartDateTime: start,
		EndDateTime:   strings.TrimSpace(seg.EndDateTime),

		OriginName:     origin,
		OriginAddress:  utils.NormalizeSpace(seg.OriginAddress),
		OriginTerminal: strings.TrimSpace(seg.OriginTerminal),
		OriginGate:     strings.TrimSpace(seg.OriginGate),
		OriginLat:      coordOrNil(seg.OriginLat),
		OriginLng:      coordOrNil(seg.OriginLng),

		DestinationName:     utils.NormalizeSpace(seg.DestinationName),
		DestinationAddress:  utils.NormalizeSpace(seg.DestinationAddress),
		DestinationTerminal: strings.TrimSpace(seg.DestinationTerminal),
		DestinationGate:     strings.TrimSpace(seg.DestinationGate),
		DestinationLat:      coordOrNil(seg.DestinationLat),
		DestinationLng:      coordOrNil(seg.DestinationLng),

		CarrierName:        utils.NormalizeSpace(seg.CarrierName),
		ConfirmationNumber: strings.TrimSpace(seg.ConfirmationNumber),
	}, nil
}

// coordOrNil treats nil and 0 as the same missing coordinate. Upstream
// geocoding emits 0 for unknown, and 0,0 is open ocean, not a venue.
func coordOrNil(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}
