package services

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"fwd/internal/domain/models"
	"fwd/internal/repositories"
	"fwd/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ItineraryService renders a trip and its steps as a printable PDF.
type ItineraryService struct {
	StepRepo  repositories.StepRepository
	TripRepo  repositories.TripRepository
	RequestID string
	Loader    func(tripID, userID int64) (models.Trip, []models.TravelStep, error)
}

// GenerateItinerary builds the PDF for one trip. Times stay in each step's
// local zone, overnight flights get a "+N day" marker, and consecutive
// same-day stops show a walking/driving distance label when coordinates are
// known.
func (s ItineraryService) GenerateItinerary(tripID, userID int64) ([]byte, string, error) {
	trip, steps, err := s.load(tripID, userID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "itinerary", "generate", fmt.Sprintf("trip_id=%d steps=%d", tripID, len(steps)))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(trip.Name, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, trip.Name)
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, tripDatesLine(trip, steps))
	pdf.Ln(10)

	lastDate := ""
	var prev *models.TravelStep
	for i := range steps {
		step := steps[i]
		dateKey := utils.ExtractDateKey(step.StartDateTime)
		if dateKey != lastDate {
			pdf.SetFont("Helvetica", "B", 12)
			pdf.Cell(0, 8, dateKey)
			pdf.Ln(8)
			lastDate = dateKey
			prev = nil
		}

		if prev != nil {
			if label, ok := connectorLabel(*prev, step); ok {
				pdf.SetFont("Helvetica", "I", 9)
				pdf.Cell(0, 5, "    "+label)
				pdf.Ln(5)
			}
		}

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, stepLine(step), "", "", false)
		for _, extra := range stepDetails(step) {
			pdf.SetFont("Helvetica", "", 9)
			pdf.Cell(0, 5, "    "+extra)
			pdf.Ln(5)
		}
		pdf.Ln(2)
		prev = &steps[i]
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ITINERARY_%d_%s.pdf", trip.ID, safeFilenamePart(trip.Name))
	return buf.Bytes(), filename, nil
}

func (s ItineraryService) load(tripID, userID int64) (models.Trip, []models.TravelStep, error) {
	if s.Loader != nil {
		return s.Loader(tripID, userID)
	}
	trip, err := s.TripRepo.GetByID(tripID, userID)
	if err != nil {
		return trip, nil, err
	}
	steps, err := s.StepRepo.ListByTrip(tripID)
	return trip, steps, err
}

func tripDatesLine(trip models.Trip, steps []models.TravelStep) string {
	line := fmt.Sprintf("%s - %s", trip.StartDate, trip.EndDate)
	if len(steps) > 0 {
		if nights, ok := utils.DaysBetween(steps[0].StartDateTime, steps[len(steps)-1].EndOrStart()); ok && nights > 0 {
			plural := "s"
			if nights == 1 {
				plural = ""
			}
			line += fmt.Sprintf("  (%d night%s)", nights, plural)
		}
	}
	return line
}

// stepLine is the one-line summary: time, type, locations, overnight marker.
func stepLine(step models.TravelStep) string {
	var b strings.Builder
	if clock := utils.FormatClock(step.StartDateTime); clock != "" {
		b.WriteString(clock + "  ")
	}
	b.WriteString(typeLabel(step.Type) + ": " + step.OriginName)
	if step.DestinationName != "" {
		b.WriteString(" -> " + step.DestinationName)
	}
	if step.EndDateTime != "" {
		if off, ok := utils.DayOffset(step.StartDateTime, step.EndDateTime); ok && off > 0 {
			b.WriteString(fmt.Sprintf(" (+%d day)", off))
		}
	}
	return b.String()
}

func stepDetails(step models.TravelStep) []string {
	var out []string
	if step.CarrierName != "" {
		out = append(out, step.CarrierName)
	}
	if step.Type == models.TypeFlight {
		if shift, ok := timezoneShiftHours(step); ok && shift != 0 {
			out = append(out, fmt.Sprintf("Timezone change: %+g hr", shift))
		}
		if step.OriginTerminal != "" || step.OriginGate != "" {
			out = append(out, strings.TrimSpace(fmt.Sprintf("Terminal %s Gate %s", step.OriginTerminal, step.OriginGate)))
		}
	}
	if step.EndDateTime != "" && step.Type == models.TypeFlight {
		if mins, ok := utils.ElapsedMinutes(step.StartDateTime, step.EndDateTime); ok {
			out = append(out, fmt.Sprintf("Duration: %dh %02dm", mins/60, mins%60))
		}
	}
	if step.ConfirmationNumber != "" {
		out = append(out, "Conf: "+step.ConfirmationNumber)
	}
	return out
}

// timezoneShiftHours is the offset delta between a flight's arrival and
// departure strings, e.g. SFO->EWR is +3.
func timezoneShiftHours(step models.TravelStep) (float64, bool) {
	dep, okD := utils.ExtractOffsetHours(step.StartDateTime)
	arr, okA := utils.ExtractOffsetHours(step.EndDateTime)
	if !okD || !okA {
		return 0, false
	}
	return arr - dep, true
}

// connectorLabel describes the hop between two consecutive same-day stops.
// Sub-threshold distances are suppressed entirely rather than shown as a
// noisy "0 mi".
func connectorLabel(prev, next models.TravelStep) (string, bool) {
	lat1, lng1 := utils.CoordOrZero(prev.DestinationLat), utils.CoordOrZero(prev.DestinationLng)
	if lat1 == 0 || lng1 == 0 {
		lat1, lng1 = utils.CoordOrZero(prev.OriginLat), utils.CoordOrZero(prev.OriginLng)
	}
	lat2, lng2 := utils.CoordOrZero(next.OriginLat), utils.CoordOrZero(next.OriginLng)

	miles, ok := utils.HaversineMiles(lat1, lng1, lat2, lng2)
	if !ok || miles < utils.SuppressDistanceMiles {
		return "", false
	}
	return utils.ClassifyDistance(miles).Label + " to next stop", true
}

func typeLabel(t string) string {
	switch t {
	case models.TypeFlight:
		return "Flight"
	case models.TypeHotel:
		return "Stay"
	case models.TypeCar:
		return "Rental Car"
	case models.TypeTrain:
		return "Train"
	case models.TypeBus:
		return "Bus"
	case models.TypeFerry:
		return "Ferry"
	case models.TypeRestaurant:
		return "Dinner"
	default:
		return "Activity"
	}
}

var unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func safeFilenamePart(s string) string {
	out := unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.Trim(out, "_")
}
