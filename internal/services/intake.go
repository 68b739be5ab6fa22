package services

import (
	"fmt"
	"strings"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
	"fwd/internal/notify"
	"fwd/internal/repositories"
	"fwd/internal/utils"
)

// ExtractionPayload is the output shape of the external email parser.
type ExtractionPayload struct {
	Type     string          `json:"type"`
	Segments []ParsedSegment `json:"segments"`
}

// IntakeResult summarizes what one extraction batch changed. An
// all-duplicate or all-rejected batch comes back with SegmentsAdded 0 and no
// error, which callers present as an explicit "nothing changed".
type IntakeResult struct {
	SegmentsAdded     int    `json:"segments_added"`
	DuplicatesSkipped int    `json:"duplicates_skipped"`
	SegmentsRejected  int    `json:"segments_rejected"`
	TripID            int64  `json:"trip_id,omitempty"`
	TripName          string `json:"trip_name,omitempty"`
	TripCreated       bool   `json:"trip_created,omitempty"`
	GroupingFailed    bool   `json:"grouping_failed,omitempty"`
}

// IntakeService persists extracted segments and routes them into trips.
type IntakeService struct {
	StepRepo  repositories.StepRepository
	TripRepo  repositories.TripRepository
	Notifier  notify.Notifier
	RequestID string
}

// ProcessExtraction runs one forwarded email's worth of segments through
// normalization, duplicate detection, insert, and incremental assignment.
//
// Failure semantics: an unparseable extraction is an ExtractionError with no
// side effects; an invalid segment rejects only itself; duplicates are
// counted, not errors; and a grouping failure after insert is non-fatal, the
// steps stay persisted with a null trip_id for a later regroup to repair.
func (s IntakeService) ProcessExtraction(userID int64, payload ExtractionPayload) (IntakeResult, error) {
	bookingType := strings.ToLower(strings.TrimSpace(payload.Type))
	if bookingType == "unknown" || len(payload.Segments) == 0 {
		if s.Notifier != nil {
			s.Notifier.ParsingFailed(userID)
		}
		return IntakeResult{}, domain.ExtractionError{}
	}
	if !models.ValidStepType(bookingType) {
		if s.Notifier != nil {
			s.Notifier.ParsingFailed(userID)
		}
		return IntakeResult{}, domain.ExtractionError{Msg: "unrecognized travel type " + payload.Type}
	}

	var result IntakeResult
	var inserted []models.TravelStep
	for _, seg := range payload.Segments {
		step, err := NormalizeSegment(userID, bookingType, seg)
		if err != nil {
			result.SegmentsRejected++
			utils.LogEvent(s.RequestID, "intake", "segment_rejected", err.Error())
			continue
		}
		dup, err := s.StepRepo.ExistsDuplicate(userID, step.Type, step.StartDateTime, step.OriginName)
		if err != nil {
			return result, domain.InternalError{Msg: "duplicate check failed", Err: err}
		}
		if dup {
			result.DuplicatesSkipped++
			continue
		}
		id, err := s.StepRepo.Insert(step)
		if err != nil {
			return result, domain.InternalError{Msg: "saving travel step failed", Err: err}
		}
		step.ID = id
		inserted = append(inserted, step)
	}

	result.SegmentsAdded = len(inserted)
	if len(inserted) == 0 {
		utils.LogEvent(s.RequestID, "intake", "nothing_changed",
			fmt.Sprintf("user_id=%d duplicates=%d rejected=%d", userID, result.DuplicatesSkipped, result.SegmentsRejected))
		return result, nil
	}

	assigner := AssignerService{StepRepo: s.StepRepo, TripRepo: s.TripRepo, RequestID: s.RequestID}
	assigned, err := assigner.AssignNewSteps(userID, inserted)
	if err != nil {
		// Steps are saved; only the trip routing failed.
		result.GroupingFailed = true
		utils.LogEvent(s.RequestID, "intake", "grouping_failed", err.Error())
	} else {
		result.TripID = assigned.TripID
		result.TripName = assigned.TripName
		result.TripCreated = assigned.Created
	}

	if s.Notifier != nil {
		s.Notifier.TravelAdded(notify.Outcome{
			UserID:            userID,
			TripName:          result.TripName,
			SegmentsAdded:     result.SegmentsAdded,
			DuplicatesSkipped: result.DuplicatesSkipped,
		})
	}
	return result, nil
}
