package services

import (
	"fmt"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
	"fwd/internal/repositories"
	"fwd/internal/utils"
)

// AssignerService routes newly inserted steps into an existing trip or a new
// one. It is the grouping heuristic applied incrementally instead of by full
// recompute.
type AssignerService struct {
	StepRepo  repositories.StepRepository
	TripRepo  repositories.TripRepository
	RequestID string
}

// AssignResult reports where a batch of new steps ended up.
type AssignResult struct {
	TripID   int64  `json:"trip_id"`
	TripName string `json:"trip_name"`
	Created  bool   `json:"trip_created"`
}

// AssignNewSteps places an already-persisted batch. An existing trip wins
// when the first new step's date lands within MaxGapDays of either trip
// boundary; trips are tried in stored order and the first match takes the
// whole batch (ties between overlapping windows are not broken further).
// Otherwise a fresh trip is created, named from the new steps alone.
func (s AssignerService) AssignNewSteps(userID int64, newSteps []models.TravelStep) (AssignResult, error) {
	if len(newSteps) == 0 {
		return AssignResult{}, domain.ValidationError{Field: "steps", Msg: "empty batch"}
	}

	sorted := sortByStart(newSteps)
	stepDate := utils.ExtractDateKey(sorted[0].StartDateTime)
	ids := make([]int64, 0, len(sorted))
	for _, st := range sorted {
		ids = append(ids, st.ID)
	}

	trips, err := s.TripRepo.ListByUser(userID)
	if err != nil {
		return AssignResult{}, domain.GroupingError{Msg: "listing trips failed", Err: err}
	}

	if stepDate != "" {
		for _, trip := range trips {
			if !withinGapWindow(trip, stepDate) {
				continue
			}
			if err := s.StepRepo.AssignTrip(ids, trip.ID); err != nil {
				return AssignResult{}, domain.GroupingError{Msg: "assigning steps failed", Err: err}
			}
			name, err := s.RefreshTrip(trip.ID)
			if err != nil {
				return AssignResult{}, err
			}
			utils.LogEvent(s.RequestID, "assigner", "join_trip",
				fmt.Sprintf("trip_id=%d steps=%d", trip.ID, len(ids)))
			return AssignResult{TripID: trip.ID, TripName: name}, nil
		}
	}

	name := TripName(sorted)
	startDate, endDate := DateRange(sorted)
	tripID, err := s.TripRepo.Insert(models.Trip{
		UserID:     userID,
		Name:       name,
		StartDate:  startDate,
		EndDate:    endDate,
		ShareToken: NewShareToken(),
	})
	if err != nil {
		return AssignResult{}, domain.GroupingError{Msg: "creating trip failed", Err: err}
	}
	if err := s.StepRepo.AssignTrip(ids, tripID); err != nil {
		return AssignResult{}, domain.GroupingError{Msg: "assigning steps failed", Err: err}
	}
	utils.LogEvent(s.RequestID, "assigner", "create_trip",
		fmt.Sprintf("trip_id=%d steps=%d name=%s", tripID, len(ids), name))
	return AssignResult{TripID: tripID, TripName: name, Created: true}, nil
}

// RefreshTrip recomputes a trip's name and date range from its current full
// membership; a trip left with no members is deleted. Every path that
// changes membership funnels through here so the displayed name never
// drifts from contents.
func (s AssignerService) RefreshTrip(tripID int64) (string, error) {
	steps, err := s.StepRepo.ListByTrip(tripID)
	if err != nil {
		return "", domain.GroupingError{Msg: "loading trip members failed", Err: err}
	}
	if len(steps) == 0 {
		if err := s.TripRepo.Delete(tripID); err != nil {
			return "", domain.GroupingError{Msg: "deleting empty trip failed", Err: err}
		}
		utils.LogEvent(s.RequestID, "assigner", "delete_empty_trip", fmt.Sprintf("trip_id=%d", tripID))
		return "", nil
	}
	name := TripName(steps)
	startDate, endDate := DateRange(steps)
	if err := s.TripRepo.UpdateNameAndRange(tripID, name, startDate, endDate); err != nil {
		return "", domain.GroupingError{Msg: "updating trip failed", Err: err}
	}
	return name, nil
}

// withinGapWindow reports whether a date key falls inside
// [start-MaxGapDays, end+MaxGapDays] for the trip.
func withinGapWindow(trip models.Trip, stepDate string) bool {
	fromStart, okS := utils.DateKeyDiff(trip.StartDate, stepDate)
	fromEnd, okE := utils.DateKeyDiff(trip.EndDate, stepDate)
	if !okS || !okE {
		return false
	}
	return fromStart >= -MaxGapDays && fromEnd <= MaxGapDays
}
