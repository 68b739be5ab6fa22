package services

import (
	"fmt"

	"fwd/internal/domain"
	"fwd/internal/domain/models"
	"fwd/internal/repositories"
	"fwd/internal/utils"
)

// RecomputeService rebuilds all of a user's trips from the full step
// history. Steps are never deleted by a regroup; they are detached, the old
// trips dropped, and fresh trips created around the grouper's partitions.
type RecomputeService struct {
	StepRepo  repositories.StepRepository
	TripRepo  repositories.TripRepository
	RequestID string
}

// RecomputedTrip is the summary of one freshly created trip.
type RecomputedTrip struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StepCount int    `json:"step_count"`
}

// RecomputeResult reports what the full regroup produced.
type RecomputeResult struct {
	StepCount int              `json:"step_count"`
	Trips     []RecomputedTrip `json:"trips"`
}

// Recompute runs the full pipeline for one user. A failure creating one trip
// is logged and skipped; the remaining groups still get their trips, and a
// later regroup repairs the gap. Regrouping the same step set twice yields
// the same partitions and names.
func (s RecomputeService) Recompute(userID int64) (RecomputeResult, error) {
	steps, err := s.StepRepo.ListByUser(userID)
	if err != nil {
		return RecomputeResult{}, domain.InternalError{Msg: "loading travel steps failed", Err: err}
	}
	if len(steps) == 0 {
		return RecomputeResult{}, nil
	}

	if err := s.StepRepo.ClearTripsForUser(userID); err != nil {
		return RecomputeResult{}, domain.GroupingError{Msg: "detaching steps failed", Err: err}
	}
	if err := s.TripRepo.DeleteByUser(userID); err != nil {
		return RecomputeResult{}, domain.GroupingError{Msg: "clearing old trips failed", Err: err}
	}

	groups := GroupSteps(steps)
	result := RecomputeResult{StepCount: len(steps)}
	for _, g := range groups {
		tripID, err := s.TripRepo.Insert(models.Trip{
			UserID:     userID,
			Name:       g.SuggestedName,
			StartDate:  g.StartDate,
			EndDate:    g.EndDate,
			ShareToken: NewShareToken(),
		})
		if err != nil {
			utils.LogEvent(s.RequestID, "recompute", "create_trip_failed", err.Error())
			continue
		}
		if err := s.StepRepo.AssignTrip(g.StepIDs, tripID); err != nil {
			utils.LogEvent(s.RequestID, "recompute", "assign_failed",
				fmt.Sprintf("trip_id=%d err=%v", tripID, err))
			continue
		}
		result.Trips = append(result.Trips, RecomputedTrip{
			ID:        tripID,
			Name:      g.SuggestedName,
			StartDate: g.StartDate,
			EndDate:   g.EndDate,
			StepCount: len(g.StepIDs),
		})
	}

	utils.LogEvent(s.RequestID, "recompute", "done",
		fmt.Sprintf("user_id=%d steps=%d trips=%d", userID, len(steps), len(result.Trips)))
	return result, nil
}
