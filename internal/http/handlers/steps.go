package handlers

import (
	"net/http"
	"strconv"

	"fwd/internal/domain/models"
	"fwd/internal/http/middleware"
	"fwd/internal/repositories"
	"fwd/internal/services"
	"fwd/internal/utils"

	"github.com/gin-gonic/gin"
)

// StepHandler serves the travel-step CRUD surface.
type StepHandler struct {
	StepRepo repositories.StepRepository
	TripRepo repositories.TripRepository
}

// StepView is a TravelStep plus the display values the clients render:
// date key, local clock labels, overnight offset, timezone shift, duration,
// and map links. All of it is derived from the stored strings, never from a
// reparsed instant, so the traveler's local times survive intact.
type StepView struct {
	models.TravelStep
	DateKey            string  `json:"date_key"`
	StartClock         string  `json:"start_clock,omitempty"`
	EndClock           string  `json:"end_clock,omitempty"`
	DayOffset          int     `json:"day_offset,omitempty"`
	TimezoneShiftHours float64 `json:"timezone_shift_hours,omitempty"`
	DurationMinutes    int     `json:"duration_minutes,omitempty"`
	DirectionsURL      string  `json:"directions_url,omitempty"`
	OriginMapURL       string  `json:"origin_map_url,omitempty"`
	DestinationMapURL  string  `json:"destination_map_url,omitempty"`
}

// NewStepView derives the display fields for one step.
func NewStepView(s models.TravelStep) StepView {
	v := StepView{
		TravelStep: s,
		DateKey:    utils.ExtractDateKey(s.StartDateTime),
		StartClock: utils.FormatClock(s.StartDateTime),
		EndClock:   utils.FormatClock(s.EndDateTime),
	}
	if off, ok := utils.DayOffset(s.StartDateTime, s.EndDateTime); ok {
		v.DayOffset = off
	}
	if startOff, ok := utils.ExtractOffsetHours(s.StartDateTime); ok {
		if endOff, ok2 := utils.ExtractOffsetHours(s.EndDateTime); ok2 {
			v.TimezoneShiftHours = endOff - startOff
		}
	}
	if mins, ok := utils.ElapsedMinutes(s.StartDateTime, s.EndDateTime); ok {
		v.DurationMinutes = mins
	}
	v.DirectionsURL = utils.DirectionsURL(
		utils.CoordOrZero(s.OriginLat), utils.CoordOrZero(s.OriginLng),
		utils.CoordOrZero(s.DestinationLat), utils.CoordOrZero(s.DestinationLng),
		s.OriginName, s.DestinationName,
	)
	v.OriginMapURL = utils.LocationURL(
		utils.CoordOrZero(s.OriginLat), utils.CoordOrZero(s.OriginLng),
		s.OriginName, s.OriginAddress,
	)
	v.DestinationMapURL = utils.LocationURL(
		utils.CoordOrZero(s.DestinationLat), utils.CoordOrZero(s.DestinationLng),
		s.DestinationName, s.DestinationAddress,
	)
	return v
}

// NewStepViews maps a slice in stored order.
func NewStepViews(steps []models.TravelStep) []StepView {
	out := make([]StepView, 0, len(steps))
	for _, s := range steps {
		out = append(out, NewStepView(s))
	}
	return out
}

// GET /api/steps
func (h StepHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	steps, err := h.StepRepo.ListByUser(userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "loading travel steps failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": NewStepViews(steps)})
}

// GET /api/steps/:id
func (h StepHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	step, err := h.StepRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": NewStepView(step)})
}

type createStepRequest struct {
	Type    string                 `json:"type"`
	Segment services.ParsedSegment `json:"segment"`
}

// POST /api/steps
//
// A manually created step goes through the same normalization, duplicate
// detection, and trip assignment as an emailed one.
func (h StepHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req createStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	step, err := services.NormalizeSegment(userID, req.Type, req.Segment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	dup, err := h.StepRepo.ExistsDuplicate(userID, step.Type, step.StartDateTime, step.OriginName)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "duplicate check failed", err)
		return
	}
	if dup {
		c.JSON(http.StatusOK, gin.H{
			"message":   "step already exists, nothing changed",
			"duplicate": true,
		})
		return
	}

	id, err := h.StepRepo.Insert(step)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "step insert failed", err)
		return
	}
	step.ID = id

	assigner := services.AssignerService{
		StepRepo:  h.StepRepo,
		TripRepo:  h.TripRepo,
		RequestID: middleware.GetRequestID(c),
	}
	assigned, err := assigner.AssignNewSteps(userID, []models.TravelStep{step})
	if err != nil {
		// The step is saved even when assignment fails; a regroup repairs it.
		utils.LogEvent(middleware.GetRequestID(c), "steps", "create", "assignment failed: "+err.Error())
		c.JSON(http.StatusCreated, gin.H{
			"step":            NewStepView(step),
			"grouping_failed": true,
		})
		return
	}
	step.TripID = &assigned.TripID

	c.JSON(http.StatusCreated, gin.H{
		"step":         NewStepView(step),
		"trip_id":      assigned.TripID,
		"trip_name":    assigned.TripName,
		"trip_created": assigned.Created,
	})
}

// PUT /api/steps/:id
//
// Edits keep the step in its current trip, then refresh that trip's name and
// range so a changed date or hotel city shows up in the trip immediately.
func (h StepHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	existing, err := h.StepRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req createStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Type == "" {
		req.Type = existing.Type
	}
	step, err := services.NormalizeSegment(userID, req.Type, req.Segment)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	step.ID = existing.ID
	step.TripID = existing.TripID

	if err := h.StepRepo.Update(step); err != nil {
		RespondDomainError(c, err)
		return
	}

	if existing.TripID != nil {
		h.refreshTrip(c, *existing.TripID)
	}

	c.JSON(http.StatusOK, gin.H{"step": NewStepView(step)})
}

// DELETE /api/steps/:id
func (h StepHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	existing, err := h.StepRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.StepRepo.Delete(id, userID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if existing.TripID != nil {
		h.refreshTrip(c, *existing.TripID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "step deleted"})
}

type moveStepRequest struct {
	TripID int64 `json:"trip_id"`
}

// POST /api/steps/:id/move
//
// Manual reassignment between trips. A trip_id of 0 spawns a fresh trip
// around the step. Both the source and the target trip get their names and
// date ranges refreshed, and a source trip left empty is deleted.
func (h StepHandler) Move(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req moveStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	existing, err := h.StepRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	targetID := req.TripID
	if targetID == 0 {
		trip, err := h.spawnTrip(userID, existing)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		targetID = trip
	} else if _, err := h.TripRepo.GetByID(targetID, userID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := h.StepRepo.MoveToTrip(id, userID, targetID); err != nil {
		RespondDomainError(c, err)
		return
	}

	if existing.TripID != nil && *existing.TripID != targetID {
		h.refreshTrip(c, *existing.TripID)
	}
	h.refreshTrip(c, targetID)

	c.JSON(http.StatusOK, gin.H{"message": "step moved", "trip_id": targetID})
}

// spawnTrip creates a one-step trip for a manual move out of a group. The
// incremental assigner is not used here: its gap window would route the step
// straight back into the trip the user is moving it out of.
func (h StepHandler) spawnTrip(userID int64, s models.TravelStep) (int64, error) {
	members := []models.TravelStep{s}
	startDate, endDate := services.DateRange(members)
	return h.TripRepo.Insert(models.Trip{
		UserID:     userID,
		Name:       services.TripName(members),
		StartDate:  startDate,
		EndDate:    endDate,
		ShareToken: services.NewShareToken(),
	})
}

// refreshTrip renames and re-ranges a trip after its membership changed.
// Failures are logged, not surfaced; the next regroup repairs the summary.
func (h StepHandler) refreshTrip(c *gin.Context, tripID int64) {
	assigner := services.AssignerService{
		StepRepo:  h.StepRepo,
		TripRepo:  h.TripRepo,
		RequestID: middleware.GetRequestID(c),
	}
	if _, err := assigner.RefreshTrip(tripID); err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "steps", "refresh_trip", "refresh failed: "+err.Error())
	}
}

// pathID parses a positive integer path parameter or responds 400.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "invalid "+name, err)
		return 0, false
	}
	return id, true
}
