package handlers

import (
	"net/http"

	"fwd/internal/domain/models"
	"fwd/internal/http/middleware"
	"fwd/internal/repositories"
	"fwd/internal/services"

	"github.com/gin-gonic/gin"
)

// TripHandler serves the trip surface: listing, detail, regrouping, sharing.
type TripHandler struct {
	StepRepo repositories.StepRepository
	TripRepo repositories.TripRepository
}

// TripView is a trip plus its step count for list rendering.
type TripView struct {
	models.Trip
	StepCount int `json:"step_count"`
}

// GET /api/trips
func (h TripHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	trips, err := h.TripRepo.ListByUser(userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "loading trips failed", err)
		return
	}

	out := make([]TripView, 0, len(trips))
	for _, t := range trips {
		steps, err := h.StepRepo.ListByTrip(t.ID)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "loading trip steps failed", err)
			return
		}
		out = append(out, TripView{Trip: t, StepCount: len(steps)})
	}
	c.JSON(http.StatusOK, gin.H{"trips": out})
}

// GET /api/trips/:id
func (h TripHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := h.TripRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	steps, err := h.StepRepo.ListByTrip(trip.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "loading trip steps failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trip":  trip,
		"steps": NewStepViews(steps),
	})
}

// DELETE /api/trips/:id
//
// Deleting a trip never deletes travel; its steps are detached and picked up
// again by the next regroup or intake.
func (h TripHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	trip, err := h.TripRepo.GetByID(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := h.StepRepo.DetachTrip(trip.ID); err != nil {
		RespondError(c, http.StatusInternalServerError, "detaching steps failed", err)
		return
	}
	if err := h.TripRepo.Delete(trip.ID); err != nil {
		RespondError(c, http.StatusInternalServerError, "trip delete failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted, steps kept"})
}

// POST /api/trips/regroup
//
// Drops every trip and rebuilds them from the full step history.
func (h TripHandler) Regroup(c *gin.Context) {
	userID := middleware.GetUserID(c)
	svc := services.RecomputeService{
		StepRepo:  h.StepRepo,
		TripRepo:  h.TripRepo,
		RequestID: middleware.GetRequestID(c),
	}
	result, err := svc.Recompute(userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "trips regrouped",
		"result":  result,
	})
}

// POST /api/trips/:id/share-token
//
// Rotates the share token. The old link stops working immediately.
func (h TripHandler) RegenerateShareToken(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	token := services.NewShareToken()
	if err := h.TripRepo.UpdateShareToken(id, userID, token); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share_token": token})
}

type setPublicRequest struct {
	IsPublic bool `json:"is_public"`
}

// PUT /api/trips/:id/public
func (h TripHandler) SetPublic(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setPublicRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.TripRepo.SetPublic(id, userID, req.IsPublic); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_public": req.IsPublic})
}
