package handlers

import (
	"net/http"
	"strings"

	"fwd/internal/repositories"

	"github.com/gin-gonic/gin"
)

// ShareHandler serves the public, unauthenticated trip view.
type ShareHandler struct {
	StepRepo repositories.StepRepository
	TripRepo repositories.TripRepository
}

// GET /api/share/:token
//
// Token lookup only works while the trip is public. Confirmation numbers are
// blanked; a share link shows the plan, not the booking credentials.
func (h ShareHandler) Get(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		RespondError(c, http.StatusBadRequest, "missing share token", nil)
		return
	}

	trip, err := h.TripRepo.GetByShareToken(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !trip.IsPublic {
		RespondError(c, http.StatusNotFound, "trip not found", nil)
		return
	}

	steps, err := h.StepRepo.ListByTrip(trip.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "loading trip steps failed", err)
		return
	}
	views := NewStepViews(steps)
	for i := range views {
		views[i].ConfirmationNumber = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"trip": gin.H{
			"name":       trip.Name,
			"start_date": trip.StartDate,
			"end_date":   trip.EndDate,
		},
		"steps": views,
	})
}
