package handlers

import (
	"net/http"

	"fwd/internal/http/middleware"
	"fwd/internal/repositories"
	"fwd/internal/services"

	"github.com/gin-gonic/gin"
)

// ItineraryHandler serves the printable trip itinerary.
type ItineraryHandler struct {
	StepRepo repositories.StepRepository
	TripRepo repositories.TripRepository
}

// GET /api/trips/:id/itinerary returns the trip's PDF itinerary (inline).
func (h ItineraryHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	svc := services.ItineraryService{
		StepRepo:  h.StepRepo,
		TripRepo:  h.TripRepo,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateItinerary(id, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
