package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"fwd/internal/http/middleware"
	"fwd/internal/notify"
	"fwd/internal/repositories"
	"fwd/internal/services"

	"github.com/gin-gonic/gin"
)

// IntakeHandler receives extraction results for forwarded emails. The caller
// is the extraction pipeline, not an end user, so the route authenticates
// with a shared token and identifies the traveler by the forwarding address.
type IntakeHandler struct {
	DB          *sql.DB
	StepRepo    repositories.StepRepository
	TripRepo    repositories.TripRepository
	Notifier    notify.Notifier
	IntakeToken string
}

type intakeRequest struct {
	UserEmail  string                     `json:"user_email"`
	Extraction services.ExtractionPayload `json:"extraction"`
}

// POST /api/intake/email
func (h IntakeHandler) Email(c *gin.Context) {
	if h.IntakeToken != "" && c.GetHeader("X-Intake-Token") != h.IntakeToken {
		RespondError(c, http.StatusUnauthorized, "invalid intake token", nil)
		return
	}

	var req intakeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	userID, err := h.lookupUser(req.UserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "no user for that email", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "user lookup failed", err)
		}
		return
	}

	svc := services.IntakeService{
		StepRepo:  h.StepRepo,
		TripRepo:  h.TripRepo,
		Notifier:  h.Notifier,
		RequestID: middleware.GetRequestID(c),
	}
	result, err := svc.ProcessExtraction(userID, req.Extraction)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	if result.SegmentsAdded == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "nothing changed",
			"result":  result,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (h IntakeHandler) lookupUser(email string) (int64, error) {
	var id int64
	err := h.DB.QueryRow(`SELECT id FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email))).Scan(&id)
	return id, err
}
