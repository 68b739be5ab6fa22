package handlers

import (
	"net/http"

	"fwd/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP status codes.
// Extraction failures deliberately respond with 200 so upstream mail
// forwarders do not retry a message that will never parse.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsExtraction(err):
		c.JSON(http.StatusOK, gin.H{"success": false, "message": err.Error()})
	case domain.IsGrouping(err):
		RespondError(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "internal error", err)
	}
}
