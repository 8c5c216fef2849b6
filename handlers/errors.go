package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jobportal/backend/agent"
	"github.com/jobportal/backend/models"
	"github.com/jobportal/backend/storage"
)

func respondError(c *gin.Context, code int, message, details string) {
	c.JSON(code, models.ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// respondServiceError maps agent and storage errors to HTTP responses
func respondServiceError(c *gin.Context, log zerolog.Logger, op string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "Conversation not found", "")
	case errors.Is(err, agent.ErrForbidden):
		respondError(c, http.StatusForbidden, "Access denied", "")
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		respondError(c, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}
