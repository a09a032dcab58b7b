package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"station-track-backend/internal/apperr"
	"station-track-backend/internal/station"
	"station-track-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc   *station.Service
	store store.Store
}

// NewHandler creates a new API handler.
func NewHandler(svc *station.Service, s store.Store) *Handler {
	return &Handler{
		svc:   svc,
		store: s,
	}
}

// respondError maps a classified failure to an HTTP status. The message is
// always client-facing; underlying storage detail rides along separately.
func respondError(c *gin.Context, fallback string, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"success": false, "message": fallback}

	var e *apperr.Error
	if errors.As(err, &e) {
		switch e.Kind {
		case apperr.KindValidation:
			status = http.StatusBadRequest
		case apperr.KindNotFound:
			status = http.StatusNotFound
		}
		body["message"] = e.Message
		if e.Err != nil {
			body["error"] = e.Err.Error()
		}
	} else if err != nil {
		body["error"] = err.Error()
	}

	c.AbortWithStatusJSON(status, body)
}
