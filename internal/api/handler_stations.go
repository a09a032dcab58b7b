package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateStationRequest struct {
	UID           string `json:"uid"`
	StationNumber int    `json:"stationNumber"`
	Status        string `json:"status"`
}

// UpdateStationStatus handles the POST /api/updateStationStatus request.
func (h *Handler) UpdateStationStatus(c *gin.Context) {
	var req updateStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
		})
		return
	}

	user, err := h.svc.UpdateStation(c.Request.Context(), req.UID, req.StationNumber, req.Status)
	if err != nil {
		respondError(c, "error updating station status", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("station%d updated successfully", req.StationNumber),
		"data":    user,
	})
}
