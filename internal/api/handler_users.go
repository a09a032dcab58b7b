package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-track-backend/internal/model"
)

type insertUserRequest struct {
	Identity string              `json:"identity"`
	Station1 *model.StationValue `json:"station1"`
	Station2 *model.StationValue `json:"station2"`
	Station3 *model.StationValue `json:"station3"`
	Station4 *model.StationValue `json:"station4"`
	Station5 *model.StationValue `json:"station5"`
	Station6 *model.StationValue `json:"station6"`
}

// stations collects the explicitly supplied initial values, or nil when the
// request carries none so the defaults apply.
func (r *insertUserRequest) stations() *model.StationList {
	supplied := [model.StationCount]*model.StationValue{
		r.Station1, r.Station2, r.Station3, r.Station4, r.Station5, r.Station6,
	}

	list := model.DefaultStations()
	provided := false
	for i, v := range supplied {
		if v != nil {
			list[i] = *v
			provided = true
		}
	}
	if !provided {
		return nil
	}
	return &list
}

// InsertUser handles the POST /api/insert/user request.
func (h *Handler) InsertUser(c *gin.Context) {
	var req insertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "no identity provided",
		})
		return
	}

	user, created, err := h.svc.RegisterUser(c.Request.Context(), req.Identity, req.stations())
	if err != nil {
		respondError(c, "error inserting user", err)
		return
	}

	message := "user already exists"
	if created {
		message = "user inserted successfully"
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    user,
	})
}

// FetchUserByID handles the GET /api/fetch/user?id= request.
func (h *Handler) FetchUserByID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "user id is required",
		})
		return
	}

	user, err := h.svc.UserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "error retrieving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "user retrieved successfully",
		"data":    user,
	})
}

// FetchUsersByIdentity handles the GET /api/fetch/user/:name request. The
// result is a list; an unknown identity yields an empty one.
func (h *Handler) FetchUsersByIdentity(c *gin.Context) {
	users, err := h.svc.UsersByIdentity(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, "error retrieving user", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "users retrieved successfully",
		"data":    users,
	})
}
