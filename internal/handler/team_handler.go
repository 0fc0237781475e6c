package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TeamHandler handles team-related HTTP requests.
type TeamHandler struct {
	teamService TeamServiceInterface
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(teamService TeamServiceInterface) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// GetTeam handles GET /team.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), id.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, TeamResponse{Team: team})
}

// LeaveTeam handles POST /leave_team.
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	result, err := h.teamService.LeaveTeam(c.Request.Context(), id.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, LeaveTeamResponse{
		OK:             true,
		PreviousTeamID: result.PreviousTeamID,
		TeamID:         result.TeamID,
	})
}
