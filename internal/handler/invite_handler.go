package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InviteHandler handles invite-related HTTP requests.
type InviteHandler struct {
	inviteService InviteServiceInterface
}

// NewInviteHandler creates a new invite handler.
func NewInviteHandler(inviteService InviteServiceInterface) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

// SendInvite handles POST /send_team_invite.
func (h *InviteHandler) SendInvite(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	var req SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body.")
		return
	}

	inviteID, err := h.inviteService.SendInvite(c.Request.Context(), id.UserID, req.ToUserID, req.TeamID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SendInviteResponse{Invite: InviteRef{InviteID: inviteID}})
}

// AcceptInvite handles POST /accept_invite.
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	id, inviteID, ok := h.bindAction(c)
	if !ok {
		return
	}

	result, err := h.inviteService.AcceptInvite(c.Request.Context(), id, inviteID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, AcceptInviteResponse{
		OK:             true,
		TeamID:         result.TeamID,
		PreviousTeamID: result.PreviousTeamID,
	})
}

// RejectInvite handles POST /reject_invite.
func (h *InviteHandler) RejectInvite(c *gin.Context) {
	id, inviteID, ok := h.bindAction(c)
	if !ok {
		return
	}

	if err := h.inviteService.RejectInvite(c.Request.Context(), id, inviteID); err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// CancelInvite handles POST /cancel_invite.
func (h *InviteHandler) CancelInvite(c *gin.Context) {
	id, inviteID, ok := h.bindAction(c)
	if !ok {
		return
	}

	if err := h.inviteService.CancelInvite(c.Request.Context(), id, inviteID); err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, OKResponse{OK: true})
}

// ListInvites handles GET /get_invites.
func (h *InviteHandler) ListInvites(c *gin.Context) {
	id, ok := caller(c)
	if !ok {
		return
	}

	lists, err := h.inviteService.ListInvites(c.Request.Context(), id.UserID)
	if err != nil {
		ServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, InvitesResponse{
		SentInvites:     lists.Sent,
		ReceivedInvites: lists.Received,
	})
}

func (h *InviteHandler) bindAction(c *gin.Context) (string, string, bool) {
	id, ok := caller(c)
	if !ok {
		return "", "", false
	}

	var req InviteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body.")
		return "", "", false
	}
	return id.UserID, req.InviteID, true
}
