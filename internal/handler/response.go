package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/service"
)

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a state change with no payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// ApplicationResponse wraps a successful submission.
type ApplicationResponse struct {
	OK         bool   `json:"ok"`
	ID         int64  `json:"id"`
	ResumePath string `json:"resume_path"`
	TeamID     int64  `json:"team_id"`
}

// ApplicationInfoResponse reports whether the caller has applied.
type ApplicationInfoResponse struct {
	Submitted bool `json:"submitted"`
}

// UserResponse wraps user data.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// DirectoryResponse wraps the user directory.
type DirectoryResponse struct {
	Users []domain.DirectoryUser `json:"users"`
}

// TeamResponse wraps team data. Team is null when the caller has no team.
type TeamResponse struct {
	Team *domain.TeamView `json:"team"`
}

// LeaveTeamResponse wraps leave team response.
type LeaveTeamResponse struct {
	OK             bool  `json:"ok"`
	PreviousTeamID int64 `json:"previous_team_id"`
	TeamID         int64 `json:"team_id"`
}

// InviteRef identifies a created invite.
type InviteRef struct {
	InviteID string `json:"invite_id"`
}

// SendInviteResponse wraps send invite response.
type SendInviteResponse struct {
	Invite InviteRef `json:"invite"`
}

// AcceptInviteResponse wraps accept invite response.
type AcceptInviteResponse struct {
	OK             bool   `json:"ok"`
	TeamID         int64  `json:"team_id"`
	PreviousTeamID *int64 `json:"previous_team_id,omitempty"`
}

// InvitesResponse wraps the caller's pending invites.
type InvitesResponse struct {
	SentInvites     []domain.SentInvite     `json:"sent_invites"`
	ReceivedInvites []domain.ReceivedInvite `json:"received_invites"`
}

// Error sends error response.
func Error(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// BadRequest sends 400 error.
func BadRequest(c *gin.Context, message string) {
	Error(c, message, http.StatusBadRequest)
}

// Unauthorized sends 401 error.
func Unauthorized(c *gin.Context, message string) {
	Error(c, message, http.StatusUnauthorized)
}

// Forbidden sends 403 error.
func Forbidden(c *gin.Context, message string) {
	Error(c, message, http.StatusForbidden)
}

// NotFound sends 404 error.
func NotFound(c *gin.Context, message string) {
	Error(c, message, http.StatusNotFound)
}

// InternalError sends 500 error.
func InternalError(c *gin.Context, message string) {
	Error(c, message, http.StatusInternalServerError)
}

var (
	badRequestErrors = []error{
		service.ErrInviteNotPending,
		service.ErrTeamFull,
		service.ErrAlreadyMember,
		service.ErrSelfInvite,
		service.ErrDuplicateInvite,
		service.ErrApplicationExists,
		service.ErrNotInTeam,
		service.ErrInvalidApplication,
		service.ErrUnsupportedResume,
		service.ErrResumeTooLarge,
	}
	forbiddenErrors = []error{
		service.ErrNotTeamMember,
		service.ErrNotInviteRecipient,
		service.ErrNotInviteParty,
	}
	notFoundErrors = []error{
		service.ErrUserNotFound,
		service.ErrTeamNotFound,
		service.ErrInviteNotFound,
		service.ErrRecipientNotFound,
	}
)

// statusFor maps a service error to its HTTP status.
func statusFor(err error) int {
	switch {
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case isAny(err, forbiddenErrors):
		return http.StatusForbidden
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// ServiceError sends err with the status its kind maps to. Store and
// upstream failures pass their message through as a 500.
func ServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := statusFor(err)
	Error(c, clientMessage(err, status), status)
}

// clientMessage renders err as a client-facing sentence. Known client errors
// end with a period; pass-through failures keep their upstream text as is.
func clientMessage(err error, status int) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if status != http.StatusInternalServerError && !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
