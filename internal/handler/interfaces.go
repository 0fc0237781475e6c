package handler

import (
	"context"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/service"
)

// ApplicationServiceInterface defines the interface for application operations.
type ApplicationServiceInterface interface {
	Submit(ctx context.Context, id domain.Identity, form service.ApplicationForm, resume domain.Resume) (*service.SubmitResult, error)
	Status(ctx context.Context, userID string) (bool, error)
}

// TeamServiceInterface defines the interface for team operations.
type TeamServiceInterface interface {
	GetTeam(ctx context.Context, userID string) (*domain.TeamView, error)
	LeaveTeam(ctx context.Context, userID string) (*service.LeaveResult, error)
}

// InviteServiceInterface defines the interface for invite operations.
type InviteServiceInterface interface {
	SendInvite(ctx context.Context, fromUserID, toUserID string, teamID int64) (string, error)
	AcceptInvite(ctx context.Context, userID, inviteID string) (*service.AcceptResult, error)
	RejectInvite(ctx context.Context, userID, inviteID string) error
	CancelInvite(ctx context.Context, userID, inviteID string) error
	ListInvites(ctx context.Context, userID string) (*service.InviteLists, error)
}

// UserServiceInterface defines the interface for user operations.
type UserServiceInterface interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	Directory(ctx context.Context, userID string, includeTeamed bool) ([]domain.DirectoryUser, error)
}
