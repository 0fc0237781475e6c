package service

import "errors"

var (
	ErrUserNotFound       = errors.New("user profile not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrRecipientNotFound  = errors.New("invited user not found")
	ErrNotInTeam          = errors.New("you are not currently in a team")
	ErrNotTeamMember      = errors.New("you are not a member of this team")
	ErrNotInviteRecipient = errors.New("you are not allowed to respond to this invite")
	ErrNotInviteParty     = errors.New("you are not allowed to cancel this invite")
	ErrInviteNotPending   = errors.New("invite is not pending")
	ErrTeamFull           = errors.New("team is full")
	ErrAlreadyMember      = errors.New("user is already a member of this team")
	ErrSelfInvite         = errors.New("you cannot invite yourself")
	ErrDuplicateInvite    = errors.New("a pending invite to this user already exists")
	ErrApplicationExists  = errors.New("application already submitted")
	ErrInvalidApplication = errors.New("missing required application fields")
	ErrUnsupportedResume  = errors.New("unsupported resume file")
	ErrResumeTooLarge     = errors.New("resume file is too large")
)
