package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// InviteStatus represents the lifecycle state of an invite.
type InviteStatus string

// Invite status constants.
const (
	InvitePending   InviteStatus = "pending"
	InviteAccepted  InviteStatus = "accepted"
	InviteRejected  InviteStatus = "rejected"
	InviteCancelled InviteStatus = "cancelled"
)

// NewInviteStatus creates a new InviteStatus with validation.
func NewInviteStatus(s string) (InviteStatus, error) {
	status := InviteStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid invite status: %s (must be one of: %s, %s, %s, %s)",
			s, InvitePending, InviteAccepted, InviteRejected, InviteCancelled)
	}
	return status, nil
}

// IsValid checks if the status is valid.
func (s InviteStatus) IsValid() bool {
	switch s {
	case InvitePending, InviteAccepted, InviteRejected, InviteCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed.
func (s InviteStatus) IsTerminal() bool {
	return s.IsValid() && s != InvitePending
}

// CanTransition reports whether an invite may move from s to next.
// Only pending invites move, and only into a terminal state.
func (s InviteStatus) CanTransition(next InviteStatus) bool {
	return s == InvitePending && next.IsTerminal()
}

// Scan implements sql.Scanner interface for automatic validation when reading from database.
func (s *InviteStatus) Scan(value any) error {
	if value == nil {
		return fmt.Errorf("InviteStatus cannot be NULL")
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into InviteStatus", value)
	}

	status, err := NewInviteStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Value implements driver.Valuer interface for writing to database.
func (s InviteStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid InviteStatus value: %s", s)
	}
	return string(s), nil
}

// Invite is a proposal for a user to join a team.
type Invite struct {
	InviteID   string       `json:"invite_id"`
	FromUserID string       `json:"from_user_id"`
	ToUserID   string       `json:"to_user_id"`
	TeamID     int64        `json:"team_id"`
	Status     InviteStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  *time.Time   `json:"updated_at"`
}

// SentInvite is an outgoing invite with the recipient's profile attached.
type SentInvite struct {
	Invite
	ToUser *User `json:"to_user"`
}

// ReceivedInvite is an incoming invite with the sender's profile attached.
type ReceivedInvite struct {
	Invite
	FromUser *User `json:"from_user"`
}
