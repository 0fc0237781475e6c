package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/logger"
	"github.com/tradingconf/registration/internal/metrics"
	"github.com/tradingconf/registration/internal/repository"
	"github.com/tradingconf/registration/internal/repository/invite"
	"github.com/tradingconf/registration/internal/repository/team"
	"github.com/tradingconf/registration/internal/repository/user"
)

// InviteService handles the invite lifecycle.
type InviteService struct {
	db  *sql.DB
	log *logger.Logger
}

// NewInviteService creates a new invite service.
func NewInviteService(db *sql.DB, log *logger.Logger) *InviteService {
	return &InviteService{db: db, log: log}
}

// AcceptResult describes the membership change made by an accepted invite.
type AcceptResult struct {
	TeamID         int64
	PreviousTeamID *int64
}

// InviteLists holds a user's pending outgoing and incoming invites.
type InviteLists struct {
	Sent     []domain.SentInvite
	Received []domain.ReceivedInvite
}

// SendInvite creates a pending invite from a team member to a non-member.
func (s *InviteService) SendInvite(ctx context.Context, fromUserID, toUserID string, teamID int64) (inviteID string, err error) {
	defer func() { metrics.ObserveOperation("send_invite", err) }()

	if fromUserID == toUserID {
		return "", ErrSelfInvite
	}

	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := team.GetForUpdate(ctx, tx, teamID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrTeamNotFound
			}
			return err
		}

		if !t.HasMember(fromUserID) {
			return ErrNotTeamMember
		}

		if _, err := user.Get(ctx, tx, toUserID); err != nil {
			if err == sql.ErrNoRows {
				return ErrRecipientNotFound
			}
			return err
		}

		if t.HasMember(toUserID) {
			return ErrAlreadyMember
		}
		if t.IsFull() {
			return ErrTeamFull
		}

		pending, err := invite.HasPending(ctx, tx, teamID, toUserID)
		if err != nil {
			return err
		}
		if pending {
			return ErrDuplicateInvite
		}

		inviteID, err = invite.Create(ctx, tx, fromUserID, toUserID, teamID)
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrDuplicateInvite
			}
			if repository.IsForeignKeyViolation(err) {
				return ErrRecipientNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.log.Infow("invite sent", "invite_id", inviteID, "from_user_id", fromUserID, "to_user_id", toUserID, "team_id", teamID)
	return inviteID, nil
}

// AcceptInvite moves the recipient onto the invite's team. The team rows are
// locked for the whole transaction so concurrent accepts cannot exceed the cap.
func (s *InviteService) AcceptInvite(ctx context.Context, userID, inviteID string) (result *AcceptResult, err error) {
	defer func() { metrics.ObserveOperation("accept_invite", err) }()

	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		inv, err := loadInvite(ctx, tx, inviteID)
		if err != nil {
			return err
		}
		if inv.ToUserID != userID {
			return ErrNotInviteRecipient
		}
		if inv.Status != domain.InvitePending {
			return fmt.Errorf("%w (status: %s)", ErrInviteNotPending, inv.Status)
		}

		u, err := user.GetForUpdate(ctx, tx, userID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrUserNotFound
			}
			return err
		}

		ids := []int64{inv.TeamID}
		if u.TeamID != nil && *u.TeamID != inv.TeamID {
			ids = append(ids, *u.TeamID)
		}
		teams, err := lockTeams(ctx, tx, ids...)
		if err != nil {
			return err
		}

		target, ok := teams[inv.TeamID]
		if !ok {
			return ErrTeamNotFound
		}

		members := target.WithMember(userID)
		if len(members) > domain.MaxTeamSize {
			return ErrTeamFull
		}
		if err := team.SetMembers(ctx, tx, inv.TeamID, members); err != nil {
			if repository.IsCheckViolation(err) {
				return ErrTeamFull
			}
			return err
		}

		result = &AcceptResult{TeamID: inv.TeamID}
		if u.TeamID != nil && *u.TeamID != inv.TeamID {
			previous := *u.TeamID
			result.PreviousTeamID = &previous
			if old, ok := teams[previous]; ok {
				if err := removeMember(ctx, tx, old, userID); err != nil {
					return err
				}
			}
		}

		if err := user.SetTeam(ctx, tx, userID, &inv.TeamID); err != nil {
			return err
		}

		if err := invite.Transition(ctx, tx, inviteID, domain.InviteAccepted); err != nil {
			if err == sql.ErrNoRows {
				return ErrInviteNotPending
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("invite accepted", "invite_id", inviteID, "user_id", userID, "team_id", result.TeamID)
	return result, nil
}

// RejectInvite marks a pending invite rejected. Only the recipient may reject.
func (s *InviteService) RejectInvite(ctx context.Context, userID, inviteID string) (err error) {
	defer func() { metrics.ObserveOperation("reject_invite", err) }()

	return s.respond(ctx, inviteID, domain.InviteRejected, func(inv *domain.Invite) error {
		if inv.ToUserID != userID {
			return ErrNotInviteRecipient
		}
		return nil
	})
}

// CancelInvite marks a pending invite cancelled. Sender or recipient may cancel.
func (s *InviteService) CancelInvite(ctx context.Context, userID, inviteID string) (err error) {
	defer func() { metrics.ObserveOperation("cancel_invite", err) }()

	return s.respond(ctx, inviteID, domain.InviteCancelled, func(inv *domain.Invite) error {
		if inv.ToUserID != userID && inv.FromUserID != userID {
			return ErrNotInviteParty
		}
		return nil
	})
}

func (s *InviteService) respond(ctx context.Context, inviteID string, status domain.InviteStatus, authorize func(*domain.Invite) error) error {
	return repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		inv, err := loadInvite(ctx, tx, inviteID)
		if err != nil {
			return err
		}
		if err := authorize(inv); err != nil {
			return err
		}
		if !inv.Status.CanTransition(status) {
			return fmt.Errorf("%w (status: %s)", ErrInviteNotPending, inv.Status)
		}

		if err := invite.Transition(ctx, tx, inviteID, status); err != nil {
			if err == sql.ErrNoRows {
				return ErrInviteNotPending
			}
			return err
		}
		return nil
	})
}

// ListInvites returns the user's pending invites with the counterpart's profile attached.
func (s *InviteService) ListInvites(ctx context.Context, userID string) (*InviteLists, error) {
	var (
		sent     []domain.Invite
		received []domain.Invite
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sent, err = invite.ListPendingFrom(gctx, s.db, userID)
		return err
	})
	g.Go(func() error {
		var err error
		received, err = invite.ListPendingTo(gctx, s.db, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	counterparts := make([]string, 0, len(sent)+len(received))
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		counterparts = append(counterparts, id)
	}
	for _, inv := range sent {
		add(inv.ToUserID)
	}
	for _, inv := range received {
		add(inv.FromUserID)
	}

	users, err := user.ListByIDs(ctx, s.db, counterparts)
	if err != nil {
		return nil, fmt.Errorf("failed to load invite users: %w", err)
	}
	byID := make(map[string]*domain.User, len(users))
	for i := range users {
		byID[users[i].UserID] = &users[i]
	}

	lists := &InviteLists{
		Sent:     make([]domain.SentInvite, 0, len(sent)),
		Received: make([]domain.ReceivedInvite, 0, len(received)),
	}
	for _, inv := range sent {
		lists.Sent = append(lists.Sent, domain.SentInvite{Invite: inv, ToUser: byID[inv.ToUserID]})
	}
	for _, inv := range received {
		lists.Received = append(lists.Received, domain.ReceivedInvite{Invite: inv, FromUser: byID[inv.FromUserID]})
	}
	return lists, nil
}

func loadInvite(ctx context.Context, exec repository.DBTX, inviteID string) (*domain.Invite, error) {
	inv, err := invite.GetForUpdate(ctx, exec, inviteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}
	return inv, nil
}

// lockTeams locks the given team rows in ascending ID order so that two
// transactions touching the same pair of teams cannot deadlock.
// Missing teams are absent from the returned map.
func lockTeams(ctx context.Context, exec repository.DBTX, ids ...int64) (map[int64]*domain.Team, error) {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	teams := make(map[int64]*domain.Team, len(sorted))
	for _, id := range sorted {
		if _, ok := teams[id]; ok {
			continue
		}
		t, err := team.GetForUpdate(ctx, exec, id)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, err
		}
		teams[id] = t
	}
	return teams, nil
}

// removeMember drops userID from t, deleting the team once it is empty.
func removeMember(ctx context.Context, exec repository.DBTX, t *domain.Team, userID string) error {
	remaining := t.WithoutMember(userID)
	if len(remaining) == 0 {
		return team.Delete(ctx, exec, t.TeamID)
	}
	return team.SetMembers(ctx, exec, t.TeamID, remaining)
}
