package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/logger"
	"github.com/tradingconf/registration/internal/metrics"
	"github.com/tradingconf/registration/internal/repository"
	"github.com/tradingconf/registration/internal/repository/application"
	"github.com/tradingconf/registration/internal/repository/team"
	"github.com/tradingconf/registration/internal/repository/user"
)

// TeamService handles team business logic.
type TeamService struct {
	db  *sql.DB
	log *logger.Logger
}

// NewTeamService creates a new team service.
func NewTeamService(db *sql.DB, log *logger.Logger) *TeamService {
	return &TeamService{db: db, log: log}
}

// LeaveResult describes the teams involved in leaving.
type LeaveResult struct {
	PreviousTeamID int64
	TeamID         int64
}

// GetTeam returns the caller's team with each member's application status.
// Returns nil without error when the caller is not on a team.
func (s *TeamService) GetTeam(ctx context.Context, userID string) (*domain.TeamView, error) {
	u, err := user.Get(ctx, s.db, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if u.TeamID == nil {
		return nil, nil
	}

	members, err := user.ListByTeam(ctx, s.db, *u.TeamID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.UserID
	}
	submitted, err := application.SubmittedUserIDs(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}

	view := &domain.TeamView{
		TeamID:  *u.TeamID,
		Members: make([]domain.TeamMember, len(members)),
	}
	for i, m := range members {
		status := domain.MemberPending
		if _, ok := submitted[m.UserID]; ok {
			status = domain.MemberConfirmed
		}
		view.Members[i] = domain.TeamMember{User: m, Status: status}
	}
	return view, nil
}

// LeaveTeam moves the caller out of their team into a fresh single-member team.
// The old team is deleted when the caller was its last member.
func (s *TeamService) LeaveTeam(ctx context.Context, userID string) (result *LeaveResult, err error) {
	defer func() { metrics.ObserveOperation("leave_team", err) }()

	err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		u, err := user.GetForUpdate(ctx, tx, userID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrUserNotFound
			}
			return err
		}
		if u.TeamID == nil {
			return ErrNotInTeam
		}

		old, err := team.GetForUpdate(ctx, tx, *u.TeamID)
		if err != nil {
			if err == sql.ErrNoRows {
				return ErrTeamNotFound
			}
			return err
		}

		newTeamID, err := team.Create(ctx, tx, []string{userID})
		if err != nil {
			return fmt.Errorf("failed to create new team: %w", err)
		}

		if err := removeMember(ctx, tx, old, userID); err != nil {
			return err
		}

		if err := user.SetTeam(ctx, tx, userID, &newTeamID); err != nil {
			return err
		}

		result = &LeaveResult{PreviousTeamID: old.TeamID, TeamID: newTeamID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("team left", "user_id", userID, "previous_team_id", result.PreviousTeamID, "team_id", result.TeamID)
	return result, nil
}
