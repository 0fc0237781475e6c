package team

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/repository"
)

// Create inserts a new team holding memberIDs and returns its ID.
func Create(ctx context.Context, exec repository.DBTX, memberIDs []string) (int64, error) {
	query := `INSERT INTO "Teams" (teammember_ids) VALUES ($1) RETURNING team_id`
	var teamID int64
	err := exec.QueryRowContext(ctx, query, pq.Array(memberIDs)).Scan(&teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to create team: %w", err)
	}
	return teamID, nil
}

// Get retrieves a team with its member IDs.
func Get(ctx context.Context, exec repository.DBTX, teamID int64) (*domain.Team, error) {
	return get(ctx, exec, `SELECT team_id, teammember_ids FROM "Teams" WHERE team_id = $1`, teamID)
}

// GetForUpdate retrieves a team and locks its row until the transaction ends,
// serializing concurrent membership changes on the same team.
func GetForUpdate(ctx context.Context, exec repository.DBTX, teamID int64) (*domain.Team, error) {
	return get(ctx, exec, `SELECT team_id, teammember_ids FROM "Teams" WHERE team_id = $1 FOR UPDATE`, teamID)
}

func get(ctx context.Context, exec repository.DBTX, query string, teamID int64) (*domain.Team, error) {
	var t domain.Team
	err := exec.QueryRowContext(ctx, query, teamID).Scan(&t.TeamID, pq.Array(&t.MemberIDs))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	if t.MemberIDs == nil {
		t.MemberIDs = []string{}
	}
	return &t, nil
}

// SetMembers replaces the team's member list.
// Returns sql.ErrNoRows if the team doesn't exist.
func SetMembers(ctx context.Context, exec repository.DBTX, teamID int64, memberIDs []string) error {
	query := `UPDATE "Teams" SET teammember_ids = $1 WHERE team_id = $2`
	result, err := exec.ExecContext(ctx, query, pq.Array(memberIDs), teamID)
	if err != nil {
		return fmt.Errorf("failed to update team members: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a team. Pending invites to it are removed by the foreign key cascade.
func Delete(ctx context.Context, exec repository.DBTX, teamID int64) error {
	query := `DELETE FROM "Teams" WHERE team_id = $1`
	if _, err := exec.ExecContext(ctx, query, teamID); err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return nil
}
