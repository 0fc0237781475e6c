package invite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/repository"
)

const columns = `invite_id, from_user_id, to_user_id, team_id, status, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*domain.Invite, error) {
	var (
		inv       domain.Invite
		updatedAt sql.NullTime
	)
	err := s.Scan(&inv.InviteID, &inv.FromUserID, &inv.ToUserID, &inv.TeamID, &inv.Status, &inv.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		inv.UpdatedAt = &t
	}
	return &inv, nil
}

// Create inserts a pending invite and returns its ID.
func Create(ctx context.Context, exec repository.DBTX, fromUserID, toUserID string, teamID int64) (string, error) {
	query := `
		INSERT INTO "Invites" (from_user_id, to_user_id, team_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING invite_id
	`
	var inviteID string
	err := exec.QueryRowContext(ctx, query, fromUserID, toUserID, teamID, domain.InvitePending).Scan(&inviteID)
	if err != nil {
		return "", fmt.Errorf("failed to create invite: %w", err)
	}
	return inviteID, nil
}

// Get retrieves an invite by ID.
func Get(ctx context.Context, exec repository.DBTX, inviteID string) (*domain.Invite, error) {
	return get(ctx, exec, `SELECT `+columns+` FROM "Invites" WHERE invite_id = $1`, inviteID)
}

// GetForUpdate retrieves an invite and locks its row until the transaction ends.
func GetForUpdate(ctx context.Context, exec repository.DBTX, inviteID string) (*domain.Invite, error) {
	return get(ctx, exec, `SELECT `+columns+` FROM "Invites" WHERE invite_id = $1 FOR UPDATE`, inviteID)
}

func get(ctx context.Context, exec repository.DBTX, query, inviteID string) (*domain.Invite, error) {
	inv, err := scan(exec.QueryRowContext(ctx, query, inviteID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load invite: %w", err)
	}
	return inv, nil
}

// Transition moves a pending invite to status.
// Returns sql.ErrNoRows if the invite doesn't exist or is no longer pending.
func Transition(ctx context.Context, exec repository.DBTX, inviteID string, status domain.InviteStatus) error {
	query := `
		UPDATE "Invites"
		SET status = $1, updated_at = now()
		WHERE invite_id = $2 AND status = $3
	`
	result, err := exec.ExecContext(ctx, query, status, inviteID, domain.InvitePending)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
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

// HasPending reports whether toUserID already holds a pending invite to teamID.
func HasPending(ctx context.Context, exec repository.DBTX, teamID int64, toUserID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "Invites" WHERE team_id = $1 AND to_user_id = $2 AND status = $3)`
	err := exec.QueryRowContext(ctx, query, teamID, toUserID, domain.InvitePending).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check pending invites: %w", err)
	}
	return exists, nil
}

// ListPendingFrom returns pending invites sent by userID, newest first.
func ListPendingFrom(ctx context.Context, exec repository.DBTX, userID string) ([]domain.Invite, error) {
	query := `SELECT ` + columns + ` FROM "Invites" WHERE from_user_id = $1 AND status = $2 ORDER BY created_at DESC`
	return list(ctx, exec, "failed to load sent invites", query, userID)
}

// ListPendingTo returns pending invites addressed to userID, newest first.
func ListPendingTo(ctx context.Context, exec repository.DBTX, userID string) ([]domain.Invite, error) {
	query := `SELECT ` + columns + ` FROM "Invites" WHERE to_user_id = $1 AND status = $2 ORDER BY created_at DESC`
	return list(ctx, exec, "failed to load received invites", query, userID)
}

func list(ctx context.Context, exec repository.DBTX, failure, query, userID string) ([]domain.Invite, error) {
	rows, err := exec.QueryContext(ctx, query, userID, domain.InvitePending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	defer func() { _ = rows.Close() }()

	invites := make([]domain.Invite, 0)
	for rows.Next() {
		inv, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite: %w", err)
		}
		invites = append(invites, *inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return invites, nil
}
