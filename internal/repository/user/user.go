package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/repository"
)

const columns = `user_id, user_email, user_name, team_id, role`

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*domain.User, error) {
	var (
		u      domain.User
		teamID sql.NullInt64
	)
	if err := s.Scan(&u.UserID, &u.Email, &u.Name, &teamID, &u.Role); err != nil {
		return nil, err
	}
	if teamID.Valid {
		id := teamID.Int64
		u.TeamID = &id
	}
	return &u, nil
}

// Get retrieves a user by ID.
func Get(ctx context.Context, exec repository.DBTX, userID string) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM "Users" WHERE user_id = $1`
	u, err := scan(exec.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// GetForUpdate retrieves a user by ID and locks the row until the transaction ends.
func GetForUpdate(ctx context.Context, exec repository.DBTX, userID string) (*domain.User, error) {
	query := `SELECT ` + columns + ` FROM "Users" WHERE user_id = $1 FOR UPDATE`
	u, err := scan(exec.QueryRowContext(ctx, query, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// SetTeam points the user at teamID. A nil teamID clears the reference.
// Returns sql.ErrNoRows if the user doesn't exist.
func SetTeam(ctx context.Context, exec repository.DBTX, userID string, teamID *int64) error {
	query := `UPDATE "Users" SET team_id = $1 WHERE user_id = $2`

	var value sql.NullInt64
	if teamID != nil {
		value = sql.NullInt64{Int64: *teamID, Valid: true}
	}

	result, err := exec.ExecContext(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("failed to assign team to user: %w", err)
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

// ListByTeam returns every user whose team reference is teamID, ordered by name.
func ListByTeam(ctx context.Context, exec repository.DBTX, teamID int64) ([]domain.User, error) {
	query := `SELECT ` + columns + ` FROM "Users" WHERE team_id = $1 ORDER BY user_name ASC`
	return list(ctx, exec, "failed to load team members", query, teamID)
}

// ListByIDs returns the users with the given IDs. Unknown IDs are skipped.
func ListByIDs(ctx context.Context, exec repository.DBTX, userIDs []string) ([]domain.User, error) {
	if len(userIDs) == 0 {
		return []domain.User{}, nil
	}
	query := `SELECT ` + columns + ` FROM "Users" WHERE user_id = ANY($1)`
	return list(ctx, exec, "failed to load users", query, pq.Array(userIDs))
}

// Directory lists users other than excludeUserID, ordered by name.
// Users on a team are included only when includeTeamed is set.
func Directory(ctx context.Context, exec repository.DBTX, excludeUserID string, includeTeamed bool, limit int) ([]domain.User, error) {
	query := `
		SELECT ` + columns + `
		FROM "Users"
		WHERE user_id <> $1 AND ($2 OR team_id IS NULL)
		ORDER BY user_name ASC
		LIMIT $3
	`
	return list(ctx, exec, "failed to load user directory", query, excludeUserID, includeTeamed, limit)
}

func list(ctx context.Context, exec repository.DBTX, failure, query string, args ...any) ([]domain.User, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0)
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}
