package application

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/repository"
)

// Create inserts an application and returns its ID.
func Create(ctx context.Context, exec repository.DBTX, app *domain.Application) (int64, error) {
	query := `
		INSERT INTO "Applications" (
			user_id, user_email, user_name, school, major, grad_year,
			how_did_you_hear, travel_reimbursement, trading_experience, teammates
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING application_id
	`
	teammates := app.Teammates
	if teammates == nil {
		teammates = []string{}
	}

	var applicationID int64
	err := exec.QueryRowContext(ctx, query,
		app.UserID,
		app.UserEmail,
		app.UserName,
		app.School,
		app.Major,
		app.GradYear,
		app.HowDidYouHear,
		app.TravelReimbursement,
		app.TradingExperience,
		pq.Array(teammates),
	).Scan(&applicationID)
	if err != nil {
		return 0, fmt.Errorf("failed to submit application: %w", err)
	}
	return applicationID, nil
}

// SetResumePath records where the application's resume was stored.
func SetResumePath(ctx context.Context, exec repository.DBTX, applicationID int64, path string) error {
	query := `UPDATE "Applications" SET resume_path = $1 WHERE application_id = $2`
	result, err := exec.ExecContext(ctx, query, path, applicationID)
	if err != nil {
		return fmt.Errorf("failed to record resume path: %w", err)
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

// IsSubmitted reports whether userID has a submitted application.
func IsSubmitted(ctx context.Context, exec repository.DBTX, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM "Applications" WHERE user_id = $1 AND submitted_at IS NOT NULL)`
	err := exec.QueryRowContext(ctx, query, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to load application status: %w", err)
	}
	return exists, nil
}

// SubmittedUserIDs returns the subset of userIDs that have submitted an application.
func SubmittedUserIDs(ctx context.Context, exec repository.DBTX, userIDs []string) (map[string]struct{}, error) {
	submitted := make(map[string]struct{})
	if len(userIDs) == 0 {
		return submitted, nil
	}

	query := `SELECT user_id FROM "Applications" WHERE user_id = ANY($1) AND submitted_at IS NOT NULL`
	rows, err := exec.QueryContext(ctx, query, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load team applications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		submitted[userID] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return submitted, nil
}
