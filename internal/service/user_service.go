package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/tradingconf/registration/internal/domain"
	"github.com/tradingconf/registration/internal/repository/user"
)

// directoryLimit caps the number of users returned by the directory.
const directoryLimit = 5000

// UserService handles user business logic.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new user service.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// Profile returns the caller's user row.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := user.Get(ctx, s.db, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Directory lists other users for the invite picker. Users without an email are skipped.
func (s *UserService) Directory(ctx context.Context, userID string, includeTeamed bool) ([]domain.DirectoryUser, error) {
	users, err := user.Directory(ctx, s.db, userID, includeTeamed, directoryLimit)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DirectoryUser, 0, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		entry := domain.DirectoryUser{ID: u.UserID, Email: u.Email}
		if name := strings.TrimSpace(u.Name); name != "" {
			entry.FullName = &name
		}
		result = append(result, entry)
	}
	return result, nil
}
