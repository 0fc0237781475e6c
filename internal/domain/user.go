package domain

// User mirrors an identity provider account in the relational store.
type User struct {
	UserID string `json:"user_id"`
	Email  string `json:"user_email"`
	Name   string `json:"user_name"`
	TeamID *int64 `json:"team_id"`
	Role   string `json:"role"`
}

// DirectoryUser is the public listing form of a user.
type DirectoryUser struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}
