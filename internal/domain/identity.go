package domain

import "strings"

// fallbackDisplayName is used when the identity carries neither a name nor an email.
const fallbackDisplayName = "Unnamed applicant"

// Identity is the verified caller behind a bearer token.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	FullName  string
	FirstName string
	LastName  string
}

// DisplayName picks full_name, then "first last", then email.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.FullName); name != "" {
		return name
	}

	parts := make([]string, 0, 2)
	for _, p := range []string{i.FirstName, i.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	if email := strings.TrimSpace(i.Email); email != "" {
		return email
	}
	return fallbackDisplayName
}

// ContactEmail returns the trimmed email or the placeholder name.
func (i Identity) ContactEmail() string {
	if email := strings.TrimSpace(i.Email); email != "" {
		return email
	}
	return fallbackDisplayName
}
