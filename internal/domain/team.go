package domain

// MaxTeamSize is the largest number of members a team may hold.
const MaxTeamSize = 4

// Team represents a group of users sharing a registration slot.
type Team struct {
	TeamID    int64    `json:"team_id"`
	MemberIDs []string `json:"teammember_ids"`
}

// HasMember reports whether userID is on the team.
func (t *Team) HasMember(userID string) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether the team is at capacity.
func (t *Team) IsFull() bool {
	return len(t.MemberIDs) >= MaxTeamSize
}

// WithMember returns the member list with userID added.
// Empty ids are dropped and duplicates collapsed.
func (t *Team) WithMember(userID string) []string {
	seen := make(map[string]struct{}, len(t.MemberIDs)+1)
	members := make([]string, 0, len(t.MemberIDs)+1)
	for _, id := range append(append([]string{}, t.MemberIDs...), userID) {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	return members
}

// WithoutMember returns the member list with userID removed.
func (t *Team) WithoutMember(userID string) []string {
	members := make([]string, 0, len(t.MemberIDs))
	for _, id := range t.MemberIDs {
		if id == "" || id == userID {
			continue
		}
		members = append(members, id)
	}
	return members
}

// MemberStatus tells whether a teammate has submitted an application.
type MemberStatus string

const (
	MemberConfirmed MemberStatus = "confirmed"
	MemberPending   MemberStatus = "pending"
)

// TeamMember is a user on a team together with their application status.
type TeamMember struct {
	User
	Status MemberStatus `json:"status"`
}

// TeamView is the dashboard projection of a team.
type TeamView struct {
	TeamID  int64        `json:"team_id"`
	Members []TeamMember `json:"members"`
}
