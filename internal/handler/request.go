package handler

import (
	"encoding/json"
	"mime/multipart"
	"strings"
)

// SendInviteRequest represents request body for POST /send_team_invite.
type SendInviteRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
	TeamID   int64  `json:"team_id" binding:"required,gt=0"`
}

// InviteActionRequest represents request body for the accept, reject and cancel endpoints.
type InviteActionRequest struct {
	InviteID string `json:"invite_id" binding:"required,uuid"`
}

// ApplicationRequest represents the multipart form for POST /application.
type ApplicationRequest struct {
	School              string                `form:"school" binding:"required"`
	Major               string                `form:"major" binding:"required"`
	GradYear            string                `form:"grad_year" binding:"required"`
	HowDidYouHear       string                `form:"how_did_you_hear" binding:"required"`
	TravelReimbursement string                `form:"travel_reimbursement" binding:"required"`
	TradingExperience   string                `form:"trading_experience" binding:"required"`
	Teammates           string                `form:"teammates"`
	Resume              *multipart.FileHeader `form:"resume"`
}

// parseBool accepts "true" or "false" in any case, ignoring surrounding space.
func parseBool(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseTeammates reads the teammates field, which is either a JSON array of
// ids or a single bare id. Blank entries are dropped.
func parseTeammates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return []string{raw}
	}

	var ids []string
	switch v := decoded.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			ids = append(ids, s)
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				ids = append(ids, s)
			}
		}
	}
	return ids
}
