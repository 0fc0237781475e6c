package domain

import "time"

// Application is a submitted registration form. It is never updated after
// submission except for the resume path recorded during the same request.
type Application struct {
	ApplicationID       int64     `json:"application_id"`
	UserID              string    `json:"user_id"`
	UserEmail           string    `json:"user_email"`
	UserName            string    `json:"user_name"`
	SubmittedAt         time.Time `json:"submitted_at"`
	School              string    `json:"school"`
	Major               string    `json:"major"`
	GradYear            string    `json:"grad_year"`
	HowDidYouHear       string    `json:"how_did_you_hear"`
	TravelReimbursement bool      `json:"travel_reimbursement"`
	TradingExperience   bool      `json:"trading_experience"`
	Teammates           []string  `json:"teammates"`
	ResumePath          string    `json:"resume_path"`
}

// Resume is an uploaded resume file.
type Resume struct {
	Filename string
	Data     []byte
}
