package domain

import "time"

// EmailNotProvided is stored when the candidate leaves their email blank.
const EmailNotProvided = "Not provided"

// UserInfo is captured before the first question.
type UserInfo struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	AccessorsName  string `json:"accessorsName,omitempty"`
	AccessorsEmail string `json:"accessorsEmail,omitempty"`
}

// SubmissionRecord is the persisted result of one completed assessment.
// Responses and SectionScores hold serialized JSON.
type SubmissionRecord struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	AccessorsName  string    `json:"accessorsName,omitempty"`
	AccessorsEmail string    `json:"accessorsEmail,omitempty"`
	Responses      string    `json:"responses"`
	TotalScore     int       `json:"totalScore"`
	SectionScores  string    `json:"sectionScores"`
	CompletedAt    time.Time `json:"completedAt"`
}
