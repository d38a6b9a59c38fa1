package models

import "time"

// Challenge is an immutable generated question. Rows are append-only:
// rotation replaces the active pointer, never the challenge itself.
type Challenge struct {
	ID         int64     `json:"id"`
	SubjectID  int64     `json:"subject_id"`
	Prompt     string    `json:"prompt"`
	Difficulty int       `json:"difficulty"`
	PromptType string    `json:"prompt_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActiveChallenge is the cursor into the challenge log for one
// (user, subject) pair: at most one row, upserted on every rotation.
// LastReset is a calendar date (UTC), not a timestamp.
type ActiveChallenge struct {
	UserID      int64     `json:"user_id"`
	SubjectID   int64     `json:"subject_id"`
	ChallengeID int64     `json:"challenge_id"`
	Difficulty  int       `json:"difficulty"`
	PromptType  string    `json:"prompt_type"`
	LastReset   string    `json:"last_reset"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AdvanceChallengeRequest struct {
	Subject string `json:"subject"`
}

type ChallengeResponse struct {
	ChallengeID int64   `json:"challenge_id"`
	Subject     Subject `json:"subject"`
	Prompt      string  `json:"prompt"`
	Difficulty  int     `json:"difficulty"`
	PromptType  string  `json:"prompt_type,omitempty"`
}

type CompletedLevelsResponse struct {
	Subject Subject `json:"subject"`
	Levels  []int   `json:"completed_levels"`
}
