package models

import "time"

// UserProgress is the per-(user, subject) XP aggregate. XP is the
// cumulative total ever earned — it never decreases — and level is always
// derived from it, never stored independently of a value recomputable
// from xp.
type UserProgress struct {
	UserID      int64     `json:"user_id"`
	SubjectID   int64     `json:"subject_id"`
	XP          int64     `json:"xp"`
	Level       int       `json:"level"`
	LastUpdated time.Time `json:"last_updated"`
}

type ProgressResponse struct {
	Subject Subject `json:"subject"`
	XP      int64   `json:"xp"`
	Level   int     `json:"level"`
}

// ── Attempt Requests/Responses ────────────────────────────

type ChallengeAttemptRequest struct {
	ChallengeID  int64 `json:"challenge_id"`
	Success      bool  `json:"success"`
	AttemptsUsed int   `json:"attempts_used"`
	UsedHint     bool  `json:"used_hint"`
}

type ChallengeAttemptResponse struct {
	XPEarned  int64 `json:"xp_earned"`
	Duplicate bool  `json:"duplicate"`
	XP        int64 `json:"xp"`
	Level     int   `json:"level"`
}

type PromptAttemptRequest struct {
	Subject string `json:"subject"`
	Prompt  string `json:"prompt"`
	Success bool   `json:"success"`
}

// PromptAttemptResponse reports the freeform award outcome. Reason is
// empty for a normal award, "rate_limited" when the hourly cap truncated
// it, or "repeat_prompt" when the anti-repetition guard zeroed it.
type PromptAttemptResponse struct {
	XPEarned int64  `json:"xp_earned"`
	Reason   string `json:"reason,omitempty"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
}

// AttemptRecord is the ledger row for one (user, challenge) pair. At most
// one exists per pair; it is immutable once written.
type AttemptRecord struct {
	UserID       int64     `json:"user_id"`
	ChallengeID  int64     `json:"challenge_id"`
	Success      bool      `json:"success"`
	AttemptsUsed int       `json:"attempts"`
	UsedHint     bool      `json:"used_hint"`
	XPEarned     int64     `json:"xp_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

// PromptAttempt is an append-only freeform log entry. It exists for
// rate-limit bookkeeping only and never gates level progression.
type PromptAttempt struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	SubjectID int64     `json:"subject_id"`
	Prompt    string    `json:"prompt"`
	Success   bool      `json:"success"`
	XPEarned  int64     `json:"xp_earned"`
	CreatedAt time.Time `json:"created_at"`
}
