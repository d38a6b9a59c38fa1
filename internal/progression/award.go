package progression

import (
	"strings"
	"time"
)

// ── Challenge Mode ────────────────────────────────────────

// ChallengeMaxXP returns the full reward for a challenge of the given
// difficulty. Difficulty is clamped into 1-5 before scaling.
func ChallengeMaxXP(difficulty int) int64 {
	if difficulty < 1 {
		difficulty = 1
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return int64(difficulty) * 10
}

// ChallengeXP computes the XP for a challenge attempt. A first-try
// success earns the full reward; each retry decays it (70%, 50%, then
// 20% for attempt four onward, floored). Failures earn nothing.
func ChallengeXP(difficulty, attemptsUsed int, success bool) int64 {
	if !success {
		return 0
	}
	maxXP := ChallengeMaxXP(difficulty)
	switch {
	case attemptsUsed <= 1:
		return maxXP
	case attemptsUsed == 2:
		return maxXP * 7 / 10
	case attemptsUsed == 3:
		return maxXP / 2
	default:
		return maxXP / 5
	}
}

// ── Freeform Mode ─────────────────────────────────────────

const (
	// FreeformXP is the nominal reward for a successful freeform prompt.
	FreeformXP int64 = 2

	// FreeformHourlyCap bounds freeform XP per user over any sliding
	// 60-minute window.
	FreeformHourlyCap int64 = 10

	// FreeformWindow is the sliding window for both the cap and the
	// repeat-prompt guard.
	FreeformWindow = time.Hour
)

// Freeform award reason codes. These are policy outcomes, not errors.
const (
	ReasonRateLimited  = "rate_limited"
	ReasonRepeatPrompt = "repeat_prompt"
)

// WindowEntry is one freeform attempt inside the trailing window,
// supplied by the caller from the prompt log.
type WindowEntry struct {
	Prompt   string
	XPEarned int64
}

// NormalizePrompt folds a freeform prompt for repeat detection:
// whitespace trimmed, case folded.
func NormalizePrompt(prompt string) string {
	return strings.ToLower(strings.TrimSpace(prompt))
}

// FreeformAward computes the XP for a freeform prompt given the user's
// attempts in the trailing window. Pure: persistence and window lookup
// are the caller's job.
//
// A repeat of an earlier prompt in the window earns 0 even on success.
// Otherwise a success earns FreeformXP, truncated so the window sum
// never exceeds FreeformHourlyCap.
func FreeformAward(success bool, prompt string, window []WindowEntry) (xp int64, reason string) {
	if !success {
		return 0, ""
	}

	normalized := NormalizePrompt(prompt)
	var windowSum int64
	for _, e := range window {
		if NormalizePrompt(e.Prompt) == normalized {
			return 0, ReasonRepeatPrompt
		}
		windowSum += e.XPEarned
	}

	xp = FreeformXP
	if windowSum+xp > FreeformHourlyCap {
		xp = FreeformHourlyCap - windowSum
		if xp < 0 {
			xp = 0
		}
		return xp, ReasonRateLimited
	}
	return xp, ""
}
