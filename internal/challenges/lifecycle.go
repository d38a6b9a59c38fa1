package challenges

import (
	"time"

	"github.com/kidtutor/backend/internal/models"
)

const (
	minDifficulty = 1
	maxDifficulty = 5
)

// Today returns the server's reference calendar date. All daily-reset
// comparisons use the UTC date so the boundary is the same for every
// instance regardless of host locale.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// NeedsReset reports whether an active challenge's last reset date is
// stale relative to today. A missing date (no active challenge yet)
// always needs a reset.
func NeedsReset(lastReset, today string) bool {
	return lastReset != today
}

// AnyStale reports whether any of the user's active challenges is from
// a previous day. One stale subject floors them all, so a subject that
// sat idle for a week cannot stay pinned at high difficulty while its
// siblings reset.
func AnyStale(actives []models.ActiveChallenge, today string) bool {
	if len(actives) == 0 {
		return true
	}
	for _, a := range actives {
		if NeedsReset(a.LastReset, today) {
			return true
		}
	}
	return false
}

// NextDifficulty steps the difficulty up from the previous active
// challenge, clamped into the 1-5 band. A daily reset zeroes the
// previous difficulty first, so the day opens back at the floor.
func NextDifficulty(previous int, resetToFloor bool) int {
	if resetToFloor {
		previous = 0
	}
	next := previous + 1
	if next < minDifficulty {
		next = minDifficulty
	}
	if next > maxDifficulty {
		next = maxDifficulty
	}
	return next
}
