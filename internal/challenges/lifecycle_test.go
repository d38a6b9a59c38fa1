package challenges

import (
	"testing"

	"github.com/kidtutor/backend/internal/models"
)

func TestNeedsReset(t *testing.T) {
	tests := []struct {
		name      string
		lastReset string
		today     string
		want      bool
	}{
		{"same day", "2026-09-01", "2026-09-01", false},
		{"yesterday", "2026-08-31", "2026-09-01", true},
		{"last week", "2026-08-25", "2026-09-01", true},
		{"never reset", "", "2026-09-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsReset(tt.lastReset, tt.today); got != tt.want {
				t.Errorf("NeedsReset(%q, %q) = %v, want %v", tt.lastReset, tt.today, got, tt.want)
			}
		})
	}
}

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		reset    bool
		want     int
	}{
		{"first challenge of the day", 0, true, 1},
		{"reset ignores prior progress", 4, true, 1},
		{"steps up within the day", 1, false, 2},
		{"steps up from four", 4, false, 5},
		{"caps at five", 5, false, 5},
		{"no active challenge", 0, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextDifficulty(tt.previous, tt.reset); got != tt.want {
				t.Errorf("NextDifficulty(%d, %v) = %d, want %d", tt.previous, tt.reset, got, tt.want)
			}
		})
	}
}

func TestAnyStale(t *testing.T) {
	today := "2026-09-01"
	fresh := models.ActiveChallenge{SubjectID: 1, LastReset: today}
	stale := models.ActiveChallenge{SubjectID: 2, LastReset: "2026-08-31"}

	tests := []struct {
		name    string
		actives []models.ActiveChallenge
		want    bool
	}{
		{"no challenges yet", nil, true},
		{"all fresh", []models.ActiveChallenge{fresh}, false},
		{"all stale", []models.ActiveChallenge{stale}, true},
		{"one stale subject floors the rest", []models.ActiveChallenge{fresh, stale}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnyStale(tt.actives, today); got != tt.want {
				t.Errorf("AnyStale(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

// A full in-day run should walk the difficulty ladder 1 through 5 and
// then stay pinned at 5 until the next day resets it.
func TestDifficultyLadder(t *testing.T) {
	difficulty := 0
	var seen []int
	for i := 0; i < 7; i++ {
		difficulty = NextDifficulty(difficulty, i == 0)
		seen = append(seen, difficulty)
	}
	want := []int{1, 2, 3, 4, 5, 5, 5}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("ladder step %d = %d, want %d (full: %v)", i, seen[i], want[i], seen)
		}
	}

	// New day: back to the floor regardless of where we ended.
	if got := NextDifficulty(difficulty, true); got != 1 {
		t.Errorf("next-day reset = %d, want 1", got)
	}
}
