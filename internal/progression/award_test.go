package progression

import "testing"

func TestChallengeMaxXP(t *testing.T) {
	tests := []struct {
		difficulty int
		want       int64
	}{
		{1, 10},
		{3, 30},
		{5, 50},
		{0, 10},  // clamped up
		{-2, 10}, // clamped up
		{9, 50},  // clamped down
	}

	for _, tt := range tests {
		got := ChallengeMaxXP(tt.difficulty)
		if got != tt.want {
			t.Errorf("ChallengeMaxXP(%d) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestChallengeXPDecaySchedule(t *testing.T) {
	// Difficulty 5: 50 max, decaying 100% / 70% / 50% / 20%
	tests := []struct {
		attempts int
		want     int64
	}{
		{1, 50},
		{2, 35},
		{3, 25},
		{4, 10},
		{7, 10}, // attempt 4+ all pay the floor tier
	}

	for _, tt := range tests {
		got := ChallengeXP(5, tt.attempts, true)
		if got != tt.want {
			t.Errorf("ChallengeXP(5, %d, true) = %d, want %d", tt.attempts, got, tt.want)
		}
	}
}

func TestChallengeXPFailureEarnsNothing(t *testing.T) {
	for attempts := 1; attempts <= 5; attempts++ {
		if got := ChallengeXP(5, attempts, false); got != 0 {
			t.Errorf("ChallengeXP(5, %d, false) = %d, want 0", attempts, got)
		}
	}
}

func TestChallengeXPFlooring(t *testing.T) {
	// floor(30 * 0.7) = 21, floor(30 * 0.5) = 15, floor(30 * 0.2) = 6
	if got := ChallengeXP(3, 2, true); got != 21 {
		t.Errorf("ChallengeXP(3, 2, true) = %d, want 21", got)
	}
	if got := ChallengeXP(3, 3, true); got != 15 {
		t.Errorf("ChallengeXP(3, 3, true) = %d, want 15", got)
	}
	if got := ChallengeXP(3, 4, true); got != 6 {
		t.Errorf("ChallengeXP(3, 4, true) = %d, want 6", got)
	}
}

func TestFreeformAward(t *testing.T) {
	// First prompt of the hour: full reward
	xp, reason := FreeformAward(true, "why is the sky blue?", nil)
	if xp != 2 || reason != "" {
		t.Errorf("FreeformAward(empty window) = (%d, %q), want (2, \"\")", xp, reason)
	}

	// Failure: nothing, no reason
	xp, reason = FreeformAward(false, "why is the sky blue?", nil)
	if xp != 0 || reason != "" {
		t.Errorf("FreeformAward(failure) = (%d, %q), want (0, \"\")", xp, reason)
	}
}

func TestFreeformHourlyCap(t *testing.T) {
	// Five full awards fill the 10 XP cap; the sixth earns nothing.
	var window []WindowEntry
	for i := 0; i < 5; i++ {
		window = append(window, WindowEntry{Prompt: prompts[i], XPEarned: 2})
	}

	xp, reason := FreeformAward(true, "a brand new question", window)
	if xp != 0 || reason != ReasonRateLimited {
		t.Errorf("FreeformAward(full window) = (%d, %q), want (0, %q)", xp, reason, ReasonRateLimited)
	}

	// A partially filled window truncates to reach the cap exactly.
	xp, reason = FreeformAward(true, "a brand new question", window[:4])
	if xp != 2 || reason != "" {
		t.Errorf("FreeformAward(8 XP in window) = (%d, %q), want (2, \"\")", xp, reason)
	}

	partial := append([]WindowEntry{}, window[:4]...)
	partial = append(partial, WindowEntry{Prompt: "another one", XPEarned: 1})
	xp, reason = FreeformAward(true, "a brand new question", partial)
	if xp != 1 || reason != ReasonRateLimited {
		t.Errorf("FreeformAward(9 XP in window) = (%d, %q), want (1, %q)", xp, reason, ReasonRateLimited)
	}
}

var prompts = []string{
	"what is 2 + 2?",
	"how do plants grow?",
	"why do birds migrate?",
	"what happens when water boils?",
	"name a place that is always cold",
}

func TestFreeformAntiRepetition(t *testing.T) {
	window := []WindowEntry{{Prompt: "Why do birds migrate?", XPEarned: 2}}

	// Identical after trimming and case folding: zero even on success
	xp, reason := FreeformAward(true, "  why do BIRDS migrate?  ", window)
	if xp != 0 || reason != ReasonRepeatPrompt {
		t.Errorf("FreeformAward(repeat) = (%d, %q), want (0, %q)", xp, reason, ReasonRepeatPrompt)
	}

	// A different prompt is unaffected
	xp, reason = FreeformAward(true, "why do fish swim?", window)
	if xp != 2 || reason != "" {
		t.Errorf("FreeformAward(distinct) = (%d, %q), want (2, \"\")", xp, reason)
	}
}

func TestNormalizePrompt(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"ALREADY LOWER?", "already lower?"},
		{"unchanged", "unchanged"},
	}

	for _, tt := range tests {
		if got := NormalizePrompt(tt.in); got != tt.want {
			t.Errorf("NormalizePrompt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
