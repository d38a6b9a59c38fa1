package progression

import "testing"

func TestXPRequiredForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{1, 100},
		{2, 221},
		{3, 353},
		{4, 492},
		{5, 636},
	}

	for _, tt := range tests {
		got := XPRequiredForLevel(tt.level)
		if got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}

	// Levels below 1 clamp to the level-1 requirement
	if got := XPRequiredForLevel(0); got != 100 {
		t.Errorf("XPRequiredForLevel(0) = %d, want 100", got)
	}
}

func TestLevelFromXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},   // exactly the level-1 requirement
		{320, 2},   // 100 + 221 = 321 needed for level 3
		{321, 3},
		{-5, 1},    // negatives read as zero
	}

	for _, tt := range tests {
		got := LevelFromXP(tt.xp)
		if got != tt.want {
			t.Errorf("LevelFromXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestLevelMonotonicity(t *testing.T) {
	prev := LevelFromXP(0)
	for xp := int64(1); xp <= 5000; xp++ {
		level := LevelFromXP(xp)
		if level < prev {
			t.Fatalf("LevelFromXP decreased: xp=%d level=%d, previous=%d", xp, level, prev)
		}
		prev = level
	}
}

func TestLevelCurveRoundTrip(t *testing.T) {
	for level := 1; level <= 20; level++ {
		floor := XPFloorForLevel(level)
		if got := LevelFromXP(floor); got != level {
			t.Errorf("LevelFromXP(XPFloorForLevel(%d)=%d) = %d, want %d", level, floor, got, level)
		}
		if got := LevelFromXP(floor + 1); got < level {
			t.Errorf("LevelFromXP(%d) = %d, dropped below %d", floor+1, got, level)
		}
	}
}

func TestLevelProgress(t *testing.T) {
	// 150 total XP: level 2 (needs 100), 50 into it, 221 to finish
	level, into, required := LevelProgress(150)
	if level != 2 || into != 50 || required != 221 {
		t.Errorf("LevelProgress(150) = (%d, %d, %d), want (2, 50, 221)", level, into, required)
	}

	level, into, required = LevelProgress(0)
	if level != 1 || into != 0 || required != 100 {
		t.Errorf("LevelProgress(0) = (%d, %d, %d), want (1, 0, 100)", level, into, required)
	}
}

// Five first-try difficulty-2 completions accumulate to exactly the
// level-2 threshold.
func TestAccumulationToLevelTwo(t *testing.T) {
	var xp int64
	for i := 0; i < 5; i++ {
		if got := LevelFromXP(xp); i < 5 && xp < 100 && got != 1 {
			t.Fatalf("LevelFromXP(%d) = %d before threshold, want 1", xp, got)
		}
		xp += ChallengeXP(2, 1, true)
	}
	if xp != 100 {
		t.Fatalf("accumulated xp = %d, want 100", xp)
	}
	if got := LevelFromXP(xp); got != 2 {
		t.Errorf("LevelFromXP(100) = %d, want 2", got)
	}
}
