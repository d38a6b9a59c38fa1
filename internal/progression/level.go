package progression

import "math"

// XPRequiredForLevel returns the XP needed to advance from the given
// level to the next one: floor(100 * level^1.15).
func XPRequiredForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(math.Floor(100 * math.Pow(float64(level), 1.15)))
}

// LevelFromXP derives the level for a cumulative XP total by walking the
// curve from level 1, subtracting each level's requirement while the
// remainder still covers it. Monotonic non-decreasing in xp and defined
// for all xp (negatives read as 0).
//
// This is the only authority for level. The stored level column is a
// projection of xp through this function, refreshed on every write.
func LevelFromXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	level := 1
	for {
		required := XPRequiredForLevel(level)
		if xp < required {
			return level
		}
		xp -= required
		level++
	}
}

// XPFloorForLevel returns the minimum cumulative XP total at which
// LevelFromXP reports the given level: the sum of the per-level
// requirements below it.
func XPFloorForLevel(level int) int64 {
	var total int64
	for l := 1; l < level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelProgress splits a cumulative total into the derived level, the XP
// accumulated within that level, and the XP required to finish it.
func LevelProgress(xp int64) (level int, into int64, required int64) {
	if xp < 0 {
		xp = 0
	}
	level = LevelFromXP(xp)
	into = xp - XPFloorForLevel(level)
	required = XPRequiredForLevel(level)
	return level, into, required
}
