package profile

// DetermineLevel maps an intro-quiz score (0-100) to a starting level
// band. Anything below 20 starts at the floor.
func DetermineLevel(score int) int {
	switch {
	case score >= 80:
		return 5
	case score >= 60:
		return 4
	case score >= 40:
		return 3
	case score >= 20:
		return 2
	default:
		return 1
	}
}
