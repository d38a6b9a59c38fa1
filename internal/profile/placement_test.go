package profile

import "testing"

func TestDetermineLevel(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{100, 5},
		{80, 5},
		{79, 4},
		{60, 4},
		{59, 3},
		{40, 3},
		{39, 2},
		{20, 2},
		{19, 1},
		{0, 1},
	}

	for _, tt := range tests {
		if got := DetermineLevel(tt.score); got != tt.want {
			t.Errorf("DetermineLevel(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}
