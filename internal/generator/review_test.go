package generator

import "testing"

func TestReviewChallenge(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		wantOK bool
	}{
		{"normal question", "What is 12 + 9?", true},
		{"lead-in plus question", "Read this: 'Mia planted a seed.'\n\nWhat is the main idea?", true},
		{"empty", "", false},
		{"too short", "Hi?", false},
		{"answer leaked", "What is 12 + 9? Answer: 21", false},
		{"answer phrase leaked", "What is 12 + 9? The answer is 21 because addition.", false},
		{"explanation leaked", "What is 12 + 9?\n\nExplanation: add the ones column first.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReviewChallenge(tt.prompt)
			if got.OK() != tt.wantOK {
				t.Errorf("ReviewChallenge(%q).OK() = %v, want %v (%+v)", tt.prompt, got.OK(), tt.wantOK, got)
			}
		})
	}
}

func TestReviewChallengeRejectsEssays(t *testing.T) {
	essay := "First paragraph about math.\n\nSecond paragraph with more detail.\n\nThird paragraph asking a question?"
	if ReviewChallenge(essay).OK() {
		t.Error("multi-paragraph output should fail the single-question check")
	}
}
