package generator

import (
	"strings"
	"testing"

	"github.com/kidtutor/backend/internal/models"
)

func TestChallengeSystemPrompt(t *testing.T) {
	prompt := ChallengeSystemPrompt(models.SubjectMath, 3, "What is 5 + 5?", "arithmetic")

	wantContains := []string{
		"math student",
		"Level: 3",
		`Previous Challenge: "What is 5 + 5?"`,
		"Previous Type: arithmetic",
		"Do NOT include the answer",
		"Rotate between different types of math problems",
		`which was "arithmetic"`,
	}
	for _, want := range wantContains {
		if !strings.Contains(prompt, want) {
			t.Errorf("challenge prompt missing %q", want)
		}
	}
}

func TestChallengeSystemPromptFirstChallenge(t *testing.T) {
	prompt := ChallengeSystemPrompt(models.SubjectReading, 1, "", "")

	if !strings.Contains(prompt, "first challenge") {
		t.Error("first challenge should be called out when there is no previous prompt")
	}
	if strings.Contains(prompt, "Previous Type") {
		t.Error("no previous type should be mentioned on the first challenge")
	}
	if strings.Contains(prompt, "Avoid repeating the same type of question") {
		t.Error("repeat-avoidance line should be omitted without a previous type")
	}
	if !strings.Contains(prompt, "reading comprehension questions") {
		t.Error("reading variation instructions missing")
	}
}

func TestVariationInstructionsPerSubject(t *testing.T) {
	tests := []struct {
		subject models.Subject
		want    string
	}{
		{models.SubjectMath, "Missing number"},
		{models.SubjectReading, "main idea"},
		{models.SubjectSpelling, "spelled correctly"},
		{models.SubjectExploration, "Why do birds migrate"},
	}
	for _, tt := range tests {
		if got := variationInstructions(tt.subject); !strings.Contains(got, tt.want) {
			t.Errorf("variationInstructions(%s) missing %q", tt.subject, tt.want)
		}
	}
}

func TestTutorSystemPrompt(t *testing.T) {
	prompt := TutorSystemPrompt(models.SubjectMath, TutorProfile{
		Age: 8, Grade: "3rd grade", Level: 2, XP: 150,
	})

	wantContains := []string{
		"tutoring a student in math",
		"Age: 8",
		"Grade: 3rd grade",
		"Level 2 with 150 XP",
		"NEVER give direct answers",
		`"Correct!"`,
	}
	for _, want := range wantContains {
		if !strings.Contains(prompt, want) {
			t.Errorf("tutor prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "bonus challenge") {
		t.Error("non-challenge chat should not mention the bonus challenge")
	}
}

func TestTutorSystemPromptDefaults(t *testing.T) {
	prompt := TutorSystemPrompt(models.SubjectSpelling, TutorProfile{IsChallenge: true})

	wantContains := []string{
		"Age: unknown",
		"Grade: unknown grade",
		"Level 1 with 0 XP",
		"bonus challenge question",
	}
	for _, want := range wantContains {
		if !strings.Contains(prompt, want) {
			t.Errorf("tutor prompt missing %q", want)
		}
	}
}
