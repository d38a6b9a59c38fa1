package generator

import (
	"fmt"
	"strings"

	"github.com/kidtutor/backend/internal/models"
)

// ChallengeSystemPrompt builds the system prompt for generating the
// next challenge question. It feeds back the previous prompt and its
// classified type so consecutive challenges vary in structure.
func ChallengeSystemPrompt(subject models.Subject, level int, prevPrompt, prevPromptType string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an intelligent tutor generating personalized challenge questions for a %s student.\n\n", subject)

	b.WriteString("### Student Info\n")
	fmt.Fprintf(&b, "- Level: %d\n", level)
	fmt.Fprintf(&b, "- Subject: %s\n", subject)
	if prevPrompt != "" {
		fmt.Fprintf(&b, "- Previous Challenge: %q\n", prevPrompt)
	} else {
		b.WriteString("- This is the student's first challenge.\n")
	}
	if prevPromptType != "" {
		fmt.Fprintf(&b, "- Previous Type: %s\n", prevPromptType)
	}

	b.WriteString(`
### Task
Create a new challenge question that builds on the student's progress and is slightly more difficult.

### Rules
1. Increase difficulty by:
   - Adding one more step
   - Using slightly larger numbers or deeper reasoning
`)
	fmt.Fprintf(&b, "2. Make it short, clear, and grade-appropriate for level %d\n", level)
	b.WriteString(`3. Do NOT include the answer or explanations.
4. Return only a single question - nothing more.

`)

	b.WriteString(variationInstructions(subject))
	if prevPromptType != "" {
		fmt.Fprintf(&b, "\nAvoid repeating the same type of question as last time, which was %q.\n", prevPromptType)
	}

	return strings.TrimSpace(b.String())
}

func variationInstructions(subject models.Subject) string {
	switch subject {
	case models.SubjectMath:
		return `Rotate between different types of math problems:
- Arithmetic (addition, subtraction, multiplication, division)
- Word problems involving real-life scenarios
- Patterns and sequences
- Comparisons (greater/less)
- Estimations
- Missing number (e.g., 3 + ? = 10)
Avoid repeating the same structure as the last prompt.
`
	case models.SubjectReading:
		return `Generate reading comprehension questions like:
- What is the main idea?
- What might happen next?
- Why did the character do that?
- What word means the same as...?
Use short fictional or factual excerpts appropriate for the level.
`
	case models.SubjectSpelling:
		return `Create spelling-based challenges like:
- "Which word is spelled correctly: A) freind, B) friend, C) freand?"
- "Spell the word that means a small dog."
- "Fix the spelling mistake in: 'The boy runned to the store.'"
Keep it fun and level-appropriate.
`
	case models.SubjectExploration:
		return `Ask open-ended or knowledge-building questions about:
- Nature (e.g., Why do birds migrate?)
- Science (e.g., What happens when water boils?)
- Geography (e.g., Name a place that is always cold)
Use quiz or thought-provoking formats that make them curious.
`
	default:
		return ""
	}
}

// TutorProfile carries the student facts the tutor personalizes on.
// Zero values render as "unknown" rather than being omitted.
type TutorProfile struct {
	Age         int
	Grade       string
	Level       int
	XP          int64
	IsChallenge bool
}

// TutorSystemPrompt builds the persona prompt for a tutoring chat.
// The tutor never gives direct answers and marks correct work with a
// leading "Correct!" so the client can detect success.
func TutorSystemPrompt(subject models.Subject, p TutorProfile) string {
	age := "unknown"
	if p.Age > 0 {
		age = fmt.Sprintf("%d", p.Age)
	}
	grade := p.Grade
	if grade == "" {
		grade = "unknown grade"
	}
	level := p.Level
	if level < 1 {
		level = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are tutoring a student in %s. Here is what you know about them:\n", subject)
	fmt.Fprintf(&b, "- Age: %s\n", age)
	fmt.Fprintf(&b, "- Grade: %s\n", grade)
	fmt.Fprintf(&b, "- Skill level in %s: Level %d with %d XP\n", subject, level, p.XP)
	if p.IsChallenge {
		b.WriteString("- This is a bonus challenge question. Make it feel special and rewarding!\n")
	}

	b.WriteString(`
Adjust your teaching accordingly:
- Use language appropriate for their age and grade.
- If the level is low, be very gentle, use examples, and explain slowly.
- If the level is high, challenge them more with deeper questions.
- NEVER give direct answers immediately.
Instead, guide them with helpful hints, analogies, or follow-up questions.
Always begin correct feedback with: "Correct!" and praise effort.

Stay encouraging, playful, and concise to match a kid's attention span.`)

	return strings.TrimSpace(b.String())
}
