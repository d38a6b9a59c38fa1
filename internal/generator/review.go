package generator

import "strings"

// ReviewResult holds the structural checks run on a generated
// challenge before it is accepted.
type ReviewResult struct {
	LengthOK         bool
	SingleQuestionOK bool
	NoAnswerLeak     bool
}

func (r ReviewResult) OK() bool {
	return r.LengthOK && r.SingleQuestionOK && r.NoAnswerLeak
}

// Generated challenges are shown to young kids verbatim, so anything
// structurally off (an essay, an answer key, an empty string) gets
// rejected rather than patched up.
func ReviewChallenge(prompt string) ReviewResult {
	trimmed := strings.TrimSpace(prompt)

	lengthOK := len(trimmed) >= 10 && len(trimmed) <= 600

	// One question means at most a short lead-in plus the question
	// itself. Multi-paragraph output is a prompt violation.
	singleOK := trimmed != "" && strings.Count(trimmed, "\n\n") <= 1

	lower := strings.ToLower(trimmed)
	noLeak := !strings.Contains(lower, "answer:") &&
		!strings.Contains(lower, "the answer is") &&
		!strings.Contains(lower, "explanation:")

	return ReviewResult{
		LengthOK:         lengthOK,
		SingleQuestionOK: singleOK,
		NoAnswerLeak:     noLeak,
	}
}
