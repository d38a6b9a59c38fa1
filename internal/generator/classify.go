package generator

import (
	"regexp"
	"strings"

	"github.com/kidtutor/backend/internal/models"
)

// Classification keys off surface features of the generated question.
// Rules run top to bottom; first match wins.
var (
	reMissingNumber = regexp.MustCompile(`(?i)missing number`)
	// Deliberately loose: case-sensitive, substring-level ("busy" hits
	// "bus"). The label only steers variation in the next prompt, it
	// never gates an award, so false positives are harmless.
	reWordProblem = regexp.MustCompile(`real[- ]?life|bus|apples|shopping|story`)
	rePattern       = regexp.MustCompile(`pattern|sequence`)
	reEstimation    = regexp.MustCompile(`(?i)estimate`)

	reMainIdea   = regexp.MustCompile(`(?i)main idea`)
	reInference  = regexp.MustCompile(`(?i)character|happen next|why`)
	reVocabulary = regexp.MustCompile(`(?i)means the same as`)

	reFillIn         = regexp.MustCompile(`(?i)spell the word`)
	reMultipleChoice = regexp.MustCompile(`(?i)which word is spelled correctly`)
	reCorrection     = regexp.MustCompile(`(?i)fix the spelling`)

	reCuriosity = regexp.MustCompile(`(?i)why|what happens`)
	reFact      = regexp.MustCompile(`(?i)name a|identify a`)
)

// DetectPromptType classifies a generated question into a per-subject
// type label. The label is stored with the active challenge and fed
// back into the next generation so question structures rotate.
func DetectPromptType(prompt string, subject models.Subject) string {
	switch subject {
	case models.SubjectMath:
		switch {
		case reMissingNumber.MatchString(prompt) || hasInlinePlaceholder(prompt):
			return "missing_number"
		case reWordProblem.MatchString(prompt):
			return "word_problem"
		case rePattern.MatchString(prompt):
			return "pattern"
		case reEstimation.MatchString(prompt):
			return "estimation"
		default:
			return "arithmetic"
		}
	case models.SubjectReading:
		switch {
		case reMainIdea.MatchString(prompt):
			return "main_idea"
		case reInference.MatchString(prompt):
			return "inference"
		case reVocabulary.MatchString(prompt):
			return "vocabulary"
		default:
			return "reading_comprehension"
		}
	case models.SubjectSpelling:
		switch {
		case reFillIn.MatchString(prompt):
			return "fill_in"
		case reMultipleChoice.MatchString(prompt):
			return "multiple_choice"
		case reCorrection.MatchString(prompt):
			return "correction"
		default:
			return "spelling_basic"
		}
	case models.SubjectExploration:
		switch {
		case reCuriosity.MatchString(prompt):
			return "curiosity_question"
		case reFact.MatchString(prompt):
			return "fact_question"
		default:
			return "exploration_general"
		}
	default:
		return "general"
	}
}

// hasInlinePlaceholder reports whether a "?" stands in for an operand,
// as in "3 + ? = 10". Nearly every question ends in "?", so only a
// question mark before the final character counts.
func hasInlinePlaceholder(prompt string) bool {
	trimmed := strings.TrimRight(strings.TrimSpace(prompt), "?")
	return strings.Contains(trimmed, "?")
}
