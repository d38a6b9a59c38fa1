package models

import "strings"

// Subject is one of the four fixed domains of study. Subjects are seeded
// into the subjects table with stable integer ids and never change at
// runtime.
type Subject string

const (
	SubjectMath        Subject = "math"
	SubjectReading     Subject = "reading"
	SubjectSpelling    Subject = "spelling"
	SubjectExploration Subject = "exploration"
)

var subjectIDs = map[Subject]int64{
	SubjectMath:        1,
	SubjectReading:     2,
	SubjectSpelling:    3,
	SubjectExploration: 4,
}

var AllSubjects = []Subject{
	SubjectMath, SubjectReading, SubjectSpelling, SubjectExploration,
}

// ParseSubject resolves a subject name (case-insensitive) to its enum
// value and stable id. ok is false for anything outside the fixed set.
func ParseSubject(name string) (Subject, int64, bool) {
	s := Subject(strings.ToLower(strings.TrimSpace(name)))
	id, ok := subjectIDs[s]
	return s, id, ok
}

// ID returns the subject's stable integer id (0 for unknown subjects).
func (s Subject) ID() int64 {
	return subjectIDs[s]
}

type SubjectInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
