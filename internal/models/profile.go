package models

import "time"

// UserProfile holds the student facts used to personalize tutoring,
// plus intro-quiz state. Starting levels record what the quiz placed
// the student at; ongoing progress lives in user_progress.
type UserProfile struct {
	UserID               int64     `json:"user_id"`
	Age                  int       `json:"age"`
	Grade                string    `json:"grade"`
	Gender               string    `json:"gender,omitempty"`
	StartedIntroQuiz     bool      `json:"started_intro_quiz"`
	CompletedIntroQuiz   bool      `json:"completed_intro_quiz"`
	StartingMathLevel    int       `json:"starting_math_level,omitempty"`
	StartingReadingLevel int       `json:"starting_reading_level,omitempty"`
	UpdatedAt            time.Time `json:"updated_at"`
}

type ProfileRequest struct {
	Age    int    `json:"age"`
	Grade  string `json:"grade"`
	Gender string `json:"gender"`
}

type ProfileStatusResponse struct {
	HasProfile         bool `json:"has_profile"`
	StartedIntroQuiz   bool `json:"started_intro_quiz"`
	CompletedIntroQuiz bool `json:"completed_intro_quiz"`
}

type IntroQuizRequest struct {
	MathScore    int `json:"math_score"`
	ReadingScore int `json:"reading_score"`
}

type IntroQuizResponse struct {
	MathLevel    int `json:"math_level"`
	ReadingLevel int `json:"reading_level"`
}
