package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kidtutor/backend/internal/models"
)

// Store handles database operations for user profiles.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// GetProfile returns the user's profile, or nil if they have not
// created one yet.
func (s *Store) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var p models.UserProfile
	var startingMath, startingReading sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, age, grade, gender, started_intro_quiz, completed_intro_quiz,
			starting_math_level, starting_reading_level, updated_at
		FROM user_profiles
		WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Age, &p.Grade, &p.Gender, &p.StartedIntroQuiz, &p.CompletedIntroQuiz,
		&startingMath, &startingReading, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	p.StartingMathLevel = int(startingMath.Int64)
	p.StartingReadingLevel = int(startingReading.Int64)
	return &p, nil
}

// UpsertProfile saves age, grade and gender, and marks the intro quiz
// as started. Quiz completion state is never touched here.
func (s *Store) UpsertProfile(ctx context.Context, userID int64, req models.ProfileRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profiles (user_id, age, grade, gender, started_intro_quiz, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET age = EXCLUDED.age,
			grade = EXCLUDED.grade,
			gender = EXCLUDED.gender,
			started_intro_quiz = TRUE,
			updated_at = NOW()`,
		userID, req.Age, req.Grade, req.Gender,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// CompleteIntroQuiz records the placement levels and marks the quiz
// finished.
func (s *Store) CompleteIntroQuiz(ctx context.Context, userID int64, mathLevel, readingLevel int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET starting_math_level = $2,
			starting_reading_level = $3,
			started_intro_quiz = TRUE,
			completed_intro_quiz = TRUE,
			updated_at = NOW()
		WHERE user_id = $1`,
		userID, mathLevel, readingLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to complete intro quiz: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete intro quiz: %w", err)
	}
	if rows == 0 {
		return ErrNoProfile
	}
	return nil
}
