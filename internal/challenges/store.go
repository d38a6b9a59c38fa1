package challenges

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kidtutor/backend/internal/models"
)

// Store handles database operations for challenges and per-user
// active challenge state.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin(ctx context.Context) (*sql.Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// GetActive returns the user's active challenge for a subject, or nil
// if none exists yet.
func (s *Store) GetActive(ctx context.Context, userID, subjectID int64) (*models.ActiveChallenge, error) {
	var a models.ActiveChallenge
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, subject_id, challenge_id, difficulty, prompt_type, to_char(last_reset, 'YYYY-MM-DD'), updated_at
		FROM active_challenges
		WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID,
	).Scan(&a.UserID, &a.SubjectID, &a.ChallengeID, &a.Difficulty, &a.PromptType, &a.LastReset, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active challenge: %w", err)
	}
	return &a, nil
}

// ListActive returns all of the user's active challenges across subjects.
func (s *Store) ListActive(ctx context.Context, userID int64) ([]models.ActiveChallenge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, subject_id, challenge_id, difficulty, prompt_type, to_char(last_reset, 'YYYY-MM-DD'), updated_at
		FROM active_challenges
		WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active challenges: %w", err)
	}
	defer rows.Close()

	var actives []models.ActiveChallenge
	for rows.Next() {
		var a models.ActiveChallenge
		if err := rows.Scan(&a.UserID, &a.SubjectID, &a.ChallengeID, &a.Difficulty, &a.PromptType, &a.LastReset, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active challenge: %w", err)
		}
		actives = append(actives, a)
	}
	return actives, rows.Err()
}

func (s *Store) GetChallenge(ctx context.Context, id int64) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.QueryRowContext(ctx, `
		SELECT id, subject_id, prompt, difficulty, prompt_type, created_at
		FROM challenges
		WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.SubjectID, &c.Prompt, &c.Difficulty, &c.PromptType, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}
	return &c, nil
}

// InsertChallenge appends a new challenge row and returns its id.
// Challenge rows are append-only; the active_challenges pointer is what
// moves.
func (s *Store) InsertChallenge(ctx context.Context, tx *sql.Tx, subjectID int64, prompt string, difficulty int, promptType string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO challenges (subject_id, prompt, difficulty, prompt_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		subjectID, prompt, difficulty, promptType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert challenge: %w", err)
	}
	return id, nil
}

// UpsertActive points the user's active challenge for a subject at a
// new challenge row, stamping today's reset date.
func (s *Store) UpsertActive(ctx context.Context, tx *sql.Tx, userID, subjectID, challengeID int64, difficulty int, promptType, today string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO active_challenges (user_id, subject_id, challenge_id, difficulty, prompt_type, last_reset, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, subject_id)
		DO UPDATE SET challenge_id = EXCLUDED.challenge_id,
			difficulty = EXCLUDED.difficulty,
			prompt_type = EXCLUDED.prompt_type,
			last_reset = EXCLUDED.last_reset,
			updated_at = NOW()`,
		userID, subjectID, challengeID, difficulty, promptType, today,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert active challenge: %w", err)
	}
	return nil
}

// ResetAllToFloor drops every active challenge the user has back to
// difficulty 1 and stamps today's date. Used for the cross-subject
// catch-up when any subject went stale.
func (s *Store) ResetAllToFloor(ctx context.Context, tx *sql.Tx, userID int64, today string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE active_challenges
		SET difficulty = 1, prompt_type = '', last_reset = $2, updated_at = NOW()
		WHERE user_id = $1`,
		userID, today,
	)
	if err != nil {
		return fmt.Errorf("failed to reset active challenges: %w", err)
	}
	return nil
}

// CompletedLevels returns the distinct difficulties the user has
// beaten for a subject, ascending.
func (s *Store) CompletedLevels(ctx context.Context, userID, subjectID int64) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT c.difficulty
		FROM user_challenge_attempts a
		JOIN challenges c ON c.id = a.challenge_id
		WHERE a.user_id = $1 AND c.subject_id = $2 AND a.success = TRUE
		ORDER BY c.difficulty`,
		userID, subjectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed levels: %w", err)
	}
	defer rows.Close()

	levels := []int{}
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan completed level: %w", err)
		}
		levels = append(levels, d)
	}
	return levels, rows.Err()
}
