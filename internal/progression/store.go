package progression

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kidtutor/backend/internal/models"
)

// ErrChallengeNotFound reports a challenge id that has no row in the
// append-only challenge log.
var ErrChallengeNotFound = errors.New("challenge not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Progress Rows ───────────────────────────────────────

// GetProgress reads the (user, subject) aggregate. A missing row reads
// as xp=0, level=1 — the row itself is only created by the first XP
// event, never by a read.
func (s *Store) GetProgress(ctx context.Context, userID, subjectID int64) (*models.UserProgress, error) {
	var p models.UserProgress
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, subject_id, xp, level, last_updated
		 FROM user_progress WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID,
	).Scan(&p.UserID, &p.SubjectID, &p.XP, &p.Level, &p.LastUpdated)
	if err == sql.ErrNoRows {
		return &models.UserProgress{UserID: userID, SubjectID: subjectID, XP: 0, Level: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

func (s *Store) GetAllProgress(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, subject_id, xp, level, last_updated
		 FROM user_progress WHERE user_id = $1 ORDER BY subject_id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get all progress: %w", err)
	}
	defer rows.Close()

	var progress []models.UserProgress
	for rows.Next() {
		var p models.UserProgress
		if err := rows.Scan(&p.UserID, &p.SubjectID, &p.XP, &p.Level, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

// addXP atomically adds to the (user, subject) total inside tx, creating
// the row on first use, and refreshes the derived level from the new
// total. The increment is a single server-side add, never a
// fetch-then-write, so concurrent completions cannot lose updates.
func (s *Store) addXP(ctx context.Context, tx *sql.Tx, userID, subjectID, amount int64) (newXP int64, newLevel int, err error) {
	err = tx.QueryRowContext(ctx,
		`INSERT INTO user_progress (user_id, subject_id, xp, level)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (user_id, subject_id)
		 DO UPDATE SET xp = user_progress.xp + EXCLUDED.xp, last_updated = NOW()
		 RETURNING xp`,
		userID, subjectID, amount,
	).Scan(&newXP)
	if err != nil {
		return 0, 0, fmt.Errorf("add xp: %w", err)
	}

	newLevel = LevelFromXP(newXP)
	if _, err := tx.ExecContext(ctx,
		`UPDATE user_progress SET level = $3 WHERE user_id = $1 AND subject_id = $2`,
		userID, subjectID, newLevel,
	); err != nil {
		return 0, 0, fmt.Errorf("refresh level: %w", err)
	}
	return newXP, newLevel, nil
}

// SeedProgress upserts a starting XP floor for a subject without ever
// lowering an existing total. Used by the intro quiz to place new
// students; level stays derived from xp.
func (s *Store) SeedProgress(ctx context.Context, userID, subjectID, xpFloor int64, level int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (user_id, subject_id, xp, level)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, subject_id)
		 DO UPDATE SET xp = GREATEST(user_progress.xp, EXCLUDED.xp),
		               level = GREATEST(user_progress.level, EXCLUDED.level),
		               last_updated = NOW()`,
		userID, subjectID, xpFloor, level,
	)
	if err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}
	return nil
}

// ── Attempt Ledger ──────────────────────────────────────

func (s *Store) GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	var c models.Challenge
	err := s.db.QueryRowContext(ctx,
		`SELECT id, subject_id, prompt, difficulty, prompt_type, created_at
		 FROM challenges WHERE id = $1`,
		challengeID,
	).Scan(&c.ID, &c.SubjectID, &c.Prompt, &c.Difficulty, &c.PromptType, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge: %w", err)
	}
	return &c, nil
}

// HasAttempt is the fast-path duplicate check. The unique constraint in
// RecordAttempt is the actual correctness guarantee.
func (s *Store) HasAttempt(ctx context.Context, userID, challengeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(
		    SELECT 1 FROM user_challenge_attempts
		    WHERE user_id = $1 AND challenge_id = $2
		)`,
		userID, challengeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attempt: %w", err)
	}
	return exists, nil
}

// insertAttempt writes the ledger row inside tx. Returns false when the
// (user, challenge) pair already has one — the caller must then treat
// the whole attempt as a duplicate and award nothing.
func (s *Store) insertAttempt(ctx context.Context, tx *sql.Tx, rec models.AttemptRecord) (bool, error) {
	result, err := tx.ExecContext(ctx,
		`INSERT INTO user_challenge_attempts (user_id, challenge_id, success, attempts, used_hint, xp_earned)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, challenge_id) DO NOTHING`,
		rec.UserID, rec.ChallengeID, rec.Success, rec.AttemptsUsed, rec.UsedHint, rec.XPEarned,
	)
	if err != nil {
		return false, fmt.Errorf("insert attempt: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert attempt rows: %w", err)
	}
	return rows > 0, nil
}

// RecordAttempt writes the ledger row and applies its XP in one
// transaction. Returns inserted=false, with nothing written, when the
// (user, challenge) pair already has a row. XP is applied only when
// positive: a failed attempt leaves user_progress untouched, so the
// row is still only created by the first actual XP event. The returned
// totals always reflect the post-attempt state (lazy default included).
func (s *Store) RecordAttempt(ctx context.Context, subjectID int64, rec models.AttemptRecord) (inserted bool, newXP int64, newLevel int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, 0, fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	inserted, err = s.insertAttempt(ctx, tx, rec)
	if err != nil {
		return false, 0, 0, err
	}
	if !inserted {
		return false, 0, 0, nil
	}

	if rec.XPEarned > 0 {
		newXP, newLevel, err = s.addXP(ctx, tx, rec.UserID, subjectID, rec.XPEarned)
		if err != nil {
			return false, 0, 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, 0, 0, fmt.Errorf("commit attempt: %w", err)
	}

	if rec.XPEarned <= 0 {
		p, err := s.GetProgress(ctx, rec.UserID, subjectID)
		if err != nil {
			return true, 0, 0, err
		}
		newXP, newLevel = p.XP, LevelFromXP(p.XP)
	}
	return true, newXP, newLevel, nil
}

// ── Freeform Prompt Log ─────────────────────────────────

// FreeformWindow returns the user's freeform attempts since the cutoff,
// the input to the rate-cap and repeat-prompt policy.
func (s *Store) FreeformWindow(ctx context.Context, userID int64, since time.Time) ([]WindowEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT prompt, xp_earned FROM user_prompt_attempts
		 WHERE user_id = $1 AND created_at >= $2`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("freeform window: %w", err)
	}
	defer rows.Close()

	var window []WindowEntry
	for rows.Next() {
		var e WindowEntry
		if err := rows.Scan(&e.Prompt, &e.XPEarned); err != nil {
			return nil, fmt.Errorf("scan window entry: %w", err)
		}
		window = append(window, e)
	}
	return window, rows.Err()
}

// RecordPrompt appends the freeform log entry and applies its XP in one
// transaction. Zero-XP outcomes (capped, repeat) are still logged so
// the sliding window sees them, but no progress row is touched.
func (s *Store) RecordPrompt(ctx context.Context, a models.PromptAttempt) (newXP int64, newLevel int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin prompt attempt: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_prompt_attempts (user_id, subject_id, prompt, success, xp_earned)
		 VALUES ($1, $2, $3, $4, $5)`,
		a.UserID, a.SubjectID, a.Prompt, a.Success, a.XPEarned,
	); err != nil {
		return 0, 0, fmt.Errorf("insert prompt attempt: %w", err)
	}

	if a.XPEarned > 0 {
		newXP, newLevel, err = s.addXP(ctx, tx, a.UserID, a.SubjectID, a.XPEarned)
		if err != nil {
			return 0, 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit prompt attempt: %w", err)
	}

	if a.XPEarned <= 0 {
		p, err := s.GetProgress(ctx, a.UserID, a.SubjectID)
		if err != nil {
			return 0, 0, err
		}
		newXP, newLevel = p.XP, LevelFromXP(p.XP)
	}
	return newXP, newLevel, nil
}
