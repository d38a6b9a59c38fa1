package progression

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kidtutor/backend/internal/models"
)

// Storage is the persistence surface the service drives. *Store is the
// production implementation; tests substitute fakes.
type Storage interface {
	GetProgress(ctx context.Context, userID, subjectID int64) (*models.UserProgress, error)
	GetAllProgress(ctx context.Context, userID int64) ([]models.UserProgress, error)
	SeedProgress(ctx context.Context, userID, subjectID, xpFloor int64, level int) error
	GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error)
	HasAttempt(ctx context.Context, userID, challengeID int64) (bool, error)
	RecordAttempt(ctx context.Context, subjectID int64, rec models.AttemptRecord) (inserted bool, newXP int64, newLevel int, err error)
	FreeformWindow(ctx context.Context, userID int64, since time.Time) ([]WindowEntry, error)
	RecordPrompt(ctx context.Context, a models.PromptAttempt) (newXP int64, newLevel int, err error)
}

type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

// ── Progress Reads ──────────────────────────────────────

func (s *Service) GetProgress(ctx context.Context, userID, subjectID int64) (*models.UserProgress, error) {
	return s.store.GetProgress(ctx, userID, subjectID)
}

// GetAllProgress returns one entry per subject, filling untouched
// subjects with the xp=0, level=1 default.
func (s *Service) GetAllProgress(ctx context.Context, userID int64) ([]models.ProgressResponse, error) {
	rows, err := s.store.GetAllProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	bySubject := make(map[int64]models.UserProgress, len(rows))
	for _, p := range rows {
		bySubject[p.SubjectID] = p
	}

	resp := make([]models.ProgressResponse, 0, len(models.AllSubjects))
	for _, subject := range models.AllSubjects {
		entry := models.ProgressResponse{Subject: subject, XP: 0, Level: 1}
		if p, ok := bySubject[subject.ID()]; ok {
			entry.XP = p.XP
			entry.Level = LevelFromXP(p.XP)
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

// ── Challenge Attempts ──────────────────────────────────

// RecordChallengeAttempt runs the at-most-once award path: ledger check,
// XP policy, ledger insert and progress increment in one transaction. A
// repeat submission for the same challenge is a recognized outcome
// (duplicate=true, zero XP), not an error.
func (s *Service) RecordChallengeAttempt(ctx context.Context, userID int64, req models.ChallengeAttemptRequest) (*models.ChallengeAttemptResponse, error) {
	challenge, err := s.store.GetChallenge(ctx, req.ChallengeID)
	if err != nil {
		return nil, err
	}

	attemptsUsed := req.AttemptsUsed
	if attemptsUsed < 1 {
		attemptsUsed = 1
	}

	// Fast path. The unique constraint inside RecordAttempt is the real
	// duplicate guard; this only avoids pointless work.
	if exists, err := s.store.HasAttempt(ctx, userID, req.ChallengeID); err == nil && exists {
		return s.duplicateResponse(ctx, userID, challenge.SubjectID)
	}

	xp := ChallengeXP(challenge.Difficulty, attemptsUsed, req.Success)

	inserted, newXP, newLevel, err := s.store.RecordAttempt(ctx, challenge.SubjectID, models.AttemptRecord{
		UserID:       userID,
		ChallengeID:  req.ChallengeID,
		Success:      req.Success,
		AttemptsUsed: attemptsUsed,
		UsedHint:     req.UsedHint,
		XPEarned:     xp,
	})
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost a race with a concurrent submission of the same challenge.
		return s.duplicateResponse(ctx, userID, challenge.SubjectID)
	}

	if xp > 0 {
		log.Printf("[progression] user %d earned %d XP on challenge %d (attempt %d)",
			userID, xp, req.ChallengeID, attemptsUsed)
	}

	return &models.ChallengeAttemptResponse{
		XPEarned:  xp,
		Duplicate: false,
		XP:        newXP,
		Level:     newLevel,
	}, nil
}

func (s *Service) duplicateResponse(ctx context.Context, userID, subjectID int64) (*models.ChallengeAttemptResponse, error) {
	progress, err := s.store.GetProgress(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	return &models.ChallengeAttemptResponse{
		XPEarned:  0,
		Duplicate: true,
		XP:        progress.XP,
		Level:     LevelFromXP(progress.XP),
	}, nil
}

// ── Freeform Attempts ───────────────────────────────────

// RecordPromptAttempt logs a freeform question and awards its capped XP.
// Unlike challenge attempts there is no uniqueness: the log is
// append-only and only feeds the sliding-window policy.
func (s *Service) RecordPromptAttempt(ctx context.Context, userID int64, req models.PromptAttemptRequest) (*models.PromptAttemptResponse, error) {
	_, subjectID, ok := models.ParseSubject(req.Subject)
	if !ok {
		return nil, fmt.Errorf("invalid subject %q", req.Subject)
	}

	since := time.Now().UTC().Add(-FreeformWindow)
	window, err := s.store.FreeformWindow(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	xp, reason := FreeformAward(req.Success, req.Prompt, window)

	newXP, newLevel, err := s.store.RecordPrompt(ctx, models.PromptAttempt{
		UserID:    userID,
		SubjectID: subjectID,
		Prompt:    req.Prompt,
		Success:   req.Success,
		XPEarned:  xp,
	})
	if err != nil {
		return nil, err
	}

	return &models.PromptAttemptResponse{
		XPEarned: xp,
		Reason:   reason,
		XP:       newXP,
		Level:    newLevel,
	}, nil
}

// SeedStartingLevel places a new student at an intro-quiz level by
// seeding the XP floor that level derives from. XP stays the single
// source of truth: the level column is still just LevelFromXP(xp).
func (s *Service) SeedStartingLevel(ctx context.Context, userID, subjectID int64, level int) error {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return s.store.SeedProgress(ctx, userID, subjectID, XPFloorForLevel(level), level)
}
