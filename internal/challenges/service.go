package challenges

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/kidtutor/backend/internal/models"
	"github.com/kidtutor/backend/internal/progression"
)

// ErrGeneration marks a failed attempt to produce a new challenge.
// Callers translate it to a 502 so the client can retry; no challenge
// state moves when it fires.
var ErrGeneration = errors.New("challenge generation failed")

// Generator produces a new challenge prompt for a subject at a reading
// level, avoiding the previous prompt and its question type.
type Generator interface {
	GenerateChallenge(ctx context.Context, subject models.Subject, level int, prevPrompt, prevPromptType string) (prompt, promptType string, err error)
}

// Service owns the per-subject challenge lifecycle: daily resets,
// difficulty stepping, and generating the next challenge.
type Service struct {
	store       *Store
	progression *progression.Service
	generator   Generator
}

func NewService(store *Store, prog *progression.Service, gen Generator) *Service {
	return &Service{store: store, progression: prog, generator: gen}
}

// GetCurrent returns the user's active challenge for a subject. A nil
// response means no challenge has been generated yet today (or ever);
// the client should call Advance to get one.
func (s *Service) GetCurrent(ctx context.Context, userID int64, subject models.Subject) (*models.ChallengeResponse, error) {
	subjectID := subject.ID()

	active, err := s.store.GetActive(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}
	if active == nil || NeedsReset(active.LastReset, Today()) {
		// Stale challenges are not served; the next Advance call
		// regenerates at the floor.
		return nil, nil
	}

	challenge, err := s.store.GetChallenge(ctx, active.ChallengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, nil
	}

	return &models.ChallengeResponse{
		ChallengeID: challenge.ID,
		Subject:     subject,
		Prompt:      challenge.Prompt,
		Difficulty:  active.Difficulty,
		PromptType:  active.PromptType,
	}, nil
}

// Advance generates the next challenge for a subject and makes it the
// active one. Difficulty steps up from the previous challenge, or
// restarts at 1 on the first request of a new UTC day. If any of the
// user's subjects has gone stale, every subject is dropped back to the
// floor first so no subject races ahead across days.
//
// Generation happens before any write: an LLM failure leaves the prior
// active challenge untouched.
func (s *Service) Advance(ctx context.Context, userID int64, subject models.Subject) (*models.ChallengeResponse, error) {
	subjectID := subject.ID()
	today := Today()

	actives, err := s.store.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	anyStale := AnyStale(actives, today)
	prevDifficulty := 0
	prevPrompt := ""
	prevType := ""
	for _, a := range actives {
		if a.SubjectID == subjectID {
			prevDifficulty = a.Difficulty
			prevType = a.PromptType
			if c, err := s.store.GetChallenge(ctx, a.ChallengeID); err == nil && c != nil {
				prevPrompt = c.Prompt
			}
		}
	}
	if anyStale {
		prevDifficulty = 0
		prevType = ""
	}

	p, err := s.progression.GetProgress(ctx, userID, subjectID)
	if err != nil {
		return nil, err
	}

	prompt, promptType, err := s.generator.GenerateChallenge(ctx, subject, p.Level, prevPrompt, prevType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	next := NextDifficulty(prevDifficulty, anyStale)

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if anyStale {
		if err := s.store.ResetAllToFloor(ctx, tx, userID, today); err != nil {
			return nil, err
		}
	}
	challengeID, err := s.store.InsertChallenge(ctx, tx, subjectID, prompt, next, promptType)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertActive(ctx, tx, userID, subjectID, challengeID, next, promptType, today); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit challenge: %w", err)
	}

	log.Printf("[challenges] user %d advanced %s to difficulty %d (challenge %d)", userID, subject, next, challengeID)

	return &models.ChallengeResponse{
		ChallengeID: challengeID,
		Subject:     subject,
		Prompt:      prompt,
		Difficulty:  next,
		PromptType:  promptType,
	}, nil
}

// CompletedLevels lists the difficulties the user has already beaten
// for a subject today or any prior day.
func (s *Service) CompletedLevels(ctx context.Context, userID int64, subject models.Subject) (*models.CompletedLevelsResponse, error) {
	levels, err := s.store.CompletedLevels(ctx, userID, subject.ID())
	if err != nil {
		return nil, err
	}
	return &models.CompletedLevelsResponse{Subject: subject, Levels: levels}, nil
}
