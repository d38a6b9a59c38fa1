package profile

import (
	"context"
	"errors"
	"log"

	"github.com/kidtutor/backend/internal/models"
	"github.com/kidtutor/backend/internal/progression"
)

// ErrNoProfile means the user has not filled in their profile yet.
var ErrNoProfile = errors.New("profile not found")

// Service owns profile management and intro-quiz placement.
type Service struct {
	store       *Store
	progression *progression.Service
}

func NewService(store *Store, prog *progression.Service) *Service {
	return &Service{store: store, progression: prog}
}

func (s *Service) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return s.store.GetProfile(ctx, userID)
}

func (s *Service) SaveProfile(ctx context.Context, userID int64, req models.ProfileRequest) error {
	return s.store.UpsertProfile(ctx, userID, req)
}

// Status reports where the user is in onboarding: profile created,
// quiz started, quiz completed.
func (s *Service) Status(ctx context.Context, userID int64) (*models.ProfileStatusResponse, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &models.ProfileStatusResponse{}, nil
	}
	return &models.ProfileStatusResponse{
		HasProfile:         true,
		StartedIntroQuiz:   p.StartedIntroQuiz,
		CompletedIntroQuiz: p.CompletedIntroQuiz,
	}, nil
}

// SubmitIntroQuiz places the student in math and reading based on quiz
// scores, then seeds the matching starting XP so level always follows
// from accumulated XP. Seeding never lowers an existing balance.
func (s *Service) SubmitIntroQuiz(ctx context.Context, userID int64, req models.IntroQuizRequest) (*models.IntroQuizResponse, error) {
	mathLevel := DetermineLevel(req.MathScore)
	readingLevel := DetermineLevel(req.ReadingScore)

	if err := s.store.CompleteIntroQuiz(ctx, userID, mathLevel, readingLevel); err != nil {
		return nil, err
	}

	if err := s.progression.SeedStartingLevel(ctx, userID, models.SubjectMath.ID(), mathLevel); err != nil {
		return nil, err
	}
	if err := s.progression.SeedStartingLevel(ctx, userID, models.SubjectReading.ID(), readingLevel); err != nil {
		return nil, err
	}

	log.Printf("[profile] user %d placed at math level %d, reading level %d", userID, mathLevel, readingLevel)

	return &models.IntroQuizResponse{MathLevel: mathLevel, ReadingLevel: readingLevel}, nil
}
