package tutor

import (
	"context"
	"log"

	"github.com/kidtutor/backend/internal/generator"
	"github.com/kidtutor/backend/internal/models"
	"github.com/kidtutor/backend/internal/profile"
	"github.com/kidtutor/backend/internal/progression"
)

// Service runs tutoring conversations, personalized by the student's
// profile and subject progress.
type Service struct {
	profiles    *profile.Service
	progression *progression.Service
	generator   *generator.Generator
}

func NewService(profiles *profile.Service, prog *progression.Service, gen *generator.Generator) *Service {
	return &Service{profiles: profiles, progression: prog, generator: gen}
}

// Chat runs one tutoring turn. Profile and progress lookups fall back
// to defaults so a brand-new student can still chat. An LLM failure
// returns a friendly reply rather than an error; the conversation
// should never hard-fail in front of a child.
func (s *Service) Chat(ctx context.Context, userID int64, subject models.Subject, req models.TutorChatRequest) *models.TutorChatResponse {
	tp := generator.TutorProfile{
		Level:       1,
		IsChallenge: req.Challenge || req.ChallengeID != 0,
	}

	if p, err := s.profiles.GetProfile(ctx, userID); err == nil && p != nil {
		tp.Age = p.Age
		tp.Grade = p.Grade
	}
	if prog, err := s.progression.GetProgress(ctx, userID, subject.ID()); err == nil {
		tp.Level = prog.Level
		tp.XP = prog.XP
	}

	messages := req.Messages
	if len(messages) == 0 {
		messages = []models.ChatMessage{{Role: "user", Content: req.Message}}
	}

	systemPrompt := generator.TutorSystemPrompt(subject, tp)
	reply, err := s.generator.TutorReply(ctx, systemPrompt, messages)
	if err != nil {
		log.Printf("[tutor] reply failed for user %d: %v", userID, err)
		return &models.TutorChatResponse{Reply: "Hmm... I'm having trouble responding right now."}
	}

	return &models.TutorChatResponse{Reply: reply}
}
