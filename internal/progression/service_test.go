package progression

import (
	"context"
	"testing"
	"time"

	"github.com/kidtutor/backend/internal/models"
)

// fakeStore backs the service with in-memory state. RecordAttempt
// honors the production contract: no write on a duplicate, XP applied
// only when positive, totals always reflecting post-attempt state.
type fakeStore struct {
	challenge  *models.Challenge
	hasAttempt bool
	loseRace   bool

	xp       int64
	recorded []models.AttemptRecord
}

func (f *fakeStore) GetProgress(ctx context.Context, userID, subjectID int64) (*models.UserProgress, error) {
	return &models.UserProgress{UserID: userID, SubjectID: subjectID, XP: f.xp, Level: LevelFromXP(f.xp)}, nil
}

func (f *fakeStore) GetAllProgress(ctx context.Context, userID int64) ([]models.UserProgress, error) {
	return nil, nil
}

func (f *fakeStore) SeedProgress(ctx context.Context, userID, subjectID, xpFloor int64, level int) error {
	if xpFloor > f.xp {
		f.xp = xpFloor
	}
	return nil
}

func (f *fakeStore) GetChallenge(ctx context.Context, challengeID int64) (*models.Challenge, error) {
	if f.challenge == nil || f.challenge.ID != challengeID {
		return nil, ErrChallengeNotFound
	}
	return f.challenge, nil
}

func (f *fakeStore) HasAttempt(ctx context.Context, userID, challengeID int64) (bool, error) {
	return f.hasAttempt, nil
}

func (f *fakeStore) RecordAttempt(ctx context.Context, subjectID int64, rec models.AttemptRecord) (bool, int64, int, error) {
	if f.loseRace {
		return false, 0, 0, nil
	}
	f.recorded = append(f.recorded, rec)
	if rec.XPEarned > 0 {
		f.xp += rec.XPEarned
	}
	return true, f.xp, LevelFromXP(f.xp), nil
}

func (f *fakeStore) FreeformWindow(ctx context.Context, userID int64, since time.Time) ([]WindowEntry, error) {
	return nil, nil
}

func (f *fakeStore) RecordPrompt(ctx context.Context, a models.PromptAttempt) (int64, int, error) {
	if a.XPEarned > 0 {
		f.xp += a.XPEarned
	}
	return f.xp, LevelFromXP(f.xp), nil
}

func testChallenge() *models.Challenge {
	return &models.Challenge{ID: 7, SubjectID: 1, Prompt: "What is 12 + 9?", Difficulty: 3}
}

func TestRecordChallengeAttemptAwardsOnce(t *testing.T) {
	store := &fakeStore{challenge: testChallenge()}
	service := NewService(store)

	resp, err := service.RecordChallengeAttempt(context.Background(), 42, models.ChallengeAttemptRequest{
		ChallengeID: 7, Success: true, AttemptsUsed: 1,
	})
	if err != nil {
		t.Fatalf("RecordChallengeAttempt() error = %v", err)
	}
	if resp.Duplicate {
		t.Error("first submission flagged as duplicate")
	}
	if resp.XPEarned != 30 {
		t.Errorf("XPEarned = %d, want 30 (difficulty 3, first try)", resp.XPEarned)
	}
	if resp.XP != 30 || resp.Level != 1 {
		t.Errorf("totals = (%d, %d), want (30, 1)", resp.XP, resp.Level)
	}
	if len(store.recorded) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(store.recorded))
	}
}

func TestRecordChallengeAttemptDuplicateFastPath(t *testing.T) {
	store := &fakeStore{challenge: testChallenge(), hasAttempt: true, xp: 30}
	service := NewService(store)

	resp, err := service.RecordChallengeAttempt(context.Background(), 42, models.ChallengeAttemptRequest{
		ChallengeID: 7, Success: true, AttemptsUsed: 1,
	})
	if err != nil {
		t.Fatalf("RecordChallengeAttempt() error = %v", err)
	}
	if !resp.Duplicate {
		t.Error("repeat submission not flagged as duplicate")
	}
	if resp.XPEarned != 0 {
		t.Errorf("duplicate XPEarned = %d, want 0", resp.XPEarned)
	}
	if resp.XP != 30 {
		t.Errorf("duplicate left XP = %d, want 30 unchanged", resp.XP)
	}
	if len(store.recorded) != 0 {
		t.Errorf("duplicate wrote %d ledger rows, want 0", len(store.recorded))
	}
}

func TestRecordChallengeAttemptLostInsertRace(t *testing.T) {
	// Fast path misses but the ledger insert loses to a concurrent
	// submission: same duplicate outcome, progress untouched.
	store := &fakeStore{challenge: testChallenge(), loseRace: true, xp: 30}
	service := NewService(store)

	resp, err := service.RecordChallengeAttempt(context.Background(), 42, models.ChallengeAttemptRequest{
		ChallengeID: 7, Success: true, AttemptsUsed: 1,
	})
	if err != nil {
		t.Fatalf("RecordChallengeAttempt() error = %v", err)
	}
	if !resp.Duplicate {
		t.Error("lost insert race not reported as duplicate")
	}
	if resp.XPEarned != 0 || resp.XP != 30 {
		t.Errorf("lost race gave (xpEarned=%d, xp=%d), want (0, 30)", resp.XPEarned, resp.XP)
	}
}

func TestRecordChallengeAttemptFailureEarnsNothing(t *testing.T) {
	store := &fakeStore{challenge: testChallenge()}
	service := NewService(store)

	resp, err := service.RecordChallengeAttempt(context.Background(), 42, models.ChallengeAttemptRequest{
		ChallengeID: 7, Success: false, AttemptsUsed: 2,
	})
	if err != nil {
		t.Fatalf("RecordChallengeAttempt() error = %v", err)
	}
	if resp.Duplicate {
		t.Error("failed first attempt flagged as duplicate")
	}
	if resp.XPEarned != 0 {
		t.Errorf("failure XPEarned = %d, want 0", resp.XPEarned)
	}
	if resp.XP != 0 || resp.Level != 1 {
		t.Errorf("failure totals = (%d, %d), want lazy default (0, 1)", resp.XP, resp.Level)
	}
	// The attempt is ledgered (it blocks a later resubmission) but no
	// XP was applied.
	if len(store.recorded) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(store.recorded))
	}
	if store.recorded[0].XPEarned != 0 {
		t.Errorf("ledgered XPEarned = %d, want 0", store.recorded[0].XPEarned)
	}
	if store.xp != 0 {
		t.Errorf("failed attempt moved XP to %d, want 0", store.xp)
	}
}

func TestRecordChallengeAttemptUnknownChallenge(t *testing.T) {
	store := &fakeStore{challenge: testChallenge()}
	service := NewService(store)

	_, err := service.RecordChallengeAttempt(context.Background(), 42, models.ChallengeAttemptRequest{
		ChallengeID: 99, Success: true,
	})
	if err == nil {
		t.Fatal("unknown challenge did not error")
	}
}
