package progression

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/kidtutor/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

// ── Progress ────────────────────────────────────────────

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	subject, subjectID, ok := models.ParseSubject(r.URL.Query().Get("subject"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, subjectID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get progress"})
		return
	}

	writeJSON(w, http.StatusOK, models.ProgressResponse{
		Subject: subject,
		XP:      progress.XP,
		Level:   LevelFromXP(progress.XP),
	})
}

func (h *Handler) GetAllProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	progress, err := h.service.GetAllProgress(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get progress"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"progress": progress})
}

// ── Attempts ────────────────────────────────────────────

func (h *Handler) SubmitChallengeAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ChallengeAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.ChallengeID == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "challenge_id is required"})
		return
	}

	resp, err := h.service.RecordChallengeAttempt(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Challenge not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record attempt"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitPromptAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.PromptAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "prompt is required"})
		return
	}
	if _, _, ok := models.ParseSubject(req.Subject); !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
		return
	}

	resp, err := h.service.RecordPromptAttempt(r.Context(), userID, req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record prompt"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ── Helpers ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
