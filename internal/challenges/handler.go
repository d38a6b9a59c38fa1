package challenges

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/kidtutor/backend/internal/models"
)

// Handler handles HTTP requests for the challenge lifecycle.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func getUserID(r *http.Request) (int64, bool) {
	userID, ok := r.Context().Value("user_id").(int64)
	return userID, ok
}

// GetCurrent handles GET /api/v1/challenges/current?subject=math
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	subject, _, ok := models.ParseSubject(r.URL.Query().Get("subject"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown subject"})
		return
	}

	resp, err := h.service.GetCurrent(r.Context(), userID, subject)
	if err != nil {
		log.Printf("[challenges] get current failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get challenge"})
		return
	}
	if resp == nil {
		// No challenge yet today; the client advances to get one.
		writeJSON(w, http.StatusOK, map[string]interface{}{"challenge": nil})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Advance handles POST /api/v1/challenges/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.AdvanceChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	subject, _, ok := models.ParseSubject(req.Subject)
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown subject"})
		return
	}

	resp, err := h.service.Advance(r.Context(), userID, subject)
	if err != nil {
		if errors.Is(err, ErrGeneration) {
			log.Printf("[challenges] generation failed for user %d: %v", userID, err)
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "could not generate a challenge, please try again"})
			return
		}
		log.Printf("[challenges] advance failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to advance challenge"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CompletedLevels handles GET /api/v1/challenges/completed-levels?subject=math
func (h *Handler) CompletedLevels(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	subject, _, ok := models.ParseSubject(r.URL.Query().Get("subject"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "unknown subject"})
		return
	}

	resp, err := h.service.CompletedLevels(r.Context(), userID, subject)
	if err != nil {
		log.Printf("[challenges] completed levels failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "failed to get completed levels"})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
